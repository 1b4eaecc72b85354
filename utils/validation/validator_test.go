package validation

import "testing"

func TestValidateUsername(t *testing.T) {
	valid := []string{"alice", "bob_smith", "user-42", "abc"}
	for _, u := range valid {
		if ok, msg := ValidateUsername(u); !ok {
			t.Errorf("ValidateUsername(%q) rejected: %s", u, msg)
		}
	}

	invalid := []string{"ab", "", "has space", "bad!char", "héllo"}
	for _, u := range invalid {
		if ok, _ := ValidateUsername(u); ok {
			t.Errorf("ValidateUsername(%q) accepted, want rejection", u)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if ok, _ := ValidatePassword("short1"); ok {
		t.Error("short password should be rejected")
	}
	if ok, _ := ValidatePassword("12345678"); ok {
		t.Error("password without letters should be rejected")
	}
	if ok, errs := ValidatePassword("password1"); !ok {
		t.Errorf("valid password rejected: %v", errs)
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  hello\x00world  "); got != "helloworld" {
		t.Errorf("SanitizeString = %q, want %q", got, "helloworld")
	}
}

func TestValidateStruct(t *testing.T) {
	type payload struct {
		Name string `validate:"required,min=3"`
	}

	v := NewValidator()
	if err := v.ValidateStruct(payload{Name: "ok name"}); err != nil {
		t.Errorf("valid struct rejected: %v", err)
	}
	if err := v.ValidateStruct(payload{}); err == nil {
		t.Error("missing required field should fail validation")
	}
}
