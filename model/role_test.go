package model

import "testing"

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"admin", RoleAdmin, true},
		{"ADMIN", RoleAdmin, true},
		{"Admin", RoleAdmin, true},
		{"student", RoleStudent, true},
		{"STUDENT", RoleStudent, true},
		{" student ", RoleStudent, true},
		{"", RoleStudent, true}, // default
		{"teacher", "", false},
		{"root", "", false},
	}

	for _, tc := range cases {
		got, ok := ParseRole(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseRole(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestRoleIsIgnoresCase(t *testing.T) {
	if !Role("ADMIN").Is(RoleAdmin) {
		t.Error("ADMIN should match admin")
	}
	if Role("student").Is(RoleAdmin) {
		t.Error("student should not match admin")
	}
}

func TestRoleDisplay(t *testing.T) {
	if got := RoleAdmin.Display(); got != "ADMIN" {
		t.Errorf("Display() = %q, want ADMIN", got)
	}
	if got := RoleStudent.Display(); got != "STUDENT" {
		t.Errorf("Display() = %q, want STUDENT", got)
	}
}
