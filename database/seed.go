package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"online-learning-api/model"
	"online-learning-api/utils/auth"

	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("🌱 Starting database seeding...")

	// Run seeds in order (respecting foreign key constraints)
	if err := s.SeedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := s.SeedCourses(); err != nil {
		return fmt.Errorf("failed to seed courses: %w", err)
	}

	log.Println("✅ Database seeding completed successfully!")
	return nil
}

// SeedAdminUser creates the default admin user
func (s *Seeder) SeedAdminUser() error {
	var count int64
	if err := s.db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Admin user already exists, skipping...")
		return nil
	}

	// Get admin credentials from environment variables
	adminUsername := os.Getenv("ADMIN_USERNAME")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminUsername == "" || adminPassword == "" {
		log.Println("⚠️  ADMIN_USERNAME and ADMIN_PASSWORD environment variables not set, skipping admin user creation")
		return nil
	}

	salt, err := auth.GenerateSalt()
	if err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	admin := &model.User{
		Username:     adminUsername,
		FullName:     "System Administrator",
		Role:         model.RoleAdmin,
		PasswordHash: auth.HashPassword(adminPassword, salt),
		PasswordSalt: salt,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Created admin user: %s\n", admin.Username)
	return nil
}

// SeedCourses creates a sample course with lessons and assignments
func (s *Seeder) SeedCourses() error {
	var count int64
	if err := s.db.Model(&model.Course{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Courses already exist, skipping...")
		return nil
	}

	course := &model.Course{
		Title:       "Introduction to Go",
		Description: "A hands-on course covering Go fundamentals, from syntax to concurrency.",
		Rating:      -1,
		Lessons: []model.Lesson{
			{
				LessonOrder: 1,
				Title:       "Getting Started",
				Content:     "Installing the toolchain, writing your first program, and understanding packages.",
				Assignments: []model.Assignment{
					{
						Title:       "Hello, World",
						Description: "Write and run a program that prints a greeting.",
						DueDate:     time.Now().AddDate(0, 1, 0),
					},
				},
			},
			{
				LessonOrder: 2,
				Title:       "Types and Functions",
				Content:     "Structs, interfaces, methods, and multiple return values.",
				Assignments: []model.Assignment{
					{
						Title:       "Shapes",
						Description: "Model a few geometric shapes behind a common interface.",
						DueDate:     time.Now().AddDate(0, 1, 7),
					},
				},
			},
			{
				LessonOrder: 3,
				Title:       "Concurrency",
				Content:     "Goroutines, channels, and the sync package.",
				Assignments: []model.Assignment{
					{
						Title:       "Worker Pool",
						Description: "Process a batch of jobs with a bounded number of workers.",
						DueDate:     time.Now().AddDate(0, 1, 14),
					},
				},
			},
		},
	}

	if err := s.db.Create(course).Error; err != nil {
		return err
	}

	log.Printf("✅ Created sample course: %s\n", course.Title)
	return nil
}
