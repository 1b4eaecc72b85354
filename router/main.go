package router

import (
	"log"
	"os"
	"time"

	"online-learning-api/config"
	"online-learning-api/database"
	"online-learning-api/handlers"
	activity_handlers "online-learning-api/handlers/activity"
	answer_handlers "online-learning-api/handlers/answer"
	assignment_handlers "online-learning-api/handlers/assignment"
	auth_handlers "online-learning-api/handlers/auth"
	course_handlers "online-learning-api/handlers/course"
	enrollment_handlers "online-learning-api/handlers/enrollment"
	lesson_handlers "online-learning-api/handlers/lesson"
	review_handlers "online-learning-api/handlers/review"
	submission_handlers "online-learning-api/handlers/submission"
	user_handlers "online-learning-api/handlers/user"
	"online-learning-api/services"
	"online-learning-api/services/storage"
	"online-learning-api/utils/auth"
	"online-learning-api/utils/cache"
	"online-learning-api/utils/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, store *database.GORMStore) {
	getEnv, err := config.Get()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	jwtIssuer := getEnv.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "online-learning-api"
	}

	tokenService, err := auth.NewTokenService(auth.TokenConfig{
		Secret: getEnv.JWT_SECRET,
		Expiry: getEnv.JWT_EXPIRY,
		Issuer: jwtIssuer,
		Prefix: getEnv.JWT_PREFIX,
	})
	if err != nil {
		log.Fatal("Failed to initialize token service:", err)
	}

	db := store.DB()

	// Redis backs brute force protection and the course list cache; both
	// degrade gracefully when it is unavailable.
	var redisCache *cache.RedisCache
	if getEnv.REDIS_URL != "" {
		redisCache, err = cache.NewRedisCache(getEnv.REDIS_URL)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis: %v. Brute force protection will be disabled.", err)
			redisCache = nil
		}
	}

	var bruteForceProtection *middleware.BruteForceProtection
	if redisCache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
	}

	// File storage backend for course images and assignment attachments
	var fileStore storage.Storage
	if getEnv.STORAGE_BACKEND == "spaces" {
		fileStore, err = storage.NewSpacesStorage(storage.SpacesConfig{
			AccessKey: getEnv.SPACES_ACCESS_KEY,
			SecretKey: getEnv.SPACES_SECRET_KEY,
			Bucket:    getEnv.SPACES_BUCKET,
			Region:    getEnv.SPACES_REGION,
			Endpoint:  getEnv.SPACES_ENDPOINT,
		})
	} else {
		fileStore, err = storage.NewLocalStorage(getEnv.UPLOAD_DIR)
	}
	if err != nil {
		log.Fatal("Failed to initialize file storage:", err)
	}

	// Services
	userService := services.NewUserService(database.NewUserRepo(db))
	enrollmentService := services.NewEnrollmentService(
		database.NewEnrollmentRepo(db),
		database.NewSubmissionRepo(db),
	)
	activityService := services.NewActivityService(db)

	// Middleware & handlers
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	authHandler := auth_handlers.NewAuthHandler(userService, tokenService, activityService, bruteForceProtection)
	userHandler := user_handlers.NewUserHandler(userService)
	courseHandler := course_handlers.NewCourseHandler(db, fileStore, redisCache)
	lessonHandler := lesson_handlers.NewLessonHandler(db)
	assignmentHandler := assignment_handlers.NewAssignmentHandler(db, fileStore)
	submissionHandler := submission_handlers.NewSubmissionHandler(db)
	answerHandler := answer_handlers.NewAnswerHandler(db)
	reviewHandler := review_handlers.NewReviewHandler(db)
	enrollmentHandler := enrollment_handlers.NewEnrollmentHandler(db, enrollmentService, activityService)
	activityHandler := activity_handlers.NewActivityHandler(activityService)

	// Apply security middleware
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,
		RateLimitWindow:   1 * time.Minute,
	})

	// Health check endpoint (public)
	app.Get("/ping", func(c *fiber.Ctx) error {
		return handlers.HandleCheckHealth(c, store)
	})

	api := app.Group("/api")

	// Auth routes (public)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	if bruteForceProtection != nil {
		authGroup.Post("/login", bruteForceProtection.CheckAndRecordAttempt(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}

	// User routes
	users := api.Group("/users")
	users.Get("/", authMiddleware.RequireAdmin(), userHandler.ListUsers)
	users.Get("/id/:id", authMiddleware.Required(), userHandler.GetUserByID)
	users.Get("/username/:username", authMiddleware.Required(), userHandler.GetUserByUsername)
	users.Put("/:id", authMiddleware.Required(), userHandler.UpdateUser)
	users.Delete("/:id", authMiddleware.Required(), userHandler.DeleteUser)

	// Course routes; course content is publicly readable, mutation is admin only
	courses := api.Group("/courses")
	courses.Get("/", courseHandler.ListCourses)
	courses.Get("/images", courseHandler.GetCourseImages)
	courses.Get("/:id", courseHandler.GetCourse)
	courses.Get("/:id/image", courseHandler.GetCourseImage)
	courses.Post("/", authMiddleware.RequireAdmin(), courseHandler.CreateCourse)
	courses.Put("/:id", authMiddleware.RequireAdmin(), courseHandler.UpdateCourse)
	courses.Delete("/:id", authMiddleware.RequireAdmin(), courseHandler.DeleteCourse)

	// Lessons nested under courses
	courses.Get("/:courseId/lessons", lessonHandler.ListByCourse)
	courses.Get("/:courseId/lessons/order/:order", lessonHandler.GetByCourseAndOrder)

	// Enrollment: enroll-or-resume for the authenticated user
	courses.Post("/:courseId/enrollments", authMiddleware.Required(), enrollmentHandler.ProcessEnrollment)

	// Reviews nested under courses
	courses.Get("/:courseId/reviews", reviewHandler.ListByCourse)
	courses.Post("/:courseId/reviews", authMiddleware.Required(), reviewHandler.CreateReview)

	// Lesson routes
	lessons := api.Group("/lessons")
	lessons.Get("/:id", lessonHandler.GetLesson)
	lessons.Post("/", authMiddleware.RequireAdmin(), lessonHandler.CreateLesson)
	lessons.Put("/:id", authMiddleware.RequireAdmin(), lessonHandler.UpdateLesson)
	lessons.Delete("/:id", authMiddleware.RequireAdmin(), lessonHandler.DeleteLesson)
	lessons.Get("/:lessonId/assignments", assignmentHandler.ListByLesson)

	// Assignment routes
	assignments := api.Group("/assignments")
	assignments.Get("/:id", assignmentHandler.GetAssignment)
	assignments.Get("/:id/attachment", assignmentHandler.GetAttachment)
	assignments.Post("/", authMiddleware.RequireAdmin(), assignmentHandler.CreateAssignment)
	assignments.Put("/:id", authMiddleware.RequireAdmin(), assignmentHandler.UpdateAssignment)
	assignments.Delete("/:id", authMiddleware.RequireAdmin(), assignmentHandler.DeleteAssignment)
	assignments.Get("/:assignmentId/submissions", authMiddleware.RequireAdmin(), submissionHandler.ListByAssignment)
	assignments.Get("/:assignmentId/answers", authMiddleware.Required(), answerHandler.ListByAssignment)

	// Submission routes
	submissions := api.Group("/submissions", authMiddleware.Required())
	submissions.Post("/", submissionHandler.CreateSubmission)
	submissions.Get("/:id", submissionHandler.GetSubmission)
	submissions.Delete("/:id", submissionHandler.DeleteSubmission)
	submissions.Put("/:id/grade", authMiddleware.RequireAdmin(), submissionHandler.GradeSubmission)

	// Answer routes
	answers := api.Group("/answers")
	answers.Get("/:id", authMiddleware.Required(), answerHandler.GetAnswer)
	answers.Post("/", authMiddleware.RequireAdmin(), answerHandler.CreateAnswer)
	answers.Delete("/:id", authMiddleware.RequireAdmin(), answerHandler.DeleteAnswer)

	// Review management
	api.Delete("/reviews/:id", authMiddleware.Required(), reviewHandler.DeleteReview)

	// Enrollment management
	enrollments := api.Group("/enrollments", authMiddleware.Required())
	enrollments.Get("/:id", enrollmentHandler.GetEnrollment)
	enrollments.Delete("/:id", enrollmentHandler.DeleteEnrollment)

	// Activity log routes (admin only)
	logs := api.Group("/logs", authMiddleware.RequireAdmin())
	logs.Get("/", activityHandler.ListLogs)
	logs.Get("/:id", activityHandler.GetLog)
	logs.Delete("/:id", activityHandler.DeleteLog)
}
