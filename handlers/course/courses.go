package course

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"online-learning-api/model"
	"online-learning-api/services/storage"
	"online-learning-api/utils/cache"
	"online-learning-api/utils/response"
	"online-learning-api/utils/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	courseListCacheKey = "courses:list"
	courseListCacheTTL = 5 * time.Minute
)

// CourseHandler handles course-related requests
type CourseHandler struct {
	db        *gorm.DB
	store     storage.Storage
	cache     *cache.RedisCache
	validator *validation.Validator
}

// NewCourseHandler creates a new course handler. cache may be nil when Redis
// is not configured; course lists are then served straight from the database.
func NewCourseHandler(db *gorm.DB, store storage.Storage, redisCache *cache.RedisCache) *CourseHandler {
	return &CourseHandler{
		db:        db,
		store:     store,
		cache:     redisCache,
		validator: validation.NewValidator(),
	}
}

// CourseResponse is the public shape of a course
type CourseResponse struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
}

func toCourseResponse(course *model.Course) CourseResponse {
	return CourseResponse{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		Rating:      course.Rating,
	}
}

// ListCourses handles GET /api/courses
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	if h.cache != nil {
		var cached []CourseResponse
		if err := h.cache.GetJSON(c.Context(), courseListCacheKey, &cached); err == nil {
			return response.Success(c, cached)
		}
	}

	var courses []model.Course
	if err := h.db.Order("id").Find(&courses).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch courses")
	}

	out := make([]CourseResponse, 0, len(courses))
	for i := range courses {
		out = append(out, toCourseResponse(&courses[i]))
	}

	if h.cache != nil {
		h.cache.SetJSON(c.Context(), courseListCacheKey, out, courseListCacheTTL)
	}

	return response.Success(c, out)
}

// GetCourse handles GET /api/courses/:id
func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	id := c.Params("id")

	var course model.Course
	if err := h.db.Preload("Lessons", func(db *gorm.DB) *gorm.DB {
		return db.Order("lesson_order")
	}).First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	return response.Success(c, course)
}

// CreateCourse handles POST /api/courses (admin only). The body is multipart:
// title and description fields plus an optional image file.
func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	title := validation.SanitizeString(c.FormValue("title"))
	description := validation.SanitizeString(c.FormValue("description"))

	if title == "" {
		return response.BadRequest(c, "Title is required")
	}

	course := model.Course{
		Title:       title,
		Description: description,
		Rating:      -1,
	}

	if file, err := c.FormFile("image"); err == nil {
		if !storage.IsImage(file.Filename) {
			return response.BadRequest(c, "Image must be a PNG, JPEG, GIF or WebP file")
		}

		src, err := file.Open()
		if err != nil {
			return response.InternalServerError(c, "Failed to read image")
		}
		defer src.Close()

		key := storage.GenerateKey("courses", file.Filename)
		if _, err := h.store.Save(c.Context(), key, src, storage.ContentType(file.Filename)); err != nil {
			return response.InternalServerError(c, "Failed to store image")
		}
		course.ImagePath = key
	}

	if err := h.db.Create(&course).Error; err != nil {
		return response.InternalServerError(c, "Failed to create course")
	}

	h.invalidateListCache(c)
	return response.Created(c, toCourseResponse(&course))
}

// UpdateCourse handles PUT /api/courses/:id (admin only)
func (h *CourseHandler) UpdateCourse(c *fiber.Ctx) error {
	id := c.Params("id")

	var course model.Course
	if err := h.db.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	if title := validation.SanitizeString(c.FormValue("title")); title != "" {
		course.Title = title
	}
	if description := validation.SanitizeString(c.FormValue("description")); description != "" {
		course.Description = description
	}

	if file, err := c.FormFile("image"); err == nil {
		if !storage.IsImage(file.Filename) {
			return response.BadRequest(c, "Image must be a PNG, JPEG, GIF or WebP file")
		}

		src, err := file.Open()
		if err != nil {
			return response.InternalServerError(c, "Failed to read image")
		}
		defer src.Close()

		key := storage.GenerateKey("courses", file.Filename)
		if _, err := h.store.Save(c.Context(), key, src, storage.ContentType(file.Filename)); err != nil {
			return response.InternalServerError(c, "Failed to store image")
		}

		if course.ImagePath != "" {
			h.store.Delete(c.Context(), course.ImagePath)
		}
		course.ImagePath = key
	}

	if err := h.db.Save(&course).Error; err != nil {
		return response.InternalServerError(c, "Failed to update course")
	}

	h.invalidateListCache(c)
	return response.SuccessWithMessage(c, "Course updated successfully", toCourseResponse(&course))
}

// DeleteCourse handles DELETE /api/courses/:id (admin only)
func (h *CourseHandler) DeleteCourse(c *fiber.Ctx) error {
	id := c.Params("id")

	var course model.Course
	if err := h.db.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	if err := h.db.Delete(&course).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete course")
	}

	if course.ImagePath != "" {
		h.store.Delete(c.Context(), course.ImagePath)
	}

	h.invalidateListCache(c)
	return response.SuccessWithMessage(c, "Course deleted successfully", nil)
}

// GetCourseImage handles GET /api/courses/:id/image, streaming the stored
// image with its content type.
func (h *CourseHandler) GetCourseImage(c *fiber.Ctx) error {
	id := c.Params("id")

	var course model.Course
	if err := h.db.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	if course.ImagePath == "" {
		return response.NotFound(c, "Course has no image")
	}

	data, err := h.store.Load(c.Context(), course.ImagePath)
	if err != nil {
		return response.NotFound(c, "Course image not found")
	}

	c.Set("Content-Type", storage.ContentType(course.ImagePath))
	return c.Send(data)
}

// GetCourseImages handles GET /api/courses/images, returning a map of course
// id to base64-encoded image for courses that have one.
func (h *CourseHandler) GetCourseImages(c *fiber.Ctx) error {
	var courses []model.Course
	if err := h.db.Where("image_path <> ''").Find(&courses).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch courses")
	}

	images := make(map[string]string, len(courses))
	for i := range courses {
		data, err := h.store.Load(c.Context(), courses[i].ImagePath)
		if err != nil {
			continue
		}
		images[fmt.Sprintf("%d", courses[i].ID)] = base64.StdEncoding.EncodeToString(data)
	}

	return response.Success(c, images)
}

func (h *CourseHandler) invalidateListCache(c *fiber.Ctx) {
	if h.cache != nil {
		h.cache.Delete(c.Context(), courseListCacheKey)
	}
}
