package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dhlf/dhcf-backend/internal/pkg/logger"
	"github.com/dhlf/dhcf-backend/internal/repos"
	"github.com/dhlf/dhcf-backend/internal/services"
)

// CourseHandler serves the legacy course catalog alongside the newer
// learning-modules surface.
type CourseHandler struct {
	log           *logger.Logger
	courseService services.CourseService
}

func NewCourseHandler(log *logger.Logger, courseService services.CourseService) *CourseHandler {
	return &CourseHandler{
		log:           log.With("handler", "CourseHandler"),
		courseService: courseService,
	}
}

func (h *CourseHandler) ListCourses(c *gin.Context) {
	filter := repos.ModuleFilter{
		Search:   c.Query("search"),
		Provider: c.Query("provider"),
	}
	courses, err := h.courseService.List(c.Request.Context(), nil, filter)
	if err != nil {
		h.log.Error("ListCourses failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "Failed to fetch courses", nil)
		return
	}
	RespondOK(c, courses)
}

func (h *CourseHandler) GetCourse(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid course id", nil)
		return
	}
	course, err := h.courseService.Get(c.Request.Context(), nil, courseID)
	if err != nil {
		h.log.Error("GetCourse failed", "error", err, "course_id", courseID)
		RespondError(c, http.StatusInternalServerError, "Failed to fetch course", nil)
		return
	}
	if course == nil {
		RespondError(c, http.StatusNotFound, "Course not found", nil)
		return
	}
	RespondOK(c, course)
}

func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var input services.LearningModuleCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if input.Title == "" {
		RespondError(c, http.StatusBadRequest, "title is required", nil)
		return
	}
	course, err := h.courseService.Create(c.Request.Context(), nil, input)
	if err != nil {
		h.log.Error("CreateCourse failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "Failed to create course", nil)
		return
	}
	RespondCreated(c, course)
}

func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid course id", nil)
		return
	}
	var input services.LearningModuleUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	course, err := h.courseService.Update(c.Request.Context(), nil, courseID, input)
	if err != nil {
		h.log.Error("UpdateCourse failed", "error", err, "course_id", courseID)
		RespondError(c, http.StatusInternalServerError, "Failed to update course", nil)
		return
	}
	if course == nil {
		RespondError(c, http.StatusNotFound, "Course not found", nil)
		return
	}
	RespondOK(c, course)
}

func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid course id", nil)
		return
	}
	deleted, err := h.courseService.Delete(c.Request.Context(), nil, courseID)
	if err != nil {
		h.log.Error("DeleteCourse failed", "error", err, "course_id", courseID)
		RespondError(c, http.StatusInternalServerError, "Failed to delete course", nil)
		return
	}
	if !deleted {
		RespondError(c, http.StatusNotFound, "Course not found", nil)
		return
	}
	c.Status(http.StatusNoContent)
}
