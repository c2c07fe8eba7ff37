package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devcampr/devcampr/internal/app/models/dto"
	"github.com/devcampr/devcampr/internal/app/services"
	"github.com/devcampr/devcampr/internal/middleware"
)

// CourseController handles the course endpoints.
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController.
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// GetCourses godoc
// @Summary List courses
// @Description Supports filtering (field and field[gt|gte|lt|lte|in]),
// @Description select, sort, page and limit parameters.
// @Tags courses
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Router /courses [get]
func (ctrl *CourseController) GetCourses(c *gin.Context) {
	q, ok := parseListQuery(c)
	if !ok {
		return
	}
	courses, total, err := ctrl.courseService.List(c.Request.Context(), q)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(courses, total, q))
}

// GetBootcampCourses godoc
// @Summary List the courses of one bootcamp
// @Tags courses
// @Produce json
// @Param id path string true "Bootcamp id"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /bootcamps/{id}/courses [get]
func (ctrl *CourseController) GetBootcampCourses(c *gin.Context) {
	courses, err := ctrl.courseService.ListByBootcamp(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	count := len(courses)
	c.JSON(http.StatusOK, dto.APIResponse{Success: true, Count: &count, Data: courses})
}

// GetCourse godoc
// @Summary Get a single course
// @Tags courses
// @Produce json
// @Param id path string true "Course id"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /courses/{id} [get]
func (ctrl *CourseController) GetCourse(c *gin.Context) {
	course, err := ctrl.courseService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(course))
}

// CreateCourse godoc
// @Summary Add a course to a bootcamp
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bootcamp id"
// @Param request body dto.CreateCourseRequest true "Course details"
// @Success 201 {object} dto.APIResponse
// @Failure 403 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /bootcamps/{id}/courses [post]
func (ctrl *CourseController) CreateCourse(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	course, err := ctrl.courseService.Create(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK(course))
}

// UpdateCourse godoc
// @Summary Update a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course id"
// @Param request body dto.UpdateCourseRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /courses/{id} [put]
func (ctrl *CourseController) UpdateCourse(c *gin.Context) {
	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	course, err := ctrl.courseService.Update(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(course))
}

// DeleteCourse godoc
// @Summary Delete a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course id"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /courses/{id} [delete]
func (ctrl *CourseController) DeleteCourse(c *gin.Context) {
	if err := ctrl.courseService.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(gin.H{}))
}
