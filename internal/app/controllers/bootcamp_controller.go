package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/devcampr/devcampr/internal/app/models/dto"
	"github.com/devcampr/devcampr/internal/app/services"
	"github.com/devcampr/devcampr/internal/middleware"
	"github.com/devcampr/devcampr/internal/pkg/apperrors"
)

// BootcampController handles the bootcamp directory endpoints.
type BootcampController struct {
	bootcampService services.BootcampService
}

// NewBootcampController creates a new BootcampController.
func NewBootcampController(bootcampService services.BootcampService) *BootcampController {
	return &BootcampController{bootcampService: bootcampService}
}

// GetBootcamps godoc
// @Summary List bootcamps
// @Description Supports filtering (field and field[gt|gte|lt|lte|in]),
// @Description select, sort, page and limit parameters.
// @Tags bootcamps
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Router /bootcamps [get]
func (ctrl *BootcampController) GetBootcamps(c *gin.Context) {
	q, ok := parseListQuery(c)
	if !ok {
		return
	}

	bootcamps, total, err := ctrl.bootcampService.List(c.Request.Context(), q)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(bootcamps, total, q))
}

// GetBootcamp godoc
// @Summary Get a single bootcamp
// @Tags bootcamps
// @Produce json
// @Param id path string true "Bootcamp id"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /bootcamps/{id} [get]
func (ctrl *BootcampController) GetBootcamp(c *gin.Context) {
	bootcamp, err := ctrl.bootcampService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(bootcamp))
}

// CreateBootcamp godoc
// @Summary Publish a new bootcamp
// @Tags bootcamps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateBootcampRequest true "Bootcamp details"
// @Success 201 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Failure 403 {object} dto.APIResponse
// @Router /bootcamps [post]
func (ctrl *BootcampController) CreateBootcamp(c *gin.Context) {
	var req dto.CreateBootcampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	bootcamp, err := ctrl.bootcampService.Create(c.Request.Context(), middleware.CurrentUser(c), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK(bootcamp))
}

// UpdateBootcamp godoc
// @Summary Update a bootcamp
// @Tags bootcamps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bootcamp id"
// @Param request body dto.UpdateBootcampRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /bootcamps/{id} [put]
func (ctrl *BootcampController) UpdateBootcamp(c *gin.Context) {
	var req dto.UpdateBootcampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	bootcamp, err := ctrl.bootcampService.Update(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(bootcamp))
}

// DeleteBootcamp godoc
// @Summary Delete a bootcamp and its courses and reviews
// @Tags bootcamps
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bootcamp id"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /bootcamps/{id} [delete]
func (ctrl *BootcampController) DeleteBootcamp(c *gin.Context) {
	if err := ctrl.bootcampService.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(gin.H{}))
}

// GetBootcampsInRadius godoc
// @Summary List bootcamps within a distance of a zipcode
// @Tags bootcamps
// @Produce json
// @Param zipcode path string true "Center zipcode"
// @Param distance path number true "Radius in miles"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Router /bootcamps/radius/{zipcode}/{distance} [get]
func (ctrl *BootcampController) GetBootcampsInRadius(c *gin.Context) {
	distance, err := strconv.ParseFloat(c.Param("distance"), 64)
	if err != nil || distance <= 0 {
		middleware.HandleAPIError(c, apperrors.NewValidationError("distance must be a positive number of miles"))
		return
	}

	bootcamps, err := ctrl.bootcampService.GetWithinRadius(c.Request.Context(), c.Param("zipcode"), distance)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	count := len(bootcamps)
	c.JSON(http.StatusOK, dto.APIResponse{Success: true, Count: &count, Data: bootcamps})
}

// UploadBootcampPhoto godoc
// @Summary Upload a photo for a bootcamp
// @Tags bootcamps
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bootcamp id"
// @Param file formData file true "Image file"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Failure 403 {object} dto.APIResponse
// @Router /bootcamps/{id}/photo [put]
func (ctrl *BootcampController) UploadBootcampPhoto(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		file = nil
	}

	filename, err := ctrl.bootcampService.UploadPhoto(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), file)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(filename))
}
