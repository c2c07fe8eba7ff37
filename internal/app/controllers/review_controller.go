package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devcampr/devcampr/internal/app/models/dto"
	"github.com/devcampr/devcampr/internal/app/services"
	"github.com/devcampr/devcampr/internal/middleware"
)

// ReviewController handles the review endpoints.
type ReviewController struct {
	reviewService services.ReviewService
}

// NewReviewController creates a new ReviewController.
func NewReviewController(reviewService services.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

// GetReviews godoc
// @Summary List reviews
// @Tags reviews
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Router /reviews [get]
func (ctrl *ReviewController) GetReviews(c *gin.Context) {
	q, ok := parseListQuery(c)
	if !ok {
		return
	}
	reviews, total, err := ctrl.reviewService.List(c.Request.Context(), q)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(reviews, total, q))
}

// GetBootcampReviews godoc
// @Summary List the reviews of one bootcamp
// @Tags reviews
// @Produce json
// @Param id path string true "Bootcamp id"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /bootcamps/{id}/reviews [get]
func (ctrl *ReviewController) GetBootcampReviews(c *gin.Context) {
	reviews, err := ctrl.reviewService.ListByBootcamp(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	count := len(reviews)
	c.JSON(http.StatusOK, dto.APIResponse{Success: true, Count: &count, Data: reviews})
}

// GetReview godoc
// @Summary Get a single review
// @Tags reviews
// @Produce json
// @Param id path string true "Review id"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /reviews/{id} [get]
func (ctrl *ReviewController) GetReview(c *gin.Context) {
	review, err := ctrl.reviewService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(review))
}

// CreateReview godoc
// @Summary Add a review to a bootcamp
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bootcamp id"
// @Param request body dto.CreateReviewRequest true "Review details"
// @Success 201 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /bootcamps/{id}/reviews [post]
func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	review, err := ctrl.reviewService.Create(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK(review))
}

// UpdateReview godoc
// @Summary Update a review
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review id"
// @Param request body dto.UpdateReviewRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /reviews/{id} [put]
func (ctrl *ReviewController) UpdateReview(c *gin.Context) {
	var req dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	review, err := ctrl.reviewService.Update(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(review))
}

// DeleteReview godoc
// @Summary Delete a review
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review id"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /reviews/{id} [delete]
func (ctrl *ReviewController) DeleteReview(c *gin.Context) {
	if err := ctrl.reviewService.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(gin.H{}))
}
