package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/owlproh/api-yamdb/internal/service"
)

// ReviewHandler handles review endpoints nested under a title.
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// ReviewCreateRequest creates a review.
type ReviewCreateRequest struct {
	Text  string `json:"text" validate:"required,max=500"`
	Score int    `json:"score" validate:"required,min=1,max=10"`
}

// ReviewUpdateRequest patches a review.
type ReviewUpdateRequest struct {
	Text  *string `json:"text" validate:"omitempty,max=500"`
	Score *int    `json:"score" validate:"omitempty,min=1,max=10"`
}

// List godoc
// @Summary List reviews for a title, newest first
// @Tags reviews
// @Produce json
// @Param title_id path int true "Title ID"
// @Success 200 {array} model.Review
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews [get]
func (h *ReviewHandler) List(c echo.Context) error {
	titleID, err := pathID(c, "title_id")
	if err != nil {
		return err
	}
	limit, offset := listParams(c)
	reviews, err := h.reviewService.ListByTitle(c.Request().Context(), titleID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, reviews)
}

// Get godoc
// @Summary Retrieve a review
// @Tags reviews
// @Produce json
// @Param title_id path int true "Title ID"
// @Param id path int true "Review ID"
// @Success 200 {object} model.Review
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews/{id} [get]
func (h *ReviewHandler) Get(c echo.Context) error {
	titleID, err := pathID(c, "title_id")
	if err != nil {
		return err
	}
	reviewID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	review, err := h.reviewService.Get(c.Request().Context(), titleID, reviewID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, review)
}

// Create godoc
// @Summary Review a title
// @Tags reviews
// @Accept json
// @Produce json
// @Param title_id path int true "Title ID"
// @Param request body ReviewCreateRequest true "Review data"
// @Success 201 {object} model.Review
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /titles/{title_id}/reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	titleID, err := pathID(c, "title_id")
	if err != nil {
		return err
	}
	var req ReviewCreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	review, err := h.reviewService.Create(c.Request().Context(), titleID, CurrentUser(c), req.Text, req.Score)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, review)
}

// Update godoc
// @Summary Patch a review
// @Tags reviews
// @Accept json
// @Produce json
// @Param title_id path int true "Title ID"
// @Param id path int true "Review ID"
// @Param request body ReviewUpdateRequest true "Fields to change"
// @Success 200 {object} model.Review
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /titles/{title_id}/reviews/{id} [patch]
func (h *ReviewHandler) Update(c echo.Context) error {
	titleID, err := pathID(c, "title_id")
	if err != nil {
		return err
	}
	reviewID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req ReviewUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	review, err := h.reviewService.Update(c.Request().Context(), CurrentUser(c), titleID, reviewID, service.ReviewInput{
		Text:  req.Text,
		Score: req.Score,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, review)
}

// Delete godoc
// @Summary Delete a review
// @Tags reviews
// @Param title_id path int true "Title ID"
// @Param id path int true "Review ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /titles/{title_id}/reviews/{id} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	titleID, err := pathID(c, "title_id")
	if err != nil {
		return err
	}
	reviewID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.reviewService.Delete(c.Request().Context(), CurrentUser(c), titleID, reviewID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
