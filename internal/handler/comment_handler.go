package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/owlproh/api-yamdb/internal/service"
)

// CommentHandler handles comment endpoints nested under a review.
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CommentCreateRequest creates a comment.
type CommentCreateRequest struct {
	Text string `json:"text" validate:"required,max=300"`
}

// CommentUpdateRequest patches a comment.
type CommentUpdateRequest struct {
	Text string `json:"text" validate:"required,max=300"`
}

// List godoc
// @Summary List comments on a review, newest first
// @Tags comments
// @Produce json
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Success 200 {array} model.Comment
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews/{review_id}/comments [get]
func (h *CommentHandler) List(c echo.Context) error {
	titleID, reviewID, err := nestedIDs(c)
	if err != nil {
		return err
	}
	limit, offset := listParams(c)
	comments, err := h.commentService.ListByReview(c.Request().Context(), titleID, reviewID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, comments)
}

// Get godoc
// @Summary Retrieve a comment
// @Tags comments
// @Produce json
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Param id path int true "Comment ID"
// @Success 200 {object} model.Comment
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews/{review_id}/comments/{id} [get]
func (h *CommentHandler) Get(c echo.Context) error {
	titleID, reviewID, err := nestedIDs(c)
	if err != nil {
		return err
	}
	commentID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	comment, err := h.commentService.Get(c.Request().Context(), titleID, reviewID, commentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, comment)
}

// Create godoc
// @Summary Comment on a review
// @Tags comments
// @Accept json
// @Produce json
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Param request body CommentCreateRequest true "Comment data"
// @Success 201 {object} model.Comment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /titles/{title_id}/reviews/{review_id}/comments [post]
func (h *CommentHandler) Create(c echo.Context) error {
	titleID, reviewID, err := nestedIDs(c)
	if err != nil {
		return err
	}
	var req CommentCreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.commentService.Create(c.Request().Context(), titleID, reviewID, CurrentUser(c), req.Text)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// Update godoc
// @Summary Patch a comment
// @Tags comments
// @Accept json
// @Produce json
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Param id path int true "Comment ID"
// @Param request body CommentUpdateRequest true "New text"
// @Success 200 {object} model.Comment
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /titles/{title_id}/reviews/{review_id}/comments/{id} [patch]
func (h *CommentHandler) Update(c echo.Context) error {
	titleID, reviewID, err := nestedIDs(c)
	if err != nil {
		return err
	}
	commentID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req CommentUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.commentService.Update(c.Request().Context(), CurrentUser(c), titleID, reviewID, commentID, req.Text)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, comment)
}

// Delete godoc
// @Summary Delete a comment
// @Tags comments
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Param id path int true "Comment ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /titles/{title_id}/reviews/{review_id}/comments/{id} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	titleID, reviewID, err := nestedIDs(c)
	if err != nil {
		return err
	}
	commentID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.commentService.Delete(c.Request().Context(), CurrentUser(c), titleID, reviewID, commentID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func nestedIDs(c echo.Context) (titleID, reviewID uint, err error) {
	if titleID, err = pathID(c, "title_id"); err != nil {
		return 0, 0, err
	}
	if reviewID, err = pathID(c, "review_id"); err != nil {
		return 0, 0, err
	}
	return titleID, reviewID, nil
}
