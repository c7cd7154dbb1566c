package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/owlproh/api-yamdb/internal/repository"
	"github.com/owlproh/api-yamdb/internal/service"
)

// TitleHandler handles title endpoints.
type TitleHandler struct {
	titleService service.TitleService
}

// NewTitleHandler creates a new title handler.
func NewTitleHandler(titleService service.TitleService) *TitleHandler {
	return &TitleHandler{titleService: titleService}
}

// TitleCreateRequest creates a title. Year is a pointer so an absent
// field is rejected while year zero stays representable.
type TitleCreateRequest struct {
	Name        string   `json:"name" validate:"required,max=256"`
	Year        *int     `json:"year" validate:"required,min=0"`
	Description string   `json:"description"`
	Category    *string  `json:"category"`
	Genre       []string `json:"genre"`
}

// TitleUpdateRequest patches a title; absent fields stay unchanged.
type TitleUpdateRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=256"`
	Year        *int     `json:"year" validate:"omitempty,min=0"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Genre       []string `json:"genre"`
}

// List godoc
// @Summary List titles with computed ratings
// @Tags titles
// @Produce json
// @Param name query string false "Name substring, case-insensitive"
// @Param year query int false "Exact release year"
// @Param category query string false "Category slug"
// @Param genre query string false "Genre slug"
// @Success 200 {array} model.Title
// @Router /titles [get]
func (h *TitleHandler) List(c echo.Context) error {
	limit, offset := listParams(c)
	filter := repository.TitleFilter{
		Name:     c.QueryParam("name"),
		Category: c.QueryParam("category"),
		Genre:    c.QueryParam("genre"),
		Limit:    limit,
		Offset:   offset,
	}
	if raw := c.QueryParam("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "year must be an integer")
		}
		filter.Year = &year
	}

	titles, err := h.titleService.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, titles)
}

// Get godoc
// @Summary Retrieve a title with its computed rating
// @Tags titles
// @Produce json
// @Param id path int true "Title ID"
// @Success 200 {object} model.Title
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{id} [get]
func (h *TitleHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	title, err := h.titleService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, title)
}

// Create godoc
// @Summary Create a title
// @Tags titles
// @Accept json
// @Produce json
// @Param request body TitleCreateRequest true "Title data"
// @Success 201 {object} model.Title
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /titles [post]
func (h *TitleHandler) Create(c echo.Context) error {
	var req TitleCreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := service.TitleInput{
		Name:        &req.Name,
		Year:        req.Year,
		Description: &req.Description,
		Category:    req.Category,
		Genres:      req.Genre,
	}
	if in.Genres == nil {
		in.Genres = []string{}
	}
	title, err := h.titleService.Create(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, title)
}

// Update godoc
// @Summary Patch a title
// @Tags titles
// @Accept json
// @Produce json
// @Param id path int true "Title ID"
// @Param request body TitleUpdateRequest true "Fields to change"
// @Success 200 {object} model.Title
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /titles/{id} [patch]
func (h *TitleHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req TitleUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	title, err := h.titleService.Update(c.Request().Context(), id, service.TitleInput{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		Category:    req.Category,
		Genres:      req.Genre,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, title)
}

// Delete godoc
// @Summary Delete a title
// @Tags titles
// @Param id path int true "Title ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /titles/{id} [delete]
func (h *TitleHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.titleService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
