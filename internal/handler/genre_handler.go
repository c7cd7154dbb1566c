package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/owlproh/api-yamdb/internal/service"
)

// GenreHandler handles genre endpoints.
type GenreHandler struct {
	genreService service.GenreService
}

// NewGenreHandler creates a new genre handler.
func NewGenreHandler(genreService service.GenreService) *GenreHandler {
	return &GenreHandler{genreService: genreService}
}

// GenreCreateRequest creates a genre.
type GenreCreateRequest struct {
	Name string `json:"name" validate:"required,max=256"`
	Slug string `json:"slug" validate:"required,max=50"`
}

// List godoc
// @Summary List genres
// @Tags genres
// @Produce json
// @Param search query string false "Name substring, case-insensitive"
// @Success 200 {array} model.Genre
// @Router /genres [get]
func (h *GenreHandler) List(c echo.Context) error {
	limit, offset := listParams(c)
	genres, err := h.genreService.List(c.Request().Context(), c.QueryParam("search"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, genres)
}

// Create godoc
// @Summary Create a genre
// @Tags genres
// @Accept json
// @Produce json
// @Param request body GenreCreateRequest true "Genre data"
// @Success 201 {object} model.Genre
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /genres [post]
func (h *GenreHandler) Create(c echo.Context) error {
	var req GenreCreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	genre, err := h.genreService.Create(c.Request().Context(), req.Name, req.Slug)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, genre)
}

// Delete godoc
// @Summary Delete a genre by slug
// @Tags genres
// @Param slug path string true "Genre slug"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /genres/{slug} [delete]
func (h *GenreHandler) Delete(c echo.Context) error {
	if err := h.genreService.DeleteBySlug(c.Request().Context(), c.Param("slug")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
