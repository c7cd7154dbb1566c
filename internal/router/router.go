package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/owlproh/api-yamdb/internal/auth"
	"github.com/owlproh/api-yamdb/internal/handler"
	"github.com/owlproh/api-yamdb/internal/metrics"
	"github.com/owlproh/api-yamdb/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	userRepo repository.UserRepository,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	categoryHandler *handler.CategoryHandler,
	genreHandler *handler.GenreHandler,
	titleHandler *handler.TitleHandler,
	reviewHandler *handler.ReviewHandler,
	commentHandler *handler.CommentHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(metrics.Middleware())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")

	// Auth flow, open to anyone.
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/token", authHandler.Token)

	// Public read-only catalog and content.
	api.GET("/categories", categoryHandler.List)
	api.GET("/genres", genreHandler.List)
	api.GET("/titles", titleHandler.List)
	api.GET("/titles/:id", titleHandler.Get)
	api.GET("/titles/:title_id/reviews", reviewHandler.List)
	api.GET("/titles/:title_id/reviews/:id", reviewHandler.Get)
	api.GET("/titles/:title_id/reviews/:review_id/comments", commentHandler.List)
	api.GET("/titles/:title_id/reviews/:review_id/comments/:id", commentHandler.Get)

	// Everything below requires a valid bearer token resolved to an
	// account; token validation delegates to our JWT service so the
	// context carries typed claims.
	jwtConfig := echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
	}
	secured := api.Group("", echojwt.WithConfig(jwtConfig), loadCurrentUser(userRepo))

	// Self-service profile. Registered before the :username routes so
	// the static segment wins.
	secured.GET("/users/me", userHandler.Me)
	secured.PATCH("/users/me", userHandler.UpdateMe)

	// Reviews and comments: any authenticated user creates; services
	// enforce author/moderator/admin on mutation.
	secured.POST("/titles/:title_id/reviews", reviewHandler.Create)
	secured.PATCH("/titles/:title_id/reviews/:id", reviewHandler.Update)
	secured.DELETE("/titles/:title_id/reviews/:id", reviewHandler.Delete)
	secured.POST("/titles/:title_id/reviews/:review_id/comments", commentHandler.Create)
	secured.PATCH("/titles/:title_id/reviews/:review_id/comments/:id", commentHandler.Update)
	secured.DELETE("/titles/:title_id/reviews/:review_id/comments/:id", commentHandler.Delete)

	// Catalog writes and the user directory are admin territory.
	admin := secured.Group("", requireAdmin)
	admin.POST("/categories", categoryHandler.Create)
	admin.DELETE("/categories/:slug", categoryHandler.Delete)
	admin.POST("/genres", genreHandler.Create)
	admin.DELETE("/genres/:slug", genreHandler.Delete)
	admin.POST("/titles", titleHandler.Create)
	admin.PATCH("/titles/:id", titleHandler.Update)
	admin.DELETE("/titles/:id", titleHandler.Delete)
	admin.GET("/users", userHandler.List)
	admin.POST("/users", userHandler.Create)
	admin.GET("/users/:username", userHandler.Get)
	admin.PATCH("/users/:username", userHandler.Update)
	admin.DELETE("/users/:username", userHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
