package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/owlproh/api-yamdb/internal/auth"
	"github.com/owlproh/api-yamdb/internal/handler"
	"github.com/owlproh/api-yamdb/internal/model"
	"github.com/owlproh/api-yamdb/internal/repository"
	"github.com/owlproh/api-yamdb/internal/service"
)

// Stubs embed their interface so only the routes a test actually
// reaches need behavior; anything else panics loudly.
type stubAuthService struct{ service.AuthService }

type stubUserService struct{ service.UserService }

type stubCategoryService struct{ service.CategoryService }

func (stubCategoryService) Create(_ context.Context, name, slug string) (*model.Category, error) {
	return &model.Category{Name: name, Slug: slug}, nil
}

type stubGenreService struct{ service.GenreService }

type stubTitleService struct{ service.TitleService }

func (stubTitleService) List(context.Context, repository.TitleFilter) ([]model.Title, error) {
	return []model.Title{}, nil
}

type stubReviewService struct{ service.ReviewService }

type stubCommentService struct{ service.CommentService }

// stubUserRepository resolves every token subject to a fixed account.
type stubUserRepository struct {
	repository.UserRepository
	user *model.User
}

func (r stubUserRepository) FindByID(context.Context, uint) (*model.User, error) {
	return r.user, nil
}

func newTestServer(account *model.User) (*echo.Echo, *auth.JWTService) {
	e := echo.New()
	jwtService := auth.NewJWTService("test-secret")
	Register(
		e,
		jwtService,
		stubUserRepository{user: account},
		handler.NewAuthHandler(stubAuthService{}),
		handler.NewUserHandler(stubUserService{}),
		handler.NewCategoryHandler(stubCategoryService{}),
		handler.NewGenreHandler(stubGenreService{}),
		handler.NewTitleHandler(stubTitleService{}),
		handler.NewReviewHandler(stubReviewService{}),
		handler.NewCommentHandler(stubCommentService{}),
	)
	return e, jwtService
}

func doRequest(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRouter_AnonymousReadsAreOpen(t *testing.T) {
	e, _ := newTestServer(nil)

	rec := doRequest(e, http.MethodGet, "/api/v1/titles", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_AnonymousWritesAreUnauthorized(t *testing.T) {
	e, _ := newTestServer(nil)

	paths := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodPost, "/api/v1/titles/1/reviews", `{"text":"x","score":5}`},
		{http.MethodPost, "/api/v1/categories", `{"name":"Films","slug":"films"}`},
		{http.MethodPatch, "/api/v1/users/me", `{"bio":"hi"}`},
	}
	for _, p := range paths {
		rec := doRequest(e, p.method, p.path, "", p.body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", p.method, p.path)
	}
}

func TestRouter_GarbageTokenIsUnauthorized(t *testing.T) {
	e, _ := newTestServer(nil)

	rec := doRequest(e, http.MethodPost, "/api/v1/titles/1/reviews", "not.a.jwt", `{"text":"x","score":5}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_NonAdminCannotWriteCatalog(t *testing.T) {
	account := &model.User{ID: 3, Username: "critic", Role: model.RoleUser}
	e, jwtService := newTestServer(account)

	token, err := jwtService.GenerateAccessToken(account)
	assert.NoError(t, err)

	rec := doRequest(e, http.MethodPost, "/api/v1/categories", token, `{"name":"Films","slug":"films"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_ModeratorCannotWriteCatalog(t *testing.T) {
	account := &model.User{ID: 4, Username: "mod", Role: model.RoleModerator}
	e, jwtService := newTestServer(account)

	token, err := jwtService.GenerateAccessToken(account)
	assert.NoError(t, err)

	rec := doRequest(e, http.MethodPost, "/api/v1/categories", token, `{"name":"Films","slug":"films"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_AdminCanWriteCatalog(t *testing.T) {
	account := &model.User{ID: 1, Username: "boss", Role: model.RoleAdmin}
	e, jwtService := newTestServer(account)

	token, err := jwtService.GenerateAccessToken(account)
	assert.NoError(t, err)

	rec := doRequest(e, http.MethodPost, "/api/v1/categories", token, `{"name":"Films","slug":"films"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slug":"films"`)
}

func TestRouter_SuperuserOverridesStoredRole(t *testing.T) {
	account := &model.User{ID: 2, Username: "root", Role: model.RoleUser, IsSuperuser: true}
	e, jwtService := newTestServer(account)

	token, err := jwtService.GenerateAccessToken(account)
	assert.NoError(t, err)

	rec := doRequest(e, http.MethodPost, "/api/v1/categories", token, `{"name":"Films","slug":"films"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRouter_RoleIsReadFromStorageNotClaims(t *testing.T) {
	// The token was minted while the account was an admin; the stored
	// role has since been demoted and must win.
	demoted := &model.User{ID: 5, Username: "expired", Role: model.RoleUser}
	e, jwtService := newTestServer(demoted)

	token, err := jwtService.GenerateAccessToken(&model.User{ID: 5, Username: "expired", Role: model.RoleAdmin})
	assert.NoError(t, err)

	rec := doRequest(e, http.MethodPost, "/api/v1/categories", token, `{"name":"Films","slug":"films"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
