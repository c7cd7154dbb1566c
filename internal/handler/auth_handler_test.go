package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apierrors "github.com/owlproh/api-yamdb/internal/errors"
)

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	return e
}

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, email, username string) error {
	args := m.Called(ctx, email, username)
	return args.Error(0)
}

func (m *MockAuthService) ExchangeToken(ctx context.Context, username, confirmationCode string) (string, error) {
	args := m.Called(ctx, username, confirmationCode)
	return args.String(0), args.Error(1)
}

func TestAuthHandler_Signup(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockAuthService)
		expectedStatus int
	}{
		{
			name: "valid signup echoes the pair",
			body: `{"email":"alice@example.com","username":"alice"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Signup", mock.Anything, "alice@example.com", "alice").Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "malformed email fails validation",
			body:           `{"email":"not-an-email","username":"alice"}`,
			setupMock:      func(m *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing username fails validation",
			body:           `{"email":"alice@example.com"}`,
			setupMock:      func(m *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "reserved username maps to 400",
			body: `{"email":"me@example.com","username":"me"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Signup", mock.Anything, "me@example.com", "me").
					Return(apierrors.ErrUsernameReserved)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "partial collision maps to 400",
			body: `{"email":"new@example.com","username":"taken"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Signup", mock.Anything, "new@example.com", "taken").
					Return(apierrors.ErrUsernameTaken)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockAuthService)
			tt.setupMock(mockService)

			e := newTestEcho()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			h := NewAuthHandler(mockService)
			err := h.Signup(c)

			if err != nil {
				he, ok := err.(*echo.HTTPError)
				assert.True(t, ok)
				assert.Equal(t, tt.expectedStatus, he.Code)
			} else {
				assert.Equal(t, tt.expectedStatus, rec.Code)
			}
			if tt.expectedStatus == http.StatusOK {
				assert.Contains(t, rec.Body.String(), `"username":"alice"`)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_Token(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockAuthService)
		expectedStatus int
	}{
		{
			name: "valid exchange returns 201 with token",
			body: `{"username":"alice","confirmation_code":"the-code"}`,
			setupMock: func(m *MockAuthService) {
				m.On("ExchangeToken", mock.Anything, "alice", "the-code").
					Return("signed.jwt.token", nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "unknown user maps to 404",
			body: `{"username":"ghost","confirmation_code":"the-code"}`,
			setupMock: func(m *MockAuthService) {
				m.On("ExchangeToken", mock.Anything, "ghost", "the-code").
					Return("", apierrors.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "wrong code maps to 400",
			body: `{"username":"alice","confirmation_code":"wrong"}`,
			setupMock: func(m *MockAuthService) {
				m.On("ExchangeToken", mock.Anything, "alice", "wrong").
					Return("", apierrors.ErrBadConfirmationCode)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing code fails validation",
			body:           `{"username":"alice"}`,
			setupMock:      func(m *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockAuthService)
			tt.setupMock(mockService)

			e := newTestEcho()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			h := NewAuthHandler(mockService)
			err := h.Token(c)

			if err != nil {
				he, ok := err.(*echo.HTTPError)
				assert.True(t, ok)
				assert.Equal(t, tt.expectedStatus, he.Code)
			} else {
				assert.Equal(t, tt.expectedStatus, rec.Code)
			}
			if tt.expectedStatus == http.StatusCreated {
				assert.Contains(t, rec.Body.String(), `"token":"signed.jwt.token"`)
			}
			mockService.AssertExpectations(t)
		})
	}
}
