package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user lookup misses.
	ErrUserNotFound = errors.New("user not found")
	// ErrTitleNotFound is returned when a title lookup misses.
	ErrTitleNotFound = errors.New("title not found")
	// ErrReviewNotFound is returned when a review lookup misses.
	ErrReviewNotFound = errors.New("review not found")
	// ErrCommentNotFound is returned when a comment lookup misses.
	ErrCommentNotFound = errors.New("comment not found")
	// ErrCategoryNotFound is returned when a category lookup misses.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrGenreNotFound is returned when a genre lookup misses.
	ErrGenreNotFound = errors.New("genre not found")

	// ErrUsernameReserved is returned for the reserved username "me".
	ErrUsernameReserved = errors.New("username is reserved")
	// ErrUsernameInvalid is returned when a username contains disallowed characters.
	ErrUsernameInvalid = errors.New("username contains disallowed characters")
	// ErrSlugInvalid is returned when a slug fails the allowed pattern.
	ErrSlugInvalid = errors.New("slug contains disallowed characters")
	// ErrUsernameTaken is returned when the username belongs to a different account.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrEmailTaken is returned when the email belongs to a different account.
	ErrEmailTaken = errors.New("email already taken")
	// ErrBadConfirmationCode is returned when code exchange fails.
	ErrBadConfirmationCode = errors.New("invalid or expired confirmation code")
	// ErrBadRole is returned for a role outside the closed set.
	ErrBadRole = errors.New("unknown role")

	// ErrYearInvalid is returned when a title year is negative or in the future.
	ErrYearInvalid = errors.New("year must be between 0 and the current year")
	// ErrScoreInvalid is returned when a review score falls outside 1..10.
	ErrScoreInvalid = errors.New("score must be between 1 and 10")
	// ErrUnknownCategory is returned when a category slug resolves to nothing.
	ErrUnknownCategory = errors.New("unknown category slug")
	// ErrUnknownGenre is returned when a genre slug resolves to nothing.
	ErrUnknownGenre = errors.New("unknown genre slug")

	// ErrTitleExists is returned on a duplicate (year, name) pair.
	ErrTitleExists = errors.New("title with this name and year already exists")
	// ErrReviewExists is returned when the author already reviewed the title.
	ErrReviewExists = errors.New("you have already reviewed this title")
	// ErrSlugExists is returned on a duplicate category or genre slug.
	ErrSlugExists = errors.New("slug already exists")
	// ErrUserExists is returned on a duplicate username or email in the directory.
	ErrUserExists = errors.New("user with this username or email already exists")

	// ErrForbidden is returned when the caller's role or ownership is insufficient.
	ErrForbidden = errors.New("insufficient permissions")
	// ErrUnauthorized is returned when no valid identity accompanies the request.
	ErrUnauthorized = errors.New("authentication required")
)

// ErrorResponse is the standardized error payload.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}

// HTTPError carries an HTTP status alongside a machine-readable code and
// optional field-level details.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Details    map[string]string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// WithDetail attaches a field-level detail and returns the error.
func (e *HTTPError) WithDetail(field, problem string) *HTTPError {
	if e.Details == nil {
		e.Details = map[string]string{}
	}
	e.Details[field] = problem
	return e
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:   e.Message,
		Code:    e.Code,
		Details: e.Details,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrTitleNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TITLE_NOT_FOUND")
	case errors.Is(err, ErrReviewNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "REVIEW_NOT_FOUND")
	case errors.Is(err, ErrCommentNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "COMMENT_NOT_FOUND")
	case errors.Is(err, ErrCategoryNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CATEGORY_NOT_FOUND")
	case errors.Is(err, ErrGenreNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "GENRE_NOT_FOUND")
	case errors.Is(err, ErrUsernameReserved):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "USERNAME_RESERVED").WithDetail("username", "reserved")
	case errors.Is(err, ErrUsernameInvalid):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "USERNAME_INVALID").WithDetail("username", "disallowed characters")
	case errors.Is(err, ErrSlugInvalid):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SLUG_INVALID").WithDetail("slug", "disallowed characters")
	case errors.Is(err, ErrUsernameTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "USERNAME_TAKEN").WithDetail("username", "taken")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_TAKEN").WithDetail("email", "taken")
	case errors.Is(err, ErrBadConfirmationCode):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "BAD_CONFIRMATION_CODE")
	case errors.Is(err, ErrBadRole):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "BAD_ROLE").WithDetail("role", "unknown")
	case errors.Is(err, ErrYearInvalid):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "YEAR_INVALID").WithDetail("year", "out of range")
	case errors.Is(err, ErrScoreInvalid):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SCORE_INVALID").WithDetail("score", "out of range")
	case errors.Is(err, ErrUnknownCategory):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "UNKNOWN_CATEGORY").WithDetail("category", "unknown slug")
	case errors.Is(err, ErrUnknownGenre):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "UNKNOWN_GENRE").WithDetail("genre", "unknown slug")
	case errors.Is(err, ErrTitleExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "TITLE_EXISTS")
	case errors.Is(err, ErrReviewExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "REVIEW_EXISTS")
	case errors.Is(err, ErrSlugExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "SLUG_EXISTS")
	case errors.Is(err, ErrUserExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "USER_EXISTS")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHORIZED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
