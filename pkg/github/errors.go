package github

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/go-github/v66/github"
)

var (
	// ErrInvalidRepoRef is matched by errors from ParseRepoRef
	ErrInvalidRepoRef = errors.New("invalid repository reference")
	// ErrInvalidColorFormat is matched by color decoding errors
	ErrInvalidColorFormat = errors.New("invalid color format")
	// ErrInvalidLabelData is matched by label list decoding errors
	ErrInvalidLabelData = errors.New("invalid label data")
	// ErrUnauthorized is matched by gateway errors caused by a rejected token
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNoLabelList is the cause of a LabelDataError for a document without a label list
	ErrNoLabelList = errors.New("document does not contain a label list")
)

// ErrorType represents different categories of GitHub API errors
type ErrorType string

const (
	ErrorTypeAuth       ErrorType = "authentication"
	ErrorTypePermission ErrorType = "permission"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeRateLimit  ErrorType = "rate_limit"
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeConflict   ErrorType = "conflict"
	ErrorTypeUnknown    ErrorType = "unknown"
)

// GitHubError represents a failed call to the GitHub labels API.
// StatusCode and Body are set whenever the API answered with a non-2xx status.
type GitHubError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Cause      error     `json:"-"`
	Resource   string    `json:"resource,omitempty"`
	StatusCode int       `json:"status_code,omitempty"`
	Body       string    `json:"body,omitempty"`
}

// Error implements the error interface
func (e *GitHubError) Error() string {
	msg := e.Message
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.StatusCode)
	}
	if e.Resource != "" {
		return fmt.Sprintf("%s error for %s: %s", e.Type, e.Resource, msg)
	}
	return fmt.Sprintf("%s error: %s", e.Type, msg)
}

// Unwrap returns the underlying error
func (e *GitHubError) Unwrap() error {
	return e.Cause
}

// Is matches ErrUnauthorized for authentication failures
func (e *GitHubError) Is(target error) bool {
	return target == ErrUnauthorized && e.Type == ErrorTypeAuth
}

// NewGitHubError creates a new GitHubError with the specified type and message
func NewGitHubError(errorType ErrorType, message string, cause error) *GitHubError {
	return &GitHubError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// WrapGitHubError wraps an error returned by go-github into a GitHubError
func WrapGitHubError(err error, resource string) *GitHubError {
	if err == nil {
		return nil
	}

	// If it's already a GitHubError, return as-is
	var ghErr *GitHubError
	if errors.As(err, &ghErr) {
		if ghErr.Resource == "" {
			ghErr.Resource = resource
		}
		return ghErr
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &GitHubError{
			Type:       ErrorTypeRateLimit,
			Message:    fmt.Sprintf("Rate limit exceeded. Reset at %v", rateErr.Rate.Reset.Time),
			Cause:      err,
			Resource:   resource,
			StatusCode: statusCode(rateErr.Response),
			Body:       rateErr.Message,
		}
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &GitHubError{
			Type:       ErrorTypeRateLimit,
			Message:    "Secondary rate limit triggered. Please wait before retrying",
			Cause:      err,
			Resource:   resource,
			StatusCode: statusCode(abuseErr.Response),
			Body:       abuseErr.Message,
		}
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		return parseGitHubAPIError(respErr, resource)
	}

	if isNetworkError(err) {
		return &GitHubError{
			Type:     ErrorTypeNetwork,
			Message:  "Network error occurred. Please check your connection and try again",
			Cause:    err,
			Resource: resource,
		}
	}

	return &GitHubError{
		Type:     ErrorTypeUnknown,
		Message:  err.Error(),
		Cause:    err,
		Resource: resource,
	}
}

// parseGitHubAPIError parses GitHub API error responses into structured errors
func parseGitHubAPIError(ghErr *github.ErrorResponse, resource string) *GitHubError {
	baseErr := &GitHubError{
		Resource:   resource,
		Cause:      ghErr,
		StatusCode: ghErr.Response.StatusCode,
		Body:       responseBody(ghErr),
	}

	switch ghErr.Response.StatusCode {
	case http.StatusUnauthorized:
		baseErr.Type = ErrorTypeAuth
		baseErr.Message = "Authentication failed. Please check your GitHub token"

		if strings.Contains(strings.ToLower(ghErr.Message), "credentials") {
			baseErr.Message = "Invalid or expired GitHub token. Run 'labelexim login' with a valid token"
		}

	case http.StatusForbidden:
		if strings.Contains(strings.ToLower(ghErr.Message), "rate limit") {
			baseErr.Type = ErrorTypeRateLimit
			baseErr.Message = "GitHub API rate limit exceeded. Please wait before retrying"
		} else {
			baseErr.Type = ErrorTypePermission
			baseErr.Message = "Insufficient permissions. Your token may not have the required scopes (repo or public_repo)"
		}

	case http.StatusNotFound:
		baseErr.Type = ErrorTypeNotFound

		if strings.HasPrefix(resource, "label ") {
			baseErr.Message = "Label not found"
		} else {
			baseErr.Message = "Repository not found. Check the repository name and your access permissions"
		}

	case http.StatusConflict:
		baseErr.Type = ErrorTypeConflict
		baseErr.Message = "Resource conflict occurred"

	case http.StatusUnprocessableEntity:
		baseErr.Type = ErrorTypeValidation
		baseErr.Message = "Validation failed"

		if len(ghErr.Errors) > 0 {
			var validationErrors []string
			for _, err := range ghErr.Errors {
				switch {
				case err.Code == "already_exists":
					baseErr.Type = ErrorTypeConflict
					validationErrors = append(validationErrors, "a label with the same name already exists")
				case err.Field != "" && err.Message != "":
					validationErrors = append(validationErrors, fmt.Sprintf("%s: %s", err.Field, err.Message))
				case err.Field != "":
					validationErrors = append(validationErrors, fmt.Sprintf("%s: %s", err.Field, err.Code))
				default:
					validationErrors = append(validationErrors, err.Message)
				}
			}
			baseErr.Message = fmt.Sprintf("Validation failed: %s", strings.Join(validationErrors, "; "))
		}

	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		baseErr.Type = ErrorTypeNetwork
		baseErr.Message = "GitHub API is temporarily unavailable. Please try again later"

	default:
		baseErr.Type = ErrorTypeUnknown
		baseErr.Message = ghErr.Message
	}

	return baseErr
}

// responseBody returns the raw error body. go-github re-populates the response
// body after decoding it, so it can be read once more here.
func responseBody(ghErr *github.ErrorResponse) string {
	if ghErr.Response == nil || ghErr.Response.Body == nil {
		return ghErr.Message
	}

	data, err := io.ReadAll(ghErr.Response.Body)
	if err != nil || len(data) == 0 {
		return ghErr.Message
	}
	return strings.TrimSpace(string(data))
}

func statusCode(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}

// isNetworkError checks if an error is a network-related error
func isNetworkError(err error) bool {
	errStr := strings.ToLower(err.Error())
	networkKeywords := []string{
		"connection refused",
		"connection reset",
		"connection timeout",
		"network is unreachable",
		"no such host",
		"timeout",
		"dial tcp",
		"i/o timeout",
		"context deadline exceeded",
	}

	for _, keyword := range networkKeywords {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}
	return false
}

// ValidationError represents a label validation error
type ValidationError struct {
	Field   string `json:"field"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("validation error for field '%s' (value: %s): %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	if len(e) == 1 {
		return e[0].Error()
	}

	var messages []string
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed with %d errors: %s", len(e), strings.Join(messages, "; "))
}

// Add adds a validation error to the collection
func (e *ValidationErrors) Add(field, value, message string) {
	*e = append(*e, ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// LabelDataError reports a label document that could not be decoded.
// The whole document is rejected; no labels are returned alongside it.
type LabelDataError struct {
	Source string
	Cause  error
}

// Error implements the error interface
func (e *LabelDataError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("invalid label data in %s: %v", e.Source, e.Cause)
	}
	return fmt.Sprintf("invalid label data: %v", e.Cause)
}

// Unwrap returns the underlying error
func (e *LabelDataError) Unwrap() error {
	return e.Cause
}

// Is reports ErrInvalidLabelData as a match so callers can use errors.Is
func (e *LabelDataError) Is(target error) bool {
	return target == ErrInvalidLabelData
}

// OperationError reports the reconciliation step that aborted an apply run
type OperationError struct {
	Type  ChangeType
	Label string
	Err   error
}

// Error implements the error interface
func (e *OperationError) Error() string {
	return fmt.Sprintf("failed to %s label %q: %v", e.Type, e.Label, e.Err)
}

// Unwrap returns the underlying error
func (e *OperationError) Unwrap() error {
	return e.Err
}
