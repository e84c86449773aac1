package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// NewID returns a fresh uuid v4 string identifier
func NewID() string {
	return uuid.New().String()
}

// IsUUID reports whether s parses as a uuid
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

var (
	emailRegex   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	urlRegex     = regexp.MustCompile(`^https?://[^\s/$.?#].[^\s]*$`)
	userIDRegex  = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._@-]{0,127}$`)
	controlChars = regexp.MustCompile(`[\x00-\x1f\x7f-\x9f]`)
)

// Validator provides input validation functions
type Validator struct{}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateEmail validates email format
func (v *Validator) ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidateURL validates URL format
func (v *Validator) ValidateURL(url string) bool {
	return urlRegex.MatchString(url)
}

// ValidateUserID checks the shape of an X-User-Id header value
func (v *Validator) ValidateUserID(id string) bool {
	return userIDRegex.MatchString(id)
}

// SanitizeInput sanitizes user input
func (v *Validator) SanitizeInput(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")
	input = controlChars.ReplaceAllString(input, "")
	return strings.TrimSpace(input)
}

// SplitCSV splits a comma separated query value, dropping blanks
func SplitCSV(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Pagination helps with paginating results
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}

// NewPagination creates a new pagination instance
func NewPagination(page, limit, totalCount int) *Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	totalPages := (totalCount + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	return &Pagination{
		Page:       page,
		Limit:      limit,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}

// GetOffset returns the offset for database queries
func (p *Pagination) GetOffset() int {
	return (p.Page - 1) * p.Limit
}

// HasNextPage returns true if there's a next page
func (p *Pagination) HasNextPage() bool {
	return p.Page < p.TotalPages
}

// HasPrevPage returns true if there's a previous page
func (p *Pagination) HasPrevPage() bool {
	return p.Page > 1
}

// PageMeta is the pagination block of a paginated response
type PageMeta struct {
	Pagination
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

// Meta describes p for the response envelope
func (p *Pagination) Meta() PageMeta {
	return PageMeta{
		Pagination: *p,
		HasNext:    p.HasNextPage(),
		HasPrev:    p.HasPrevPage(),
	}
}

// Paginate returns the page of items described by p
func Paginate[T any](items []T, p *Pagination) []T {
	start := p.GetOffset()
	if start >= len(items) {
		return []T{}
	}
	end := start + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Response helpers
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Details interface{} `json:"details,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// NewSuccessResponse creates a success API response
func NewSuccessResponse(data interface{}, message string) *APIResponse {
	return &APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse creates an error API response
func NewErrorResponse(error string) *APIResponse {
	return &APIResponse{
		Success: false,
		Error:   error,
	}
}

// NewValidationErrorResponse creates an error response carrying field errors
func NewValidationErrorResponse(error string, details interface{}) *APIResponse {
	return &APIResponse{
		Success: false,
		Error:   error,
		Details: details,
	}
}

// NewPaginatedResponse creates a paginated API response
func NewPaginatedResponse(data interface{}, pagination *Pagination, message string) *APIResponse {
	return &APIResponse{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    pagination.Meta(),
	}
}
