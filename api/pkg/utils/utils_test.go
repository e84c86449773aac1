package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.NotEqual(t, a, b)
	assert.True(t, IsUUID(a))
	assert.False(t, IsUUID("temple-1"))
}

func TestValidator(t *testing.T) {
	v := NewValidator()

	assert.True(t, v.ValidateEmail("demo@example.com"))
	assert.False(t, v.ValidateEmail("demo@"))
	assert.True(t, v.ValidateURL("https://images.unsplash.com/photo-1"))
	assert.False(t, v.ValidateURL("ftp://example.com"))

	assert.True(t, v.ValidateUserID("demo-user"))
	assert.True(t, v.ValidateUserID("3f1c2a4e-9d7b-4c1a-8e2f-0b6d5a4c3e21"))
	assert.False(t, v.ValidateUserID(""))
	assert.False(t, v.ValidateUserID("../etc/passwd"))
	assert.False(t, v.ValidateUserID("robert'); drop table trips;--"))

	assert.Equal(t, "Kyoto trip", v.SanitizeInput("  Kyoto\x00 trip\n "))
}

func TestSplitCSV(t *testing.T) {
	assert.Nil(t, SplitCSV(""))
	assert.Nil(t, SplitCSV("  "))
	assert.Equal(t, []string{"temples", "food"}, SplitCSV("temples, food,,"))
}

func TestPagination(t *testing.T) {
	p := NewPagination(0, 0, 45)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNextPage())
	assert.False(t, p.HasPrevPage())

	p = NewPagination(3, 500, 0)
	assert.Equal(t, 100, p.Limit)
	assert.Equal(t, 1, p.TotalPages)
	assert.Equal(t, 200, p.GetOffset())
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{3, 4}, Paginate(items, NewPagination(2, 2, len(items))))
	assert.Equal(t, []int{5}, Paginate(items, NewPagination(3, 2, len(items))))
	assert.Empty(t, Paginate(items, NewPagination(4, 2, len(items))))
}

func TestValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("Invalid trip preferences", map[string]string{"adults": "At least one adult is required"})

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid trip preferences", body["error"])
	assert.Contains(t, body["details"], "adults")
	assert.NotContains(t, body, "data")
}

func TestNewPaginatedResponse(t *testing.T) {
	resp := NewPaginatedResponse([]int{1, 2}, NewPagination(1, 2, 5), "ok")

	meta, ok := resp.Meta.(PageMeta)
	require.True(t, ok)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.False(t, meta.HasPrev)
}
