package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSearchRequestDefaults(t *testing.T) {
	req := NewSearchRequest("  Cats  ", "", "", "", "")

	assert.Equal(t, "Cats", req.Query)
	assert.Equal(t, DefaultCategory, req.Category)
	assert.Equal(t, DefaultLanguage, req.Language)
	assert.Equal(t, 1, req.Page)
	assert.Empty(t, req.Engines)
	assert.False(t, req.IsBlank())
}

func TestNewSearchRequestBlank(t *testing.T) {
	assert.True(t, NewSearchRequest(" \t\n", "images", "de", "2", "bing").IsBlank())
}

func TestNewUnavailableResponse(t *testing.T) {
	resp := NewUnavailableResponse("dogs")
	assert.Equal(t, "dogs", resp.Query)
	assert.Equal(t, 0, resp.NumberOfResults)
	assert.NotNil(t, resp.Results)
	assert.Empty(t, resp.Results)
}

func TestNewHealthResponse(t *testing.T) {
	assert.Equal(t, StatusHealthy, NewHealthResponse(true, false, "u").Status)
	assert.Equal(t, StatusHealthy, NewHealthResponse(false, true, "u").Status)
	assert.Equal(t, StatusUnhealthy, NewHealthResponse(false, false, "u").Status)
}

func TestTargetsOrder(t *testing.T) {
	targets := Targets("http://local", []string{"https://a", "https://b"})

	assert.Len(t, targets, 3)
	assert.True(t, targets[0].Primary)
	assert.Equal(t, "primary", targets[0].Kind())
	assert.Equal(t, "https://a", targets[1].BaseURL)
	assert.Equal(t, "fallback", targets[2].Kind())
	assert.Equal(t, "fallback-1", targets[2].Name)
}
