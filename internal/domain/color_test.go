package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveColor(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Color
	}{
		{"blau klein", "blue", Blue},
		{"blau groß", "BLUE", Blue},
		{"blau gemischt", "bLuE", Blue},
		{"blau mit leerzeichen", "  blue ", Blue},
		{"grün", "green", Green},
		{"grün groß", "GREEN", Green},
		{"leer", "", Green},
		{"unbekannt", "purple", Green},
		{"teilwort", "blueish", Green},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveColor(tt.input))
		})
	}
}

func TestColor_JSON(t *testing.T) {
	b, err := json.Marshal(Blue)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"blue"}`, string(b))
}

func TestIsKnownColor(t *testing.T) {
	assert.True(t, IsKnownColor("Blue"))
	assert.True(t, IsKnownColor("green"))
	assert.False(t, IsKnownColor("red"))
	assert.False(t, IsKnownColor(""))
}

func TestFilterUp(t *testing.T) {
	in := []Instance{
		{ID: "a", Status: StatusUp},
		{ID: "b", Status: StatusDown},
		{ID: "c", Status: StatusUp},
	}
	out := FilterUp(in)
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "c", out[1].ID)
}
