package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type previewData struct {
	Value    string   `json:"value"`
	Preview  string   `json:"preview"`
	Warnings []string `json:"warnings"`
	Error    string   `json:"error"`
}

func TestPreviewName(t *testing.T) {
	app := fiber.New()
	app.Post("/names/preview", PreviewName)

	tests := []struct {
		name      string
		input     string
		preview   string
		warnings  int
		wantError bool
	}{
		{name: "clean", input: "black beans", preview: "Black Beans"},
		{name: "collapses spaces", input: "canned   beans", preview: "Canned Beans", warnings: 1},
		{name: "repeated word", input: "rice rice", preview: "Rice Rice", warnings: 1, wantError: true},
		{name: "too short", input: "ab", preview: "Ab", wantError: true},
		{name: "truncated", input: strings.Repeat("a", 50), preview: "A" + strings.Repeat("a", 35), warnings: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := doJSON(t, app, http.MethodPost, "/names/preview", NamePreviewRequest{Name: tt.input})

			require.Equal(t, fiber.StatusOK, status)
			data := decode[previewData](t, env.Data)
			assert.Equal(t, tt.preview, data.Preview)
			assert.Len(t, data.Warnings, tt.warnings)
			if tt.wantError {
				assert.NotEmpty(t, data.Error)
			} else {
				assert.Empty(t, data.Error)
			}
		})
	}
}
