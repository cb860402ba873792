package console

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"conferencetimer/internal/core/model"
)

func TestRenderLogsOnlyChanges(t *testing.T) {
	var buf bytes.Buffer
	renderer := New(slog.New(slog.NewTextHandler(&buf, nil)))

	renderer.Render(model.DisplayState{Formatted: "00:31"})
	renderer.Render(model.DisplayState{Formatted: "00:31"})
	renderer.Render(model.DisplayState{Formatted: "00:30", Style: model.StyleAlert})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "level=INFO")
	assert.Contains(t, lines[0], "display=00:31")
	assert.Contains(t, lines[1], "level=WARN")
	assert.Contains(t, lines[1], "display=00:30")
}
