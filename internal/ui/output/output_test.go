package output_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/gendocs/internal/ui/output"
	"go.trai.ch/gendocs/internal/ui/style"
)

func TestColorProfile_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, output.ColorProfile())
}

func TestNew_PlainWithoutColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	out := output.New(&buf)
	_, err := out.WriteString(out.String("hello").Foreground(termenv.ANSIRed).String())
	assert.NoError(t, err)
	assert.Equal(t, "hello", buf.String())
}

func TestRenderer(t *testing.T) {
	t.Run("no color", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		r := output.Renderer(&bytes.Buffer{})
		assert.Equal(t, termenv.Ascii, r.ColorProfile())
		assert.Equal(t, "+", r.NewStyle().Foreground(style.Green).Render("+"))
	})

	t.Run("true color", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		r := output.Renderer(&bytes.Buffer{})
		r.SetColorProfile(termenv.TrueColor)
		rendered := r.NewStyle().Foreground(style.Green).Render("+")
		assert.NotEqual(t, "+", rendered)
		assert.Contains(t, rendered, "+")
	})
}
