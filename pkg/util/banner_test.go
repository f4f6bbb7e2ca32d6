package util

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "sysinfo", "ColorCyan")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.NotEmpty(t, lines)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, ColorCyan))
		assert.True(t, strings.HasSuffix(line, ColorReset))
	}
}

func TestColorCodeUnknown(t *testing.T) {
	assert.Equal(t, ColorReset, colorCode("ColorPurple"))
	assert.Equal(t, ColorRed, colorCode("ColorRed"))
}
