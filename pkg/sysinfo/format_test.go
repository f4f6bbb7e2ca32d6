package sysinfo_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/landscape-sysinfo/pkg/sysinfo"
)

func TestFormatSingleHeaderNoteFootnote(t *testing.T) {
	got := sysinfo.NewTextFormatter(0).Format(
		[]sysinfo.Header{{Name: "Test header", Value: "Test value"}},
		[]string{"Test note"},
		[]string{"Test footnote"},
	)
	want := "  Test header: Test value\n\n  => Test note\n\n  Test footnote"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Format() mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatEmptySectionsAreSkipped(t *testing.T) {
	assert.Equal(t, "", sysinfo.Format(nil, nil, nil, 80, "  "))
	assert.Equal(t, "  => only", sysinfo.Format(nil, []string{"only"}, nil, 80, "  "))
	assert.Equal(t, "  a: 1\n\n  foot",
		sysinfo.Format([]sysinfo.Header{{Name: "a", Value: "1"}}, nil, []string{"foot"}, 80, "  "))
}

func TestFormatHeadersInColumns(t *testing.T) {
	headers := []sysinfo.Header{
		{Name: "System load", Value: "0.42"},
		{Name: "Usage of /", Value: "12.3% of 19.56GB"},
		{Name: "Memory usage", Value: "25%"},
		{Name: "Swap usage", Value: "0%"},
		{Name: "Processes", Value: "130"},
		{Name: "Users logged in", Value: "0"},
		{Name: "IP address for eth0", Value: "10.0.0.1"},
	}
	got := sysinfo.Format(headers, nil, nil, 80, "  ")
	// 三列超出 80 列，退化为两列
	want := strings.Join([]string{
		"  System load:  0.42               Processes:           130",
		"  Usage of /:   12.3% of 19.56GB   Users logged in:     0",
		"  Memory usage: 25%                IP address for eth0: 10.0.0.1",
		"  Swap usage:   0%",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Format() mismatch (-want +got):\n%s", diff)
	}
	for _, line := range strings.Split(got, "\n") {
		assert.LessOrEqual(t, len(line), 80)
		assert.Equal(t, strings.TrimRight(line, " "), line)
	}
}

func TestFormatNarrowWidthFallsBackToOneColumn(t *testing.T) {
	headers := []sysinfo.Header{
		{Name: "a", Value: "1"},
		{Name: "long name", Value: "2"},
	}
	got := sysinfo.Format(headers, nil, nil, 10, "")
	assert.Equal(t, "a:         1\nlong name: 2", got)
}

func TestFormatWideCharacters(t *testing.T) {
	headers := []sysinfo.Header{
		{Name: "温度", Value: "40.0 C"},
		{Name: "b", Value: "x"},
	}
	got := sysinfo.Format(headers, nil, nil, 80, "")
	assert.Equal(t, "温度: 40.0 C   b: x", got)
}
