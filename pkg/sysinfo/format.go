package sysinfo

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	// DefaultWidth 默认报告宽度
	DefaultWidth = 80
	// DefaultIndent 每行的缩进
	DefaultIndent = "  "

	columnSeparator = "   "
	valueSeparator  = ": "
	notePrefix      = "=> "
)

// TextFormatter lays out registry output as the printable report.
type TextFormatter struct {
	Width  int
	Indent string
}

// NewTextFormatter 创建指定宽度的 formatter，width <= 0 时使用默认宽度
func NewTextFormatter(width int) *TextFormatter {
	if width <= 0 {
		width = DefaultWidth
	}
	return &TextFormatter{Width: width, Indent: DefaultIndent}
}

// Format 实现 orchestrator.Formatter
func (f *TextFormatter) Format(headers []Header, notes, footnotes []string) string {
	return Format(headers, notes, footnotes, f.Width, f.Indent)
}

// Format renders headers, notes and footnotes as one text block without a
// trailing newline. Non-empty sections are separated by a blank line.
//
// Headers are placed in as many columns as fit in width, filled top to
// bottom then left to right.
func Format(headers []Header, notes, footnotes []string, width int, indent string) string {
	var sections []string
	if len(headers) > 0 {
		sections = append(sections, formatHeaders(headers, width-runewidth.StringWidth(indent), indent))
	}
	if len(notes) > 0 {
		lines := make([]string, len(notes))
		for i, note := range notes {
			lines[i] = indent + notePrefix + note
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	if len(footnotes) > 0 {
		lines := make([]string, len(footnotes))
		for i, note := range footnotes {
			lines[i] = indent + note
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	return strings.Join(sections, "\n\n")
}

// headerLayout 分列结果
type headerLayout struct {
	rows        int
	columns     [][]Header
	nameWidths  []int
	valueWidths []int
}

func (l headerLayout) width() int {
	total := len(columnSeparator) * (len(l.columns) - 1)
	for i := range l.columns {
		total += l.nameWidths[i] + l.valueWidths[i]
	}
	return total
}

func layoutHeaders(headers []Header, columns int) headerLayout {
	rows := (len(headers) + columns - 1) / columns
	l := headerLayout{rows: rows}
	for start := 0; start < len(headers); start += rows {
		end := min(start+rows, len(headers))
		col := headers[start:end]
		nameW, valueW := 0, 0
		for _, h := range col {
			nameW = max(nameW, runewidth.StringWidth(h.Name)+len(valueSeparator))
			valueW = max(valueW, runewidth.StringWidth(h.Value))
		}
		l.columns = append(l.columns, col)
		l.nameWidths = append(l.nameWidths, nameW)
		l.valueWidths = append(l.valueWidths, valueW)
	}
	return l
}

func formatHeaders(headers []Header, width int, indent string) string {
	layout := layoutHeaders(headers, 1)
	for columns := len(headers); columns > 1; columns-- {
		candidate := layoutHeaders(headers, columns)
		if candidate.width() <= width {
			layout = candidate
			break
		}
	}

	lines := make([]string, 0, layout.rows)
	for row := 0; row < layout.rows; row++ {
		var b strings.Builder
		b.WriteString(indent)
		for c, col := range layout.columns {
			if row >= len(col) {
				break
			}
			if c > 0 {
				b.WriteString(columnSeparator)
			}
			h := col[row]
			b.WriteString(runewidth.FillRight(h.Name+valueSeparator, layout.nameWidths[c]))
			b.WriteString(runewidth.FillRight(h.Value, layout.valueWidths[c]))
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	return strings.Join(lines, "\n")
}
