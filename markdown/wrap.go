package markdown

import (
	"strings"

	rw "github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// wrap greedily word-wraps plain text to the given display width, measuring
// with grapheme-aware widths so CJK and emoji do not overflow the column.
// Words wider than the width are broken mid-word.
func wrap(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	var line strings.Builder
	lineWidth := 0

	flush := func() {
		lines = append(lines, line.String())
		line.Reset()
		lineWidth = 0
	}

	for _, word := range strings.Fields(text) {
		w := uniseg.StringWidth(word)
		space := 0
		if lineWidth > 0 {
			space = 1
		}

		switch {
		case lineWidth+space+w <= width:
			if space > 0 {
				line.WriteByte(' ')
			}
			line.WriteString(word)
			lineWidth += space + w

		case w > width:
			// Break the oversized word rune by rune.
			if lineWidth > 0 {
				flush()
			}
			for _, r := range word {
				cw := rw.RuneWidth(r)
				if lineWidth+cw > width {
					flush()
				}
				line.WriteRune(r)
				lineWidth += cw
			}

		default:
			flush()
			line.WriteString(word)
			lineWidth = w
		}
	}

	if line.Len() > 0 || len(lines) == 0 {
		flush()
	}
	return lines
}
