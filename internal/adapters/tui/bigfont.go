package tui

import (
	"strings"

	"github.com/dkrenn/tempus/internal/domain"
)

// glyphMap maps each renderable character to a 5-line pattern. '#'
// marks filled cells and is substituted with the active style's fill
// rune at render time.
var glyphMap = map[rune][5]string{
	'0': {
		"####",
		"#  #",
		"#  #",
		"#  #",
		"####",
	},
	'1': {
		" # ",
		"## ",
		" # ",
		" # ",
		"###",
	},
	'2': {
		"####",
		"   #",
		"####",
		"#   ",
		"####",
	},
	'3': {
		"####",
		"   #",
		"####",
		"   #",
		"####",
	},
	'4': {
		"#  #",
		"#  #",
		"####",
		"   #",
		"   #",
	},
	'5': {
		"####",
		"#   ",
		"####",
		"   #",
		"####",
	},
	'6': {
		"####",
		"#   ",
		"####",
		"#  #",
		"####",
	},
	'7': {
		"####",
		"   #",
		"  # ",
		" #  ",
		" #  ",
	},
	'8': {
		"####",
		"#  #",
		"####",
		"#  #",
		"####",
	},
	'9': {
		"####",
		"#  #",
		"####",
		"   #",
		"####",
	},
	':': {
		" ",
		"#",
		" ",
		"#",
		" ",
	},
	'.': {
		" ",
		" ",
		" ",
		" ",
		"#",
	},
	'-': {
		"    ",
		"    ",
		"####",
		"    ",
		"    ",
	},
	'+': {
		"    ",
		" ## ",
		"####",
		" ## ",
		"    ",
	},
	' ': {
		"  ",
		"  ",
		"  ",
		"  ",
		"  ",
	},
}

// styleFill maps each glyph style to its fill rune.
var styleFill = map[domain.Style]rune{
	domain.StyleFull:    '█',
	domain.StyleLight:   '░',
	domain.StyleMedium:  '▒',
	domain.StyleDark:    '▓',
	domain.StyleThick:   '▊',
	domain.StyleCross:   '╬',
	domain.StyleBraille: '⣿',
}

// renderBigText renders text as 5-line block glyphs in the given
// style. Characters without a glyph (the "y"/"d" unit letters) are
// skipped; callers put those on a separate plain line.
func renderBigText(text string, style domain.Style) string {
	fill, ok := styleFill[style]
	if !ok {
		fill = styleFill[domain.StyleFull]
	}

	var lines [5]strings.Builder
	for _, ch := range text {
		glyph, ok := glyphMap[ch]
		if !ok {
			continue
		}
		for i := 0; i < 5; i++ {
			if lines[i].Len() > 0 {
				lines[i].WriteRune(' ')
			}
			lines[i].WriteString(strings.Map(func(r rune) rune {
				if r == '#' {
					return fill
				}
				return r
			}, glyph[i]))
		}
	}

	out := make([]string, 5)
	for i := range lines {
		out[i] = lines[i].String()
	}
	return strings.Join(out, "\n")
}
