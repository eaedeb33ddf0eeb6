package tui

import (
	"os"
	"strings"
	"sync"
)

// Terminals can't change the user's font, so affordances come in a Unicode and
// an ASCII flavour.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func applyGlyphPreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("KANBAN_TUI_GLYPHS"))) {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphDelete() string {
	if glyphs() == glyphSetASCII {
		return "x"
	}
	return "✕"
}

// glyphPlaceholderFill is repeated to draw the drop marker.
func glyphPlaceholderFill() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "┄"
}

func glyphRule() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "─"
}

func glyphEllipsis() string {
	if glyphs() == glyphSetASCII {
		return "..."
	}
	return "…"
}
