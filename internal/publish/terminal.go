package publish

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

var (
	termRendererMu sync.Mutex
	// Cache renderers by style and wrap width. WithAutoStyle queries the
	// terminal and can block, so the style is always chosen up front.
	termRenderers = map[string]*glamour.TermRenderer{}
)

// RenderTerminal renders markdown for a terminal with glamour. style is one of
// dark|light|notty|auto. On failure the markdown is returned unchanged.
func RenderTerminal(md string, width int, style string) string {
	if width < 20 {
		width = 20
	}
	style = ResolveStyle(style)

	key := style + ":" + strconv.Itoa(width)
	termRendererMu.Lock()
	defer termRendererMu.Unlock()
	r := termRenderers[key]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		termRenderers[key] = rr
		r = rr
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n") + "\n"
}

// ResolveStyle maps "auto" (or empty) to a concrete glamour style using
// NO_COLOR, KANBAN_TUI_THEME and the COLORFGBG heuristic. Unknown names fall
// back to auto.
func ResolveStyle(style string) string {
	switch strings.ToLower(strings.TrimSpace(style)) {
	case styles.DarkStyle:
		return styles.DarkStyle
	case styles.LightStyle:
		return styles.LightStyle
	case styles.NoTTYStyle, "plain":
		return styles.NoTTYStyle
	}

	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return styles.NoTTYStyle
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("KANBAN_TUI_THEME"))) {
	case "light":
		return styles.LightStyle
	case "dark":
		return styles.DarkStyle
	}
	// COLORFGBG is often "fg;bg"; 0-6 are dark backgrounds.
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil && bg >= 7 {
			return styles.LightStyle
		}
	}
	return styles.DarkStyle
}
