// Package ui renders failbell's own output: notices around the wrapped
// session and the reports printed by check and history.
package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/lazyvibe/failbell/internal/alert"
	"github.com/lazyvibe/failbell/internal/ui/styles"
)

// NoticePrinter writes controller notices to a terminal stream. It is
// safe for concurrent use.
type NoticePrinter struct {
	mu       sync.Mutex
	w        io.Writer
	minLevel alert.Level
	raw      bool
}

// NewNoticePrinter prints notices at or above minLevel to w.
func NewNoticePrinter(w io.Writer, minLevel alert.Level) *NoticePrinter {
	return &NoticePrinter{w: w, minLevel: minLevel}
}

// SetRaw switches line endings to CRLF while the terminal is in raw mode.
func (p *NoticePrinter) SetRaw(raw bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.raw = raw
}

// Report implements alert.Reporter.
func (p *NoticePrinter) Report(n alert.Notice) {
	if n.Level < p.minLevel {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	eol := "\n"
	if p.raw {
		eol = "\r\n"
	}
	// Start on a fresh line; the session may have left the cursor mid-line.
	_, _ = fmt.Fprint(p.w, eol+FormatNotice(n)+eol)
}

// FormatNotice renders a notice as one styled line.
func FormatNotice(n alert.Notice) string {
	var badge string
	switch n.Level {
	case alert.LevelWarn:
		badge = styles.WarnBadge.Render(styles.IconWarning + " warn")
	case alert.LevelError:
		badge = styles.ErrorBadge.Render(styles.IconError + " error")
	default:
		badge = styles.InfoBadge.Render(styles.IconBell + " alert")
	}

	var b strings.Builder
	b.WriteString(styles.Brand.Render("[failbell]"))
	b.WriteString(" ")
	b.WriteString(badge)
	b.WriteString(" ")
	b.WriteString(styles.NoticeText.Render(n.Message))
	if n.Pattern != "" && !strings.Contains(n.Message, n.Pattern) {
		b.WriteString(" ")
		b.WriteString(styles.NoticeDetail.Render("pattern " + n.Pattern))
	}
	return b.String()
}
