package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lazyvibe/failbell/internal/model"
	"github.com/lazyvibe/failbell/internal/settings"
	"github.com/lazyvibe/failbell/internal/ui/styles"
	"github.com/lazyvibe/failbell/pkg/utils"
)

const reportWidth = 60

// SettingsReport is everything check prints.
type SettingsReport struct {
	ConfigPath  string
	ConfigFound bool
	LoadErr     error
	Snapshot    *settings.Snapshot
	SoundPath   string
	Warnings    []string
}

// RenderSettings renders the effective configuration.
func RenderSettings(r SettingsReport) string {
	var b strings.Builder
	b.WriteString(styles.RenderFancyHeader("failbell configuration", reportWidth))
	b.WriteString("\n")

	source := utils.CollapseHome(r.ConfigPath)
	if !r.ConfigFound {
		source += styles.Dim.Render(" (not found, using defaults)")
	}
	row(&b, "config file", source)
	if r.LoadErr != nil {
		row(&b, "load error", styles.Bad.Render(r.LoadErr.Error()))
	}

	s := r.Snapshot
	if s == nil {
		s = settings.Defaults()
	}
	row(&b, settings.KeyEnabled, onOff(s.Enabled))
	row(&b, settings.KeyOutputScanningEnabled, onOff(s.OutputScanningEnabled))
	row(&b, settings.KeyDebounceMs, strconv.Itoa(s.DebounceMs)+" ms")
	row(&b, settings.KeyIgnoreExitCodes, joinInts(s.SortedIgnoreExitCodes()))

	custom := s.CustomSoundPath
	if custom == "" {
		custom = styles.Dim.Render("(bundled)")
	}
	row(&b, settings.KeyCustomSoundPath, custom)
	sound := r.SoundPath
	if sound == "" {
		sound = styles.Bad.Render("none, falling back to beep")
	}
	row(&b, "sound file", utils.CollapseHome(sound))
	row(&b, settings.KeyDesktopNotification, onOff(s.DesktopNotification))
	webhook := s.WebhookURL
	if webhook == "" {
		webhook = styles.Dim.Render("(none)")
	}
	row(&b, settings.KeyWebhookURL, webhook)

	b.WriteString("\n")
	b.WriteString(styles.SectionTitle.Render(fmt.Sprintf("%s (%d)", settings.KeyErrorPatterns, len(s.Patterns))))
	b.WriteString("\n")
	for _, p := range s.PatternStrings() {
		b.WriteString("  " + styles.OK.Render(styles.IconSuccess) + " " + styles.Value.Render(p) + "\n")
	}
	for _, p := range s.InvalidPatterns {
		b.WriteString("  " + styles.Bad.Render(styles.IconError) + " " + styles.Value.Render(p) + styles.Dim.Render("  invalid, ignored") + "\n")
	}

	if len(r.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range r.Warnings {
			b.WriteString(styles.WarnBadge.Render(styles.IconWarning) + " " + w + "\n")
		}
	}
	return b.String()
}

// RenderHistory renders alert records, newest first.
func RenderHistory(records []model.AlertRecord, now time.Time) string {
	if len(records) == 0 {
		return styles.Dim.Render("no alerts recorded") + "\n"
	}
	var b strings.Builder
	for _, rec := range records {
		name := rec.SessionName
		if name == "" {
			name = rec.SessionID
		}
		if len(name) > 20 {
			name = styles.TruncateWithEllipsis(name, 20)
		}
		fmt.Fprintf(&b, "%s %s  %s  %-20s %s\n",
			styles.RenderKindDot(string(rec.Kind)),
			styles.Dim.Render(shortID(rec.ID)),
			styles.Dim.Render(fmt.Sprintf("%-8s", relativeTime(rec.Time(), now))),
			name,
			styles.Value.Render(rec.Reason),
		)
		if rec.Excerpt != "" {
			b.WriteString("            " + styles.NoticeDetail.Render(styles.TruncateWithEllipsis(rec.Excerpt, reportWidth)) + "\n")
		}
	}
	return b.String()
}

func row(b *strings.Builder, key, value string) {
	b.WriteString(styles.Key.Render(key))
	b.WriteString(value)
	b.WriteString("\n")
}

func onOff(v bool) string {
	if v {
		return styles.OK.Render("on")
	}
	return styles.Dim.Render("off")
}

func joinInts(v []int) string {
	if len(v) == 0 {
		return styles.Dim.Render("(none)")
	}
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func relativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
