package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette.
var (
	ColorSuccess   = lipgloss.Color("#00D26A") // green  — confirmed, success
	ColorWarning   = lipgloss.Color("#FFB800") // yellow — pending, warning
	ColorError     = lipgloss.Color("#FF4444") // red    — failed, danger
	ColorAddress   = lipgloss.Color("#00B4D8") // cyan   — addresses, hashes
	ColorValue     = lipgloss.Color("#FFFFFF") // white bold — token values
	ColorMeta      = lipgloss.Color("#555555") // dim gray   — labels, hints
	ColorAccent    = lipgloss.Color("#9B5DE5") // purple     — titles
	ColorHighlight = lipgloss.Color("#F15BB5") // pink       — selected rows
)

// Base styles.
var (
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleAddress = lipgloss.NewStyle().Foreground(ColorAddress)
	StyleValue   = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	StyleMeta    = lipgloss.NewStyle().Foreground(ColorMeta)
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true).MarginBottom(1)

	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true).
			Underline(true)

	StyleSelected = lipgloss.NewStyle().
			Background(ColorHighlight).
			Foreground(lipgloss.Color("#000000")).
			Bold(true)
)

// Success formats a success message.
func Success(msg string) string { return StyleSuccess.Render("✓ " + msg) }

// Warn formats a warning message.
func Warn(msg string) string { return StyleWarning.Render("⚠ " + msg) }

// Err formats an error message.
func Err(msg string) string { return StyleError.Render("✗ " + msg) }

// Addr formats an address.
func Addr(a string) string { return StyleAddress.Render(a) }

// Val formats a value.
func Val(v string) string { return StyleValue.Render(v) }

// Meta formats label/hint text.
func Meta(m string) string { return StyleMeta.Render(m) }

// Info formats an informational message.
func Info(msg string) string { return StyleAddress.Render("ℹ " + msg) }

// Hint formats a follow-up suggestion.
func Hint(msg string) string { return StyleMeta.Render("  → " + msg) }

// TruncateAddr shortens an address or hash for display: 0x1234…5678.
func TruncateAddr(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}

// KeyValueBlock renders a titled block of aligned key/value rows.
func KeyValueBlock(title string, rows [][2]string) string {
	out := StyleTitle.Render("  "+title) + "\n"
	for _, row := range rows {
		out += "  " + StyleMeta.Render(padRight(row[0], 22)) + row[1] + "\n"
	}
	return out
}

// padRight pads by display width so non-ASCII labels stay aligned.
func padRight(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
