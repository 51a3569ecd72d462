package logger

import "sync/atomic"

// ANSI escape sequences for terminal colors.
const (
	ansiReset   = "\033[0m"
	ansiBold    = "\033[1m"
	ansiRed     = "\033[31m"
	ansiGreen   = "\033[32m"
	ansiYellow  = "\033[33m"
	ansiBlue    = "\033[34m"
	ansiMagenta = "\033[35m"
	ansiCyan    = "\033[36m"
)

// colorDisabled makes every color helper the identity function when set.
// Suitable for non-terminal environments and log capture.
var colorDisabled atomic.Bool

// DisableColor turns all color helpers into identity functions.
func DisableColor() { colorDisabled.Store(true) }

// EnableColor re-enables the color helpers.
func EnableColor() { colorDisabled.Store(false) }

func colorize(code, s string) string {
	if colorDisabled.Load() {
		return s
	}
	return code + s + ansiReset
}

// Bold wraps s in a bold escape sequence.
func Bold(s string) string { return colorize(ansiBold, s) }

// Red wraps s in a red escape sequence.
func Red(s string) string { return colorize(ansiRed, s) }

// Green wraps s in a green escape sequence.
func Green(s string) string { return colorize(ansiGreen, s) }

// Yellow wraps s in a yellow escape sequence.
func Yellow(s string) string { return colorize(ansiYellow, s) }

// Blue wraps s in a blue escape sequence.
func Blue(s string) string { return colorize(ansiBlue, s) }

// Magenta wraps s in a magenta escape sequence.
func Magenta(s string) string { return colorize(ansiMagenta, s) }

// Cyan wraps s in a cyan escape sequence.
func Cyan(s string) string { return colorize(ansiCyan, s) }
