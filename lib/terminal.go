package lib

import (
	"fmt"
	"os"
)

const (
	ColorRed     = "\033[0;31m"
	ColorGreen   = "\033[0;32m"
	ColorYellow  = "\033[0;33m"
	ColorBlue    = "\033[0;34m"
	ColorMagenta = "\033[0;35m"
	ColorClear   = "\033[0m"
)

var ERR = "× ERR:"
var WARN = "! WARN:"
var INFO = ">"
var OK = "✓"
var RELOAD = "↻"
var ITEM = "-"

func UseColor(use bool) {
	if use {
		ERR = Red(ERR)
		WARN = Yellow(WARN)
		INFO = Yellow(INFO)
		OK = Green(OK)
		RELOAD = Blue(RELOAD)
		ITEM = Magenta(ITEM)
	}
}

func Print(a ...any) {
	_, _ = fmt.Fprintln(os.Stdout, a...)
}

func PrintError(a ...any) {
	_, _ = fmt.Fprintln(os.Stderr, append([]any{ERR}, a...)...)
}

func PrintWarn(a ...any) {
	_, _ = fmt.Fprintln(os.Stderr, append([]any{WARN}, a...)...)
}

func PrintInfo(a ...any) {
	_, _ = fmt.Fprintln(os.Stdout, append([]any{INFO}, a...)...)
}

func PrintInfof(format string, a ...any) {
	_, _ = fmt.Fprintf(os.Stdout, "%s "+format, append([]any{INFO}, a...)...)
}

func PrintOk(a ...any) {
	_, _ = fmt.Fprintln(os.Stdout, append([]any{OK}, a...)...)
}

func PrintItem(a ...any) {
	_, _ = fmt.Fprintln(os.Stdout, append([]any{ITEM}, a...)...)
}

func PrintReload(a ...any) {
	_, _ = fmt.Fprintln(os.Stdout, append([]any{RELOAD}, a...)...)
}

func Red(s string) string {
	return ColorRed + s + ColorClear
}

func Green(s string) string {
	return ColorGreen + s + ColorClear
}

func Yellow(s string) string {
	return ColorYellow + s + ColorClear
}

func Blue(s string) string {
	return ColorBlue + s + ColorClear
}

func Magenta(s string) string {
	return ColorMagenta + s + ColorClear
}
