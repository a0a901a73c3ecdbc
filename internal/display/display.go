package display

import (
	"fmt"
	"os"
	"strings"
)

const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
	Gray   = "\033[90m"
)

func Header(text string) {
	fmt.Printf("\n%s%s%s\n", Bold+Cyan, text, Reset)
	fmt.Println(strings.Repeat("─", min(len(text)+4, 80)))
}

func Success(text string) {
	fmt.Printf("%s✓%s %s\n", Green, Reset, text)
}

func Error(text string) {
	fmt.Fprintf(os.Stderr, "%s✗%s %s\n", Red, Reset, text)
}

func Warn(text string) {
	fmt.Printf("%s!%s %s\n", Yellow, Reset, text)
}

func Info(label, value string) {
	fmt.Printf("  %s%-20s%s %s\n", Dim, label, Reset, value)
}

func Spinner(text string) {
	fmt.Printf("\r%s⟳%s %s", Yellow, Reset, text)
}

func ClearLine() {
	fmt.Print("\r\033[K")
}

// RoleLabel is the colored speaker tag used in transcripts.
func RoleLabel(role string) string {
	switch role {
	case "user":
		return Yellow + "you" + Reset
	case "assistant":
		return Cyan + "triphelix" + Reset
	}
	return Gray + role + Reset
}

// HealthLabel colors a backend health status.
func HealthLabel(status string) string {
	switch status {
	case "healthy":
		return Green + "✓ healthy" + Reset
	case "":
		return Red + "✗ unreachable" + Reset
	}
	return Yellow + "! " + status + Reset
}
