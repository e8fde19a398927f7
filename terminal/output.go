package terminal

import (
	"regexp"
	"strings"
)

const (
	UserPrompt       = ">"
	PrivilegedPrompt = "#"
)

var (
	ansiEscape = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)
	promptLine = regexp.MustCompile(`^[\w.\-@/:()]+[>#]$`)
)

// StripANSI removes terminal escape sequences.
func StripANSI(text string) string {
	return ansiEscape.ReplaceAllString(text, "")
}

// LastLine is the text after the final line break, without escapes or
// trailing blanks. While a device waits for input this is its prompt.
func LastLine(text string) string {
	text = strings.TrimRight(StripANSI(text), " \t")
	if i := strings.LastIndexAny(text, "\r\n"); i >= 0 {
		text = text[i+1:]
	}
	return text
}

// IsPrompt reports whether text ends in a CLI prompt such as "router>" or
// "router(config)#".
func IsPrompt(text string) bool {
	return promptLine.MatchString(LastLine(text))
}

// IsPasswordPrompt also matches "Password:" prompts with a leading hostname
// or capital letter variants.
func IsPasswordPrompt(text string) bool {
	return strings.HasSuffix(strings.ToLower(LastLine(text)), "password:")
}

// Hostname extracts the device name from a prompt: "edge-1(config)#" is
// "edge-1".
func Hostname(prompt string) string {
	name := strings.TrimRight(prompt, UserPrompt+PrivilegedPrompt)
	if i := strings.Index(name, "("); i > 0 {
		name = name[:i]
	}
	return name
}

// CleanOutput turns what the device sent in reply to command into the
// command's output: the echoed command line and the trailing prompt are
// dropped, escapes are removed and line endings become "\n".
func CleanOutput(raw, command string) string {
	text := StripANSI(raw)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "")

	lines := strings.Split(text, "\n")
	if len(lines) > 0 && strings.Contains(lines[0], strings.TrimSpace(command)) {
		lines = lines[1:]
	}
	if len(lines) > 0 && IsPrompt(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
