// Package clipboard provides cross-platform clipboard access via shell commands.
package clipboard

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"
)

// ErrClipboardUnavailable is returned when clipboard access is not available.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

type direction int

const (
	paste direction = iota
	copying
)

// commands lists candidate tools per OS, in order of preference.
var commands = map[string][]struct {
	paste, copy []string
}{
	"darwin": {
		{paste: []string{"pbpaste"}, copy: []string{"pbcopy"}},
	},
	"linux": {
		{paste: []string{"xclip", "-selection", "clipboard", "-o"}, copy: []string{"xclip", "-selection", "clipboard"}},
		{paste: []string{"xsel", "--clipboard", "--output"}, copy: []string{"xsel", "--clipboard", "--input"}},
		{paste: []string{"wl-paste", "--no-newline"}, copy: []string{"wl-copy"}},
	},
}

// getClipboardCommand returns the argv of the first available tool for goos.
func getClipboardCommand(goos string, dir direction, lookPath func(string) (string, error)) ([]string, error) {
	for _, c := range commands[goos] {
		argv := c.paste
		if dir == copying {
			argv = c.copy
		}
		if _, err := lookPath(argv[0]); err == nil {
			return argv, nil
		}
	}
	return nil, ErrClipboardUnavailable
}

// IsAvailable checks if clipboard functionality is available on this system.
func IsAvailable() bool {
	_, err := getClipboardCommand(runtime.GOOS, paste, exec.LookPath)
	return err == nil
}

// Paste returns the text currently on the system clipboard.
// Returns ErrClipboardUnavailable if clipboard access is not available.
func Paste() (string, error) {
	argv, err := getClipboardCommand(runtime.GOOS, paste, exec.LookPath)
	if err != nil {
		return "", err
	}
	out, err := exec.Command(argv[0], argv[1:]...).Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Copy copies the given text to the system clipboard.
// Returns ErrClipboardUnavailable if clipboard access is not available.
func Copy(text string) error {
	argv, err := getClipboardCommand(runtime.GOOS, copying, exec.LookPath)
	if err != nil {
		return err
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}
