// Package ttyguard stops terminal color probing for commands whose output is
// meant for pipes. Import it for its side effect before anything renders.
package ttyguard

import (
	"os"
	"strings"
)

// init runs before the first lipgloss/termenv render. Background detection
// writes OSC/DSR queries to the terminal, which corrupts JSON or HTML piped
// from export. Termenv skips probing when CI is set.
func init() {
	if os.Getenv("CI") != "" {
		return
	}
	if !ShouldSuppress(os.Args, os.Getenv("ALERTGUIDE_TEST_MODE") != "") {
		return
	}
	_ = os.Setenv("CI", "1")
}

// nonInteractive lists subcommands that never start the TUI.
var nonInteractive = map[string]bool{
	"export":  true,
	"check":   true,
	"init":    true,
	"version": true,
}

// ShouldSuppress reports whether args describe a non-interactive run.
func ShouldSuppress(args []string, testMode bool) bool {
	if testMode {
		return true
	}
	if len(args) > 1 {
		args = args[1:]
	} else {
		return false
	}

	for _, arg := range args {
		switch arg {
		case "--version", "--help", "-h":
			return true
		}
		if strings.HasPrefix(arg, "-") {
			continue
		}
		// First positional argument is the subcommand.
		return nonInteractive[arg]
	}
	return false
}
