//go:build !windows

package geometry

import (
	"os"
	"os/exec"
	"runtime"
	"strings"

	"golang.org/x/sys/unix"
)

// queryOSSize reads the terminal's pixel and cell geometry via the
// TIOCGWINSZ ioctl on stdout. Returns zeros on failure so the caller
// falls back to its configured Size.
func queryOSSize() (spxW, spxH, scW, scH int) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, 0, 0
	}
	return int(ws.Xpixel), int(ws.Ypixel), int(ws.Col), int(ws.Row)
}

func currentOS() string {
	return strings.ToLower(runtime.GOOS)
}

// queryTmuxOriginalTerminal asks tmux for the client's outer TERM name it
// is multiplexing for and returns that one value as both the terminal
// type and the terminal name.
func queryTmuxOriginalTerminal() (termType, termName string, ok bool) {
	out, err := exec.Command("tmux", "display-message", "-p", "#{client_termname}").Output()
	if err != nil {
		return "", "", false
	}
	name := strings.TrimSpace(string(out))
	if name == "" {
		return "", "", false
	}
	return name, name, true
}
