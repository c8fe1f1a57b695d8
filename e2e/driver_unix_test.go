//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

const ringSize = 1 << 20 // 1 MiB of scrollback

var binPath = "unibooks_e2e"

// Raw terminal input
const (
	KeyEnter  = "\r"
	KeyEsc    = "\x1b"
	KeyCtrlC  = "\x03"
	KeyCtrlK  = "\x0b"
	KeyTab    = "\t"
	KeyDown   = "\x1b[B"
	KeyUp     = "\x1b[A"
	KeySearch = "/"
	KeyHelp   = "?"
	KeyQuit   = "q"
)

// ansiRe strips CSI, OSC, charset and keypad sequences plus carriage returns
var ansiRe = regexp.MustCompile(
	`(?:\x1b\[[0-9;?]*[ -/]*[@-~])|` +
		`(?:\x1b\][^\x07]*\x07)|` +
		`(?:\x1b[\(\)][A-Za-z])|` +
		`(?:\x1b=|\x1b>)|` +
		`\r`,
)

// TUI drives the unibooks binary inside a pty
type TUI struct {
	t         *testing.T
	pty       *os.File
	tty       *os.File
	cmd       *exec.Cmd
	workspace string

	// ring buffer of everything the app wrote
	mu   sync.Mutex
	buf  []byte
	head int
	full bool
}

// NewTUI creates a driver with its own temp workspace
func NewTUI(t *testing.T) *TUI {
	tui := &TUI{
		t:         t,
		buf:       make([]byte, ringSize),
		workspace: t.TempDir(),
	}
	t.Cleanup(tui.Cleanup)
	return tui
}

// Path returns name inside the workspace
func (tui *TUI) Path(name string) string {
	return filepath.Join(tui.workspace, name)
}

// WriteFile writes a workspace file
func (tui *TUI) WriteFile(name, content string) string {
	tui.t.Helper()
	p := tui.Path(name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		tui.t.Fatalf("write %s: %v", name, err)
	}
	return p
}

// Start launches unibooks with args in a 120x40 pty, logging into the workspace
func (tui *TUI) Start(args ...string) error {
	args = append([]string{
		"--config", tui.Path("unibooks.toml"),
		"--log-file", tui.Path("unibooks.log"),
	}, args...)
	tui.cmd = exec.Command(binPath, args...)
	tui.cmd.Dir = tui.workspace
	tui.cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C.UTF-8",
		"LANG=C.UTF-8",
		"HOME="+tui.workspace,
	)

	ptyFile, tty, err := pty.Open()
	if err != nil {
		return fmt.Errorf("failed to open pty: %w", err)
	}
	if err := pty.Setsize(ptyFile, &pty.Winsize{Rows: 40, Cols: 120}); err != nil {
		ptyFile.Close()
		tty.Close()
		return fmt.Errorf("failed to size pty: %w", err)
	}
	tui.pty = ptyFile
	tui.tty = tty
	tui.cmd.Stdout = tty
	tui.cmd.Stdin = tty
	tui.cmd.Stderr = tty

	if err := tui.cmd.Start(); err != nil {
		ptyFile.Close()
		tty.Close()
		return fmt.Errorf("failed to start command: %w", err)
	}

	tui.startReader()
	return nil
}

func (tui *TUI) startReader() {
	go func() {
		buf := make([]byte, 8192)
		for {
			n, err := tui.pty.Read(buf)
			if n > 0 {
				tui.mu.Lock()
				for i := 0; i < n; i++ {
					tui.buf[tui.head] = buf[i]
					tui.head = (tui.head + 1) % ringSize
					if tui.head == 0 {
						tui.full = true
					}
				}
				tui.mu.Unlock()
			}
			if err != nil {
				return
			}
		}
	}()
}

// Send writes raw keys to the app
func (tui *TUI) Send(keys string) {
	tui.t.Helper()
	if _, err := tui.pty.Write([]byte(keys)); err != nil {
		tui.t.Fatalf("send %q: %v", keys, err)
	}
}

// Type writes text one rune at a time so each arrives as one key
func (tui *TUI) Type(text string) {
	tui.t.Helper()
	for _, r := range text {
		tui.Send(string(r))
		time.Sleep(10 * time.Millisecond)
	}
}

// Ready waits for the first full frame
func (tui *TUI) Ready() bool {
	tui.t.Helper()
	return tui.SeePlain("University Books")
}

// SeePlain waits up to 3s for text in the ANSI-stripped output
func (tui *TUI) SeePlain(text string) bool {
	tui.t.Helper()
	return tui.WaitFor(func(s string) bool { return strings.Contains(s, text) }, 3*time.Second)
}

// SeePlainAfter waits for text written after mark, a prior Len
func (tui *TUI) SeePlainAfter(mark int, text string) bool {
	tui.t.Helper()
	return tui.WaitFor(func(s string) bool {
		return strings.Contains(s, text)
	}, 3*time.Second, mark)
}

// Len is the number of bytes captured so far
func (tui *TUI) Len() int {
	tui.mu.Lock()
	defer tui.mu.Unlock()
	if tui.full {
		return ringSize
	}
	return tui.head
}

// WaitFor polls the stripped output, optionally from a byte offset
func (tui *TUI) WaitFor(pred func(string) bool, timeout time.Duration, from ...int) bool {
	tui.t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		raw := tui.Snapshot()
		if len(from) > 0 && from[0] <= len(raw) {
			raw = raw[from[0]:]
		}
		if pred(ansiRe.ReplaceAllString(raw, "")) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(25 * time.Millisecond)
	}
}

// WaitExit waits for the process to end
func (tui *TUI) WaitExit(timeout time.Duration) error {
	done := make(chan error, 1)
	go func() { done <- tui.cmd.Wait() }()
	select {
	case err := <-done:
		tui.cmd = nil
		return err
	case <-time.After(timeout):
		return fmt.Errorf("app did not exit within %s", timeout)
	}
}

// Snapshot returns the captured output
func (tui *TUI) Snapshot() string {
	tui.mu.Lock()
	defer tui.mu.Unlock()
	if !tui.full {
		return string(tui.buf[:tui.head])
	}
	out := make([]byte, ringSize)
	copy(out, tui.buf[tui.head:])
	copy(out[ringSize-tui.head:], tui.buf[:tui.head])
	return string(out)
}

// DumpTail logs the last n bytes of stripped output, for failures
func (tui *TUI) DumpTail(n int) {
	s := ansiRe.ReplaceAllString(tui.Snapshot(), "")
	if len(s) > n {
		s = s[len(s)-n:]
	}
	tui.t.Logf("--- tail ---\n%s", s)
}

// Cleanup closes the pty and kills the app if it is still running
func (tui *TUI) Cleanup() {
	// closing the pty delivers SIGHUP
	if tui.pty != nil {
		_ = tui.pty.Close()
		tui.pty = nil
	}
	if tui.tty != nil {
		_ = tui.tty.Close()
		tui.tty = nil
	}
	if tui.cmd != nil && tui.cmd.Process != nil {
		_ = tui.cmd.Process.Kill()
		_, _ = tui.cmd.Process.Wait()
		tui.cmd = nil
	}
}
