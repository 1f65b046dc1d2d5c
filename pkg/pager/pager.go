// Package pager pipes output through an external pager program.
package pager

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/arthur-debert/tldr/pkg/logging"
)

// DefaultCommand is used when $PAGER is unset.
const DefaultCommand = "less -R"

// ErrUnsupported is returned on platforms without pager support.
var ErrUnsupported = errors.New("pager is not supported on this platform")

// Pager is a running pager process. Writes go to its standard input.
type Pager struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
}

// Command returns the pager command line: $PAGER when set, less -R otherwise.
func Command() string {
	if p := os.Getenv("PAGER"); p != "" {
		return p
	}
	return DefaultCommand
}

// Start launches command through the shell with out as its output. An
// empty command means Command().
func Start(command string, out io.Writer) (*Pager, error) {
	if runtime.GOOS == "windows" {
		return nil, ErrUnsupported
	}
	if command == "" {
		command = Command()
	}

	cmd := exec.Command("sh", "-c", command)
	cmd.Stdout = out
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open pager input: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start pager %q: %w", command, err)
	}

	logger := logging.GetLogger("pager")
	logger.Debug().Str("command", command).Msg("Started pager")
	return &Pager{cmd: cmd, stdin: stdin}, nil
}

// Write sends b to the pager.
func (p *Pager) Write(b []byte) (int, error) {
	return p.stdin.Write(b)
}

// Close ends the pager's input and waits for the user to quit it.
func (p *Pager) Close() error {
	closeErr := p.stdin.Close()
	if err := p.cmd.Wait(); err != nil {
		return fmt.Errorf("pager exited: %w", err)
	}
	return closeErr
}
