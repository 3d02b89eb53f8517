// Package pdftext reads the text of PDF documents with the poppler
// pdftotext tool and returns it as pages of trimmed lines, the input shape
// of the extract package.
package pdftext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/adripedrejon/examcorpus/internal/logger"
)

// DefaultTool is the executable looked up on PATH.
const DefaultTool = "pdftotext"

// ErrToolNotFound is returned when the pdftotext executable is missing.
var ErrToolNotFound = errors.New("pdftotext not found: install poppler-utils (apt install poppler-utils, brew install poppler)")

// CommandRunner runs an external command and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return out, nil
}

// Reader extracts page text from PDF files.
type Reader struct {
	tool     string
	runner   CommandRunner
	lookPath func(string) (string, error)
}

// New returns a Reader that runs tool (DefaultTool when empty).
func New(tool string) *Reader {
	if tool == "" {
		tool = DefaultTool
	}
	return &Reader{tool: tool, runner: execRunner{}, lookPath: exec.LookPath}
}

// newWithRunner returns a Reader that delegates to runner and skips the PATH
// lookup.
func newWithRunner(tool string, runner CommandRunner) *Reader {
	r := New(tool)
	r.runner = runner
	r.lookPath = nil
	return r
}

// Pages returns the non-blank lines of every page of the PDF at path, in
// reading order.
func (r *Reader) Pages(ctx context.Context, path string) ([][]string, error) {
	if r.lookPath != nil {
		if _, err := r.lookPath(r.tool); err != nil {
			return nil, ErrToolNotFound
		}
	}
	logger.Debug("pdftext: %s %s", r.tool, path)
	args := []string{"-enc", "UTF-8", path, "-"}
	if !logger.IsVerbose() {
		args = append([]string{"-q"}, args...)
	}
	out, err := r.runner.Run(ctx, r.tool, args...)
	if err != nil {
		return nil, fmt.Errorf("pdftext: %s: %w", path, err)
	}
	pages := SplitPages(string(out))
	logger.Debug("pdftext: %d pages from %s", len(pages), path)
	return pages, nil
}

// SplitPages splits pdftotext output on form feeds. Lines are trimmed and
// blank lines dropped; the empty segment after the final form feed is not a
// page.
func SplitPages(text string) [][]string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	raw := strings.Split(text, "\f")
	if n := len(raw); n > 0 && strings.TrimSpace(raw[n-1]) == "" {
		raw = raw[:n-1]
	}
	pages := make([][]string, 0, len(raw))
	for _, page := range raw {
		lines := []string{}
		for _, line := range strings.Split(page, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, lines)
	}
	return pages
}
