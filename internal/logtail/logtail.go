// Package logtail reads the end of marquee's log file. The TUI owns the
// terminal while it runs, so its logs go to a file; `marquee logs` uses this
// package to show them afterwards.
package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxLineBytes bounds a single log line. Longer lines fail the scan.
const maxLineBytes = 1 << 20

// Options narrow what Tail returns.
type Options struct {
	// Lines is the maximum number of lines returned; zero or negative means
	// all matching lines.
	Lines int
	// Contains keeps only lines containing this substring, case-insensitively.
	Contains string
}

// TailFile returns the last matching lines of the file at path, oldest
// first. A missing file yields no lines and no error: nothing has been
// logged yet.
func TailFile(path string, opts Options) ([]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Tail(f, opts)
}

// Tail returns the last matching lines of r in one pass, keeping at most
// opts.Lines lines in memory.
func Tail(r io.Reader, opts Options) ([]string, error) {
	needle := strings.ToLower(opts.Contains)
	keep := func(line string) bool {
		return needle == "" || strings.Contains(strings.ToLower(line), needle)
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	if opts.Lines <= 0 {
		var all []string
		for scanner.Scan() {
			if line := scanner.Text(); keep(line) {
				all = append(all, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return all, nil
	}

	ring := make([]string, opts.Lines)
	next, count := 0, 0
	for scanner.Scan() {
		line := scanner.Text()
		if !keep(line) {
			continue
		}
		ring[next] = line
		next = (next + 1) % opts.Lines
		if count < opts.Lines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if count < opts.Lines {
		return ring[:count], nil
	}
	// Full ring: next points at the oldest line.
	return append(ring[next:], ring[:next]...), nil
}
