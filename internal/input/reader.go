// Package input reads JSONL input into numbered lines.
package input

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
)

// Line is one non-blank input line. Number is the 1-based physical line
// position, counting blank lines, so diagnostics and generated identifiers
// refer to positions in the original file.
type Line struct {
	Number int
	Text   []byte
}

// ReadFile reads every non-blank line of a JSONL file. Failure to open the
// input is the process's only fatal error path.
func ReadFile(path string) ([]Line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("input: open %s: %w", path, err)
	}
	defer f.Close()

	lines, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("input: read %s: %w", path, err)
	}
	return lines, nil
}

// Read collects non-blank lines from a reader, numbering physical lines
// from 1. Lines have no length cap: an oversized record is still one line
// and gets judged by the mapper like any other.
func Read(r io.Reader) ([]Line, error) {
	br := bufio.NewReaderSize(r, 64*1024)

	var lines []Line
	num := 0
	for {
		text, err := br.ReadBytes('\n')
		if len(text) > 0 {
			num++
			if trimmed := bytes.TrimSpace(text); len(trimmed) > 0 {
				lines = append(lines, Line{Number: num, Text: trimmed})
			}
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
