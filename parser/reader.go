package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadLines reads a source file into positioned lines. Lines longer
// than MaxLineLength are reported to errs and dropped; the returned
// error covers I/O failure only.
func ReadLines(path string, errs *ErrorList) ([]Line, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- user-provided source path
	if err != nil {
		return nil, err
	}

	filename := filepath.Base(path)
	raw := strings.Split(string(content), "\n")
	// A trailing newline yields one empty trailing element, not a line.
	if len(raw) > 0 && raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}

	lines := make([]Line, 0, len(raw))
	for i, text := range raw {
		text = strings.TrimSuffix(text, "\r")
		pos := Position{Filename: filename, Line: i + 1}
		if len(text) > MaxLineLength {
			errs.AddError(NewError(pos, ErrorLexical,
				fmt.Sprintf("line exceeds %d characters", MaxLineLength)))
			continue
		}
		lines = append(lines, Line{Pos: pos, Text: text})
	}
	return lines, nil
}
