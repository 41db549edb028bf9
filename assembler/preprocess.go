package assembler

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/maayan2299/assembler/parser"
)

// preprocess expands macros: it reads srcPath and writes dstPath with
// every macr/endmacr block removed and every invocation site replaced
// by the macro body. Definitions are neither nestable nor re-expanded.
func (a *Assembler) preprocess(srcPath, dstPath string) (err error) {
	in, err := os.Open(srcPath) // #nosec G304 -- user-provided source path
	if err != nil {
		return fmt.Errorf("cannot open source file: %w", err)
	}
	defer func() {
		if closeErr := in.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	out, err := os.Create(dstPath) // #nosec G304 -- derived output path
	if err != nil {
		return fmt.Errorf("cannot create expanded file: %w", err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	filename := filepath.Base(srcPath)
	w := bufio.NewWriter(out)
	scanner := bufio.NewScanner(in)

	var current *parser.Macro
	truncated := make(map[string]bool)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		pos := parser.Position{Filename: filename, Line: lineNum}
		fields := strings.Fields(line)
		head := ""
		if len(fields) > 0 {
			head = fields[0]
		}

		switch {
		case head == parser.MacroEnd:
			current = nil

		case current != nil:
			if !a.Macros.Append(current, line) && !truncated[current.Name] {
				truncated[current.Name] = true
				a.errs.AddWarning(&parser.Warning{
					Pos: pos,
					Message: fmt.Sprintf("macro %q exceeds %d lines, remainder dropped",
						current.Name, parser.MaxMacroBodyLines),
				})
			}

		case head == parser.MacroStart:
			if len(fields) < 2 {
				a.errorf(pos, parser.ErrorMacroExpansion, "macr requires a name")
				continue
			}
			name := fields[1]
			if !parser.IsValidLabelName(name) {
				a.errorf(pos, parser.ErrorMacroExpansion, "invalid macro name %q", name)
			}
			macro, defineErr := a.Macros.Define(name, pos)
			if defineErr != nil {
				a.errorf(pos, parser.ErrorMacroExpansion, "%v", defineErr)
				macro = &parser.Macro{Name: name, Pos: pos} // collect but discard
			}
			current = macro

		default:
			if macro, ok := a.Macros.Lookup(head); ok {
				for _, body := range macro.Body {
					fmt.Fprintln(w, body)
				}
				continue
			}
			fmt.Fprintln(w, line)
		}
	}

	if scanErr := scanner.Err(); scanErr != nil {
		return fmt.Errorf("cannot read source file: %w", scanErr)
	}
	return w.Flush()
}
