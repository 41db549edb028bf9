// Package assembler sequences the per-file pipeline: macro expansion,
// the two assembly passes and output emission.
package assembler

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/maayan2299/assembler/config"
	"github.com/maayan2299/assembler/encoder"
	"github.com/maayan2299/assembler/parser"
)

// File extensions produced and consumed by the pipeline
const (
	SourceExt    = ".as"
	ExpandedExt  = ".am"
	ObjectExt    = ".ob"
	ExternalsExt = ".ext"
	EntriesExt   = ".ent"
)

// Assembler holds the per-file state of one pipeline run. A fresh
// instance is used for every input file.
type Assembler struct {
	base string
	cfg  *config.Config
	diag io.Writer

	Symbols *parser.SymbolTable
	Images  *encoder.Images
	Macros  *parser.MacroTable
	errs    *parser.ErrorList

	// Final instruction and data counters, set at the end of pass one
	ICF int
	DCF int
}

// New creates an assembler for the given base name (no extension).
// Diagnostics are written to diag.
func New(base string, cfg *config.Config, diag io.Writer) *Assembler {
	return &Assembler{
		base:    base,
		cfg:     cfg,
		diag:    diag,
		Symbols: parser.NewSymbolTable(),
		Images:  encoder.NewImages(),
		Macros:  parser.NewMacroTable(),
		errs:    &parser.ErrorList{},
	}
}

// Run executes the full pipeline for the file. It reports whether the
// file assembled cleanly; output files exist only on success.
func (a *Assembler) Run() bool {
	srcPath := a.base + SourceExt
	amPath := a.outputPath(ExpandedExt)

	if err := a.preprocess(srcPath, amPath); err != nil {
		fmt.Fprintf(a.diag, "Error In %s: %v\n", filepath.Base(srcPath), err)
		a.errs.Report(a.diag, a.cfg.Diagnostics.MaxErrors)
		return false
	}

	lines, err := parser.ReadLines(amPath, a.errs)
	if err != nil {
		fmt.Fprintf(a.diag, "Error In %s: %v\n", filepath.Base(amPath), err)
		a.errs.Report(a.diag, a.cfg.Diagnostics.MaxErrors)
		return false
	}

	a.firstPass(lines)

	// Rebase data symbols above the code segment before pass two.
	a.Symbols.AddToKind(parser.SymbolData, int32(a.ICF))

	// With first-pass errors the image is not trustworthy, so the
	// second pass only checks .entry lines for further diagnostics.
	a.secondPass(lines, !a.errs.HasErrors())

	ok := !a.errs.HasErrors()
	if ok {
		if err := a.writeOutputs(); err != nil {
			fmt.Fprintf(a.diag, "Error In %s: %v\n", filepath.Base(srcPath), err)
			ok = false
		}
	}

	a.errs.Report(a.diag, a.cfg.Diagnostics.MaxErrors)
	return ok
}

// outputPath builds the path of a generated file, honoring the
// configured output directory.
func (a *Assembler) outputPath(ext string) string {
	if dir := a.cfg.Output.Directory; dir != "" {
		return filepath.Join(dir, filepath.Base(a.base)+ext)
	}
	return a.base + ext
}

func (a *Assembler) errorf(pos parser.Position, kind parser.ErrorKind, format string, args ...any) {
	a.errs.AddError(parser.NewError(pos, kind, fmt.Sprintf(format, args...)))
}
