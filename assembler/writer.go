package assembler

import (
	"bufio"
	"fmt"
	"os"

	"github.com/maayan2299/assembler/encoder"
	"github.com/maayan2299/assembler/parser"
)

// writeOutputs emits the .ob, .ext and .ent files from the finalized
// images and symbol table.
func (a *Assembler) writeOutputs() error {
	if err := a.writeObjectFile(); err != nil {
		return err
	}
	if err := a.writeSymbolFile(ExternalsExt, parser.SymbolExternalReference); err != nil {
		return err
	}
	return a.writeSymbolFile(EntriesExt, parser.SymbolEntry)
}

// writeObjectFile emits the object file: a code/data size header, then
// one line per image slot in address order, values in 15-bit octal.
func (a *Assembler) writeObjectFile() (err error) {
	f, err := os.Create(a.outputPath(ObjectExt)) // #nosec G304 -- derived output path
	if err != nil {
		return fmt.Errorf("cannot create object file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%d %d\n", a.ICF-encoder.CodeOrigin, a.DCF)

	for i := 0; i < a.Images.CodeLen(); i++ {
		fmt.Fprintf(w, "%07d %06o\n", encoder.CodeOrigin+i, a.Images.CodeAt(i).Pack())
	}
	for i := 0; i < a.Images.DataLen(); i++ {
		fmt.Fprintf(w, "%07d %06o\n", a.ICF+i, a.Images.DataAt(i))
	}
	return w.Flush()
}

// writeSymbolFile emits one "<name> <address>" line per symbol of the
// given kind, in ascending address order. The file is created even
// when there is nothing to list.
func (a *Assembler) writeSymbolFile(ext string, kind parser.SymbolKind) (err error) {
	f, err := os.Create(a.outputPath(ext)) // #nosec G304 -- derived output path
	if err != nil {
		return fmt.Errorf("cannot create %s file: %w", ext, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	w := bufio.NewWriter(f)
	for _, sym := range a.Symbols.ByKind(kind) {
		fmt.Fprintf(w, "%s %07d\n", sym.Name, sym.Value)
	}
	return w.Flush()
}
