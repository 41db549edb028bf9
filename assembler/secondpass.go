package assembler

import (
	"strings"

	"github.com/maayan2299/assembler/encoder"
	"github.com/maayan2299/assembler/parser"
)

// secondPass re-reads the expanded source in lockstep with the code
// image, patching placeholder operand words and promoting .entry
// declarations. When patch is false (the first pass failed) only the
// .entry lines are checked, to surface further diagnostics.
func (a *Assembler) secondPass(lines []parser.Line, patch bool) {
	ic := encoder.CodeOrigin
	scratch := &parser.ErrorList{} // parse errors were reported in pass one

	for _, ln := range lines {
		stmt, _ := parser.ParseStatement(ln, scratch)
		if stmt == nil {
			continue
		}

		if stmt.IsDirective() {
			if stmt.Directive == parser.DirectiveEntry {
				a.resolveEntry(stmt)
			}
			continue
		}

		if patch {
			ic = a.patchInstruction(stmt, ic)
		}
	}
}

// resolveEntry promotes the named symbol to an entry
func (a *Assembler) resolveEntry(stmt *parser.Statement) {
	fields := strings.Fields(stmt.Operands)
	if len(fields) != 1 {
		a.errorf(stmt.Pos, parser.ErrorSyntax, ".entry requires a single symbol name")
		return
	}
	name := fields[0]
	if !parser.IsValidLabelName(name) {
		a.errorf(stmt.Pos, parser.ErrorSyntax, "invalid symbol name %q", name)
		return
	}

	if _, ok := a.Symbols.Lookup(name, parser.SymbolExternal); ok {
		a.errorf(stmt.Pos, parser.ErrorDuplicateSymbol,
			"symbol %q is external and cannot be entry", name)
		return
	}
	sym, ok := a.Symbols.Lookup(name, parser.SymbolCode, parser.SymbolData)
	if !ok {
		a.errorf(stmt.Pos, parser.ErrorUndefinedSymbol,
			"entry symbol %q is not defined", name)
		return
	}

	if err := a.Symbols.Insert(name, sym.Value, parser.SymbolEntry); err != nil {
		a.errorf(stmt.Pos, parser.ErrorDuplicateSymbol, "%v", err)
	}
}

// patchInstruction advances the instruction counter across one
// instruction and resolves any direct-address operand slots the first
// pass left as placeholders. It returns the updated counter.
func (a *Assembler) patchInstruction(stmt *parser.Statement, ic int) int {
	word := a.Images.CodeAt(ic - encoder.CodeOrigin)
	length := word.Length

	src, dest := a.reparseOperands(stmt)
	if !encoder.IsRegisterPair(src, dest) {
		slot := ic + 1
		for _, op := range []*parser.Operand{src, dest} {
			if op == nil {
				continue
			}
			if op.Mode == parser.DirectAddr {
				a.patchSymbol(stmt.Pos, op.Symbol, slot)
			}
			slot += encoder.OperandSlots(op.Mode)
		}
	}

	return ic + length
}

// reparseOperands re-derives the operand layout of a line the first
// pass already validated.
func (a *Assembler) reparseOperands(stmt *parser.Statement) (src, dest *parser.Operand) {
	fields, err := parser.SplitOperands(stmt.Operands)
	if err != nil {
		return nil, nil
	}

	operands := make([]*parser.Operand, 0, len(fields))
	for _, field := range fields {
		op, parseErr := parser.ParseOperand(field)
		if parseErr != nil {
			return nil, nil
		}
		operands = append(operands, op)
	}

	switch len(operands) {
	case 2:
		return operands[0], operands[1]
	case 1:
		return nil, operands[0]
	}
	return nil, nil
}

// patchSymbol fills the operand word at address slot with the resolved
// symbol value, recording a use-site entry for external symbols.
func (a *Assembler) patchSymbol(pos parser.Position, name string, slot int) {
	sym, ok := a.Symbols.Lookup(name,
		parser.SymbolCode, parser.SymbolData, parser.SymbolExternal)
	if !ok {
		a.errorf(pos, parser.ErrorUndefinedSymbol, "undefined symbol %q", name)
		return
	}

	index := slot - encoder.CodeOrigin
	if sym.Kind == parser.SymbolExternal {
		if err := a.Images.Patch(index, encoder.NewDataWord(encoder.AREExternal, 0)); err != nil {
			a.errorf(pos, parser.ErrorImageOverflow, "%v", err)
			return
		}
		if err := a.Symbols.Insert(name, int32(slot), parser.SymbolExternalReference); err != nil {
			a.errorf(pos, parser.ErrorDuplicateSymbol, "%v", err)
		}
		return
	}

	if err := a.Images.Patch(index, encoder.NewDataWord(encoder.ARERelocatable, int(sym.Value))); err != nil {
		a.errorf(pos, parser.ErrorImageOverflow, "%v", err)
	}
}
