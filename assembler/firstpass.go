package assembler

import (
	"errors"
	"strings"

	"github.com/maayan2299/assembler/encoder"
	"github.com/maayan2299/assembler/parser"
)

// firstPass walks the expanded source, defining symbols and filling
// the code and data images. Direct-address operands leave placeholder
// slots for the second pass.
func (a *Assembler) firstPass(lines []parser.Line) {
	for _, ln := range lines {
		stmt, _ := parser.ParseStatement(ln, a.errs)
		if stmt == nil {
			continue
		}

		var err error
		if stmt.IsDirective() {
			err = a.assembleDirective(stmt)
		} else {
			err = a.assembleInstruction(stmt)
		}

		if errors.Is(err, encoder.ErrImageOverflow) {
			a.errorf(stmt.Pos, parser.ErrorImageOverflow,
				"machine image exceeds %d words", encoder.MemorySize)
			break
		}
	}

	a.ICF = encoder.CodeOrigin + a.Images.CodeLen()
	a.DCF = a.Images.DataLen()
}

// defineLabel inserts a label definition, reporting a conflict without
// failing the rest of the line.
func (a *Assembler) defineLabel(stmt *parser.Statement, value int, kind parser.SymbolKind) {
	if err := a.Symbols.Insert(stmt.Label, int32(value), kind); err != nil {
		a.errorf(stmt.Pos, parser.ErrorDuplicateSymbol, "%v", err)
	}
}

func (a *Assembler) assembleDirective(stmt *parser.Statement) error {
	switch stmt.Directive {
	case parser.DirectiveData:
		values, err := parser.ParseDataList(stmt.Operands)
		if err != nil {
			a.errorf(stmt.Pos, parser.ErrorSyntax, "%v", err)
			return nil
		}
		if stmt.Label != "" {
			a.defineLabel(stmt, a.Images.DataLen(), parser.SymbolData)
		}
		for _, v := range values {
			if err := a.Images.AppendData(v); err != nil {
				return err
			}
		}

	case parser.DirectiveString:
		literal, err := parser.ParseStringLiteral(stmt.Operands)
		if err != nil {
			a.errorf(stmt.Pos, parser.ErrorSyntax, "%v", err)
			return nil
		}
		if stmt.Label != "" {
			a.defineLabel(stmt, a.Images.DataLen(), parser.SymbolData)
		}
		for i := 0; i < len(literal); i++ {
			if err := a.Images.AppendData(int(literal[i])); err != nil {
				return err
			}
		}
		if err := a.Images.AppendData(0); err != nil {
			return err
		}

	case parser.DirectiveExtern:
		// A label on an .extern line is permitted but carries no meaning.
		fields := strings.Fields(stmt.Operands)
		if len(fields) != 1 {
			a.errorf(stmt.Pos, parser.ErrorSyntax, ".extern requires a single symbol name")
			return nil
		}
		name := fields[0]
		if !parser.IsValidLabelName(name) {
			a.errorf(stmt.Pos, parser.ErrorSyntax, "invalid symbol name %q", name)
			return nil
		}
		if err := a.Symbols.Insert(name, 0, parser.SymbolExternal); err != nil {
			a.errorf(stmt.Pos, parser.ErrorDuplicateSymbol, "%v", err)
		}

	case parser.DirectiveEntry:
		// Resolved during the second pass.
		if stmt.Label != "" {
			a.errorf(stmt.Pos, parser.ErrorSyntax, ".entry line cannot be labeled")
		}
	}
	return nil
}

func (a *Assembler) assembleInstruction(stmt *parser.Statement) error {
	ic := encoder.CodeOrigin + a.Images.CodeLen()
	if stmt.Label != "" {
		a.defineLabel(stmt, ic, parser.SymbolCode)
	}

	inst, ok := parser.LookupInstruction(stmt.Mnemonic)
	if !ok {
		a.errorf(stmt.Pos, parser.ErrorSyntax, "unknown mnemonic %q", stmt.Mnemonic)
		return nil
	}

	src, dest, ok := a.parseOperands(stmt, inst)
	if !ok {
		return nil
	}

	code, extras := encoder.Encode(inst, src, dest)
	if err := a.Images.AppendCode(code); err != nil {
		return err
	}
	for _, extra := range extras {
		var err error
		if extra == nil {
			err = a.Images.AppendPlaceholder()
		} else {
			err = a.Images.AppendCode(extra)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// parseOperands splits, classifies and validates the operand list of
// an instruction line against the per-opcode table.
func (a *Assembler) parseOperands(stmt *parser.Statement, inst *parser.Instruction) (src, dest *parser.Operand, ok bool) {
	fields, err := parser.SplitOperands(stmt.Operands)
	if err != nil {
		a.errorf(stmt.Pos, parser.ErrorSyntax, "%v", err)
		return nil, nil, false
	}
	if len(fields) != inst.OperandCount {
		a.errorf(stmt.Pos, parser.ErrorSyntax, "%s expects %d operands, got %d",
			inst.Mnemonic, inst.OperandCount, len(fields))
		return nil, nil, false
	}

	operands := make([]*parser.Operand, 0, len(fields))
	for _, field := range fields {
		op, err := parser.ParseOperand(field)
		if err != nil {
			a.errorf(stmt.Pos, parser.ErrorInvalidOperand, "%v", err)
			return nil, nil, false
		}
		operands = append(operands, op)
	}

	switch len(operands) {
	case 2:
		src, dest = operands[0], operands[1]
	case 1:
		dest = operands[0]
	}

	if src != nil && !inst.AllowsSrc(src.Mode) {
		a.errorf(stmt.Pos, parser.ErrorInvalidOperand,
			"%s does not accept a %s source operand", inst.Mnemonic, src.Mode)
		return nil, nil, false
	}
	if dest != nil && !inst.AllowsDest(dest.Mode) {
		a.errorf(stmt.Pos, parser.ErrorInvalidOperand,
			"%s does not accept a %s destination operand", inst.Mnemonic, dest.Mode)
		return nil, nil, false
	}
	return src, dest, true
}
