package encoder

import (
	"github.com/maayan2299/assembler/parser"
)

// IsRegisterPair reports whether both operands are held in registers,
// directly or indirectly. Such a pair shares a single operand word.
func IsRegisterPair(src, dest *parser.Operand) bool {
	return src != nil && dest != nil &&
		isRegisterMode(src.Mode) && isRegisterMode(dest.Mode)
}

func isRegisterMode(m parser.AddressingMode) bool {
	return m == parser.RegisterAddr || m == parser.RegisterIndirectAddr
}

// registerWord builds the operand word carrying register indices: the
// source index occupies payload bits 0..2, the destination bits 3..5.
func registerWord(src, dest *parser.Operand) *MachineWord {
	payload := 0
	if src != nil {
		payload |= src.Register
	}
	if dest != nil {
		payload |= dest.Register << 3
	}
	return NewDataWord(AREAbsolute, payload)
}

// Encode builds the code word and the extra operand words for one
// instruction. A nil entry in the returned extras marks a placeholder
// slot for a direct-address operand, to be patched by the second pass.
// The code word's Length covers the instruction's full slot count.
func Encode(inst *parser.Instruction, src, dest *parser.Operand) (*MachineWord, []*MachineWord) {
	code := &MachineWord{
		Code: CodeWord{
			ARE:    AREAbsolute,
			Opcode: inst.Opcode,
			Funct:  inst.Funct,
		},
	}

	if src != nil {
		code.Code.SrcAddressing = uint8(src.Mode)
		if src.Mode == parser.RegisterAddr {
			code.Code.SrcRegister = uint8(src.Register)
		}
	}
	if dest != nil {
		code.Code.DestAddressing = uint8(dest.Mode)
		if dest.Mode == parser.RegisterAddr {
			code.Code.DestRegister = uint8(dest.Register)
		}
	}

	var extras []*MachineWord
	if IsRegisterPair(src, dest) {
		extras = append(extras, registerWord(src, dest))
	} else {
		extras = append(extras, operandWord(src, false)...)
		extras = append(extras, operandWord(dest, true)...)
	}

	code.Length = 1 + len(extras)
	return code, extras
}

// operandWord builds the extra word for a lone operand. A plain
// register operand lives entirely in the code word and contributes
// nothing; a direct operand contributes a placeholder.
func operandWord(op *parser.Operand, isDest bool) []*MachineWord {
	if op == nil {
		return nil
	}

	switch op.Mode {
	case parser.ImmediateAddr:
		return []*MachineWord{NewDataWord(AREAbsolute, op.Value)}

	case parser.RegisterIndirectAddr:
		if isDest {
			return []*MachineWord{registerWord(nil, op)}
		}
		return []*MachineWord{registerWord(op, nil)}

	case parser.DirectAddr:
		return []*MachineWord{nil}

	default: // RegisterAddr
		return nil
	}
}

// OperandSlots returns the number of image slots the operand occupies
// beyond the code word, matching Encode's layout.
func OperandSlots(mode parser.AddressingMode) int {
	if mode == parser.RegisterAddr {
		return 0
	}
	return 1
}
