// Package encoder models machine words and the code and data images,
// and builds the encoded words for each instruction.
package encoder

// ARE marker values carried in the low three bits of every emitted word
const (
	AREExternal    = 1 // resolved at link time
	ARERelocatable = 2 // address within this translation unit
	AREAbsolute    = 4
)

// CodeWord is the fully described first word of an instruction
type CodeWord struct {
	ARE            uint8 // 3 bits
	Funct          uint8 // 5 bits
	DestRegister   uint8 // 3 bits
	DestAddressing uint8 // 2 bits
	SrcRegister    uint8 // 3 bits
	SrcAddressing  uint8 // 2 bits
	Opcode         uint8 // 6 bits
}

// DataWord is an operand or data payload word: 3 ARE bits plus up to
// 12 bits of payload.
type DataWord struct {
	ARE     uint8
	Payload int16
}

// MachineWord is either a code word (Length >= 1, the total number of
// image slots the instruction occupies) or a data word (Length == 0).
type MachineWord struct {
	Length int
	Code   CodeWord
	Data   DataWord
}

// IsCode reports whether the word is the leading word of an instruction
func (w *MachineWord) IsCode() bool {
	return w.Length >= 1
}

// Pack encodes the word into its 15-bit emitted form. For code words
// funct (bits 3..7) and dest_register (bits 3..5) overlap and are OR-ed
// together, so a non-zero dest_register also sets funct bits.
func (w *MachineWord) Pack() uint16 {
	var v uint32
	if w.IsCode() {
		c := w.Code
		v = uint32(c.ARE) |
			uint32(c.DestRegister)<<3 |
			uint32(c.Funct)<<3 |
			uint32(c.DestAddressing)<<6 |
			uint32(c.SrcRegister)<<8 |
			uint32(c.SrcAddressing)<<11 |
			uint32(c.Opcode)<<13
	} else {
		v = (uint32(uint16(w.Data.Payload))&0xFFF)<<3 | uint32(w.Data.ARE)
	}
	return uint16(v & 0x7FFF)
}

// NewDataWord builds a data word, truncating the payload to 12 bits
func NewDataWord(are uint8, payload int) *MachineWord {
	return &MachineWord{
		Data: DataWord{ARE: are, Payload: int16(payload & 0xFFF)},
	}
}
