package parser

// AddressingMode classifies how an operand names its value
type AddressingMode int

const (
	ImmediateAddr        AddressingMode = iota // #n
	DirectAddr                                 // label
	RegisterIndirectAddr                       // *rN
	RegisterAddr                               // rN
)

var addressingModeNames = map[AddressingMode]string{
	ImmediateAddr:        "immediate",
	DirectAddr:           "direct",
	RegisterIndirectAddr: "register indirect",
	RegisterAddr:         "register",
}

func (m AddressingMode) String() string {
	if name, ok := addressingModeNames[m]; ok {
		return name
	}
	return "unknown"
}

// Instruction describes one entry of the instruction set: its encoding
// constants and the addressing modes each operand position accepts.
type Instruction struct {
	Mnemonic     string
	Opcode       uint8
	Funct        uint8
	OperandCount int
	SrcModes     []AddressingMode
	DestModes    []AddressingMode
}

var (
	allModes    = []AddressingMode{ImmediateAddr, DirectAddr, RegisterIndirectAddr, RegisterAddr}
	storeModes  = []AddressingMode{DirectAddr, RegisterIndirectAddr, RegisterAddr}
	directModes = []AddressingMode{DirectAddr, RegisterIndirectAddr}
)

// instructionSet is the full machine instruction table.
var instructionSet = []Instruction{
	{"mov", 0, 0, 2, allModes, storeModes},
	{"cmp", 1, 0, 2, allModes, allModes},
	{"add", 2, 1, 2, allModes, storeModes},
	{"sub", 2, 2, 2, allModes, storeModes},
	{"lea", 4, 0, 2, directModes, storeModes},
	{"clr", 5, 1, 1, nil, storeModes},
	{"not", 5, 2, 1, nil, storeModes},
	{"inc", 5, 3, 1, nil, storeModes},
	{"dec", 5, 4, 1, nil, storeModes},
	{"jmp", 9, 1, 1, nil, directModes},
	{"bne", 9, 2, 1, nil, directModes},
	{"jsr", 9, 3, 1, nil, directModes},
	{"red", 11, 0, 1, nil, storeModes},
	{"prn", 12, 0, 1, nil, allModes},
	{"rts", 14, 0, 0, nil, nil},
	{"stop", 15, 0, 0, nil, nil},
}

// LookupInstruction finds an instruction by mnemonic
func LookupInstruction(mnemonic string) (*Instruction, bool) {
	for i := range instructionSet {
		if instructionSet[i].Mnemonic == mnemonic {
			return &instructionSet[i], true
		}
	}
	return nil, false
}

// AllowsSrc reports whether the source operand may use mode m
func (inst *Instruction) AllowsSrc(m AddressingMode) bool {
	return containsMode(inst.SrcModes, m)
}

// AllowsDest reports whether the destination operand may use mode m
func (inst *Instruction) AllowsDest(m AddressingMode) bool {
	return containsMode(inst.DestModes, m)
}

func containsMode(modes []AddressingMode, m AddressingMode) bool {
	for _, candidate := range modes {
		if candidate == m {
			return true
		}
	}
	return false
}

// Assembler directives
const (
	DirectiveData   = ".data"
	DirectiveString = ".string"
	DirectiveEntry  = ".entry"
	DirectiveExtern = ".extern"
)

// IsDirective reports whether tok names a known directive
func IsDirective(tok string) bool {
	switch tok {
	case DirectiveData, DirectiveString, DirectiveEntry, DirectiveExtern:
		return true
	}
	return false
}

// Macro keywords recognized by the pre-processor
const (
	MacroStart = "macr"
	MacroEnd   = "endmacr"
)
