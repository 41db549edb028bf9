package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidLabelName(t *testing.T) {
	tests := []struct {
		name  string
		label string
		valid bool
	}{
		{"simple", "LOOP", true},
		{"mixed case", "Main1", true},
		{"single letter", "x", true},
		{"max length", strings.Repeat("a", MaxLabelLength), true},
		{"too long", strings.Repeat("a", MaxLabelLength+1), false},
		{"empty", "", false},
		{"leading digit", "1abc", false},
		{"underscore", "a_b", false},
		{"mnemonic", "mov", false},
		{"register", "r3", false},
		{"directive word", "data", false},
		{"macro keyword", "macr", false},
		{"macro end keyword", "endmacr", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidLabelName(tt.label))
		})
	}
}

func TestParseRegister(t *testing.T) {
	tests := []struct {
		input string
		index int
		ok    bool
	}{
		{"r0", 0, true},
		{"r7", 7, true},
		{"r8", 0, false},
		{"R3", 0, false},
		{"r", 0, false},
		{"r10", 0, false},
		{"x1", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			index, ok := ParseRegister(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.index, index)
			}
		})
	}
}

func TestParseInteger(t *testing.T) {
	tests := []struct {
		input string
		value int
		ok    bool
	}{
		{"0", 0, true},
		{"42", 42, true},
		{"+7", 7, true},
		{"-13", -13, true},
		{"", 0, false},
		{"-", 0, false},
		{"1.5", 0, false},
		{"0x1f", 0, false},
		{"five", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, ok := ParseInteger(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.value, v)
			}
		})
	}
}

func TestLookupInstruction(t *testing.T) {
	inst, ok := LookupInstruction("sub")
	assert.True(t, ok)
	assert.Equal(t, uint8(2), inst.Opcode)
	assert.Equal(t, uint8(2), inst.Funct)
	assert.Equal(t, 2, inst.OperandCount)

	_, ok = LookupInstruction("mul")
	assert.False(t, ok)
}

func TestInstructionModes(t *testing.T) {
	lea, ok := LookupInstruction("lea")
	assert.True(t, ok)
	assert.False(t, lea.AllowsSrc(ImmediateAddr))
	assert.False(t, lea.AllowsSrc(RegisterAddr))
	assert.True(t, lea.AllowsSrc(DirectAddr))
	assert.True(t, lea.AllowsDest(RegisterAddr))

	jmp, ok := LookupInstruction("jmp")
	assert.True(t, ok)
	assert.False(t, jmp.AllowsDest(RegisterAddr))
	assert.True(t, jmp.AllowsDest(RegisterIndirectAddr))
}
