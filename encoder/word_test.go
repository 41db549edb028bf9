package encoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackCodeWord(t *testing.T) {
	tests := []struct {
		name string
		word MachineWord
		want uint16
	}{
		{
			"mov immediate to register",
			MachineWord{Length: 2, Code: CodeWord{
				ARE: AREAbsolute, Opcode: 0, Funct: 0,
				SrcAddressing: 0, DestAddressing: 3, DestRegister: 3,
			}},
			0o000334,
		},
		{
			"stop",
			MachineWord{Length: 1, Code: CodeWord{ARE: AREAbsolute, Opcode: 15}},
			0o060004,
		},
		{
			"rts",
			MachineWord{Length: 1, Code: CodeWord{ARE: AREAbsolute, Opcode: 14}},
			0o040004,
		},
		{
			"jmp direct",
			MachineWord{Length: 2, Code: CodeWord{
				ARE: AREAbsolute, Opcode: 9, Funct: 1, DestAddressing: 1,
			}},
			0o020114,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.word.Pack())
		})
	}
}

func TestPackDataWord(t *testing.T) {
	tests := []struct {
		name    string
		are     uint8
		payload int
		want    uint16
	}{
		{"absolute positive", AREAbsolute, 7, 7<<3 | 4},
		{"absolute negative", AREAbsolute, -5, 0xFFB<<3 | 4},
		{"relocatable address", ARERelocatable, 103, 103<<3 | 2},
		{"external", AREExternal, 0, 1},
		{"truncated to 12 bits", AREAbsolute, 0x1FFF, 0xFFF<<3 | 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewDataWord(tt.are, tt.payload)
			assert.Equal(t, tt.want, w.Pack())
			assert.False(t, w.IsCode())
		})
	}
}
