package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseLine(t *testing.T, text string) (*Statement, *ErrorList) {
	t.Helper()
	errs := &ErrorList{}
	stmt, _ := ParseStatement(Line{Pos: Position{Filename: "t.am", Line: 1}, Text: text}, errs)
	return stmt, errs
}

func TestParseStatement(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		label     string
		directive string
		mnemonic  string
		operands  string
	}{
		{"plain instruction", "stop", "", "", "stop", ""},
		{"labeled instruction", "MAIN: mov r1, r2", "MAIN", "", "mov", "r1, r2"},
		{"directive", ".data 1, 2", "", ".data", "", "1, 2"},
		{"labeled directive", "STR: .string \"ab\"", "STR", ".string", "", "\"ab\""},
		{"indented", "\t  inc r3", "", "", "inc", "r3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, errs := parseLine(t, tt.text)
			require.NotNil(t, stmt)
			assert.False(t, errs.HasErrors())
			assert.Equal(t, tt.label, stmt.Label)
			assert.Equal(t, tt.directive, stmt.Directive)
			assert.Equal(t, tt.mnemonic, stmt.Mnemonic)
			assert.Equal(t, tt.operands, stmt.Operands)
		})
	}
}

func TestParseStatementSkipsBlanksAndComments(t *testing.T) {
	for _, text := range []string{"", "   ", "\t", "; comment", "   ; indented comment"} {
		stmt, errs := parseLine(t, text)
		assert.Nil(t, stmt)
		assert.False(t, errs.HasErrors())
	}
}

func TestParseStatementErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"invalid label", "1BAD: stop"},
		{"reserved label", "mov: stop"},
		{"label alone", "LONELY:"},
		{"unknown directive", ".bogus 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, errs := parseLine(t, tt.text)
			assert.Nil(t, stmt)
			assert.True(t, errs.HasErrors())
		})
	}
}

func TestParseOperand(t *testing.T) {
	tests := []struct {
		text     string
		mode     AddressingMode
		register int
		value    int
		symbol   string
	}{
		{"#5", ImmediateAddr, 0, 5, ""},
		{"#-12", ImmediateAddr, 0, -12, ""},
		{"LOOP", DirectAddr, 0, 0, "LOOP"},
		{"*r2", RegisterIndirectAddr, 2, 0, ""},
		{"r6", RegisterAddr, 6, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			op, err := ParseOperand(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.mode, op.Mode)
			assert.Equal(t, tt.register, op.Register)
			assert.Equal(t, tt.value, op.Value)
			assert.Equal(t, tt.symbol, op.Symbol)
		})
	}
}

func TestParseOperandErrors(t *testing.T) {
	for _, text := range []string{"#", "#abc", "*r9", "*xy", "9lives", "a-b", ""} {
		t.Run(text, func(t *testing.T) {
			_, err := ParseOperand(text)
			assert.Error(t, err)
		})
	}
}

func TestSplitOperands(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{"empty", "", nil, false},
		{"single", "r1", []string{"r1"}, false},
		{"pair", "#3, r2", []string{"#3", "r2"}, false},
		{"tight", "a,b", []string{"a", "b"}, false},
		{"leading comma", ",r1", nil, true},
		{"trailing comma", "r1,", nil, true},
		{"double comma", "r1,,r2", nil, true},
		{"missing comma", "r1 r2", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitOperands(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDataList(t *testing.T) {
	values, err := ParseDataList("1, -2, +3")
	require.NoError(t, err)
	assert.Equal(t, []int{1, -2, 3}, values)

	for _, input := range []string{"", "1,,2", "1,2,", "abc", "1 2"} {
		_, err := ParseDataList(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestParseStringLiteral(t *testing.T) {
	s, err := ParseStringLiteral(`"abc"`)
	require.NoError(t, err)
	assert.Equal(t, "abc", s)

	s, err = ParseStringLiteral(`""`)
	require.NoError(t, err)
	assert.Equal(t, "", s)

	for _, input := range []string{``, `abc`, `"abc`, `abc"`, `"`} {
		_, err := ParseStringLiteral(input)
		assert.Error(t, err, "input %q", input)
	}
}
