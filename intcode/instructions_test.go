package intcode

import (
	"testing"

	"github.com/colorfulnotion/intcode/vmerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInsn(t *testing.T) {
	cases := []struct {
		word  int64
		op    Opcode
		modes [3]ParamMode
	}{
		{1, ADD, [3]ParamMode{POSITION, POSITION, POSITION}},
		{1002, MULTIPLY, [3]ParamMode{POSITION, IMMEDIATE, POSITION}},
		{21101, ADD, [3]ParamMode{IMMEDIATE, IMMEDIATE, RELATIVE}},
		{203, INPUT, [3]ParamMode{RELATIVE, POSITION, POSITION}},
		{1105, JUMP_IF_TRUE, [3]ParamMode{IMMEDIATE, IMMEDIATE, POSITION}},
		{109, ADJUST_RELATIVE_BASE, [3]ParamMode{IMMEDIATE, POSITION, POSITION}},
		{99, HALT, [3]ParamMode{}},
		{100099, HALT, [3]ParamMode{}},
	}
	for _, tc := range cases {
		insn, err := DecodeInsn(tc.word)
		require.NoError(t, err, tc.word)
		assert.Equal(t, tc.op, insn.Op, tc.word)
		assert.Equal(t, tc.modes, insn.Modes, tc.word)
	}
}

func TestDecodeInsnErrors(t *testing.T) {
	for _, word := range []int64{301, 3001, 30001, 901, -101} {
		_, err := DecodeInsn(word)
		assert.ErrorIs(t, err, vmerrors.ErrInvalidParamMode, word)
	}
	for _, word := range []int64{0, 10, 98, 100, -1, -99} {
		_, err := DecodeInsn(word)
		assert.ErrorIs(t, err, vmerrors.ErrInvalidOpcode, word)
	}
}

func TestInstrTableLengths(t *testing.T) {
	want := map[Opcode]int64{
		ADD: 4, MULTIPLY: 4, INPUT: 2, OUTPUT: 2, JUMP_IF_TRUE: 3, JUMP_IF_FALSE: 3,
		LESS_THAN: 4, EQUALS: 4, ADJUST_RELATIVE_BASE: 2, HALT: 1,
	}
	require.Len(t, Opcodes(), len(want))
	for _, op := range Opcodes() {
		def, ok := LookupInstr(op)
		require.True(t, ok, op)
		assert.Equal(t, want[op], def.Len(), def.Name)
	}
	_, ok := LookupInstr(Opcode(50))
	assert.False(t, ok)
	assert.Equal(t, "OPCODE_50", opcode_str(Opcode(50)))
	assert.Equal(t, "jump_if_false", opcode_str_lower(JUMP_IF_FALSE))
}

func TestDisassemble(t *testing.T) {
	lines := Disassemble([]int64{1002, 4, 3, 4, 33})
	assert.Equal(t, []string{
		"0000: MULTIPLY [4] #3 -> [4]",
		"0004: DATA 33",
	}, lines)

	lines = Disassemble([]int64{109, -3, 21101, 1, 2, -1, 204, 7, 3, 0, 1106, 0, 4, 99})
	assert.Equal(t, []string{
		"0000: ADJUST_RELATIVE_BASE #-3",
		"0002: ADD #1 #2 -> rb-1",
		"0006: OUTPUT rb+7",
		"0008: INPUT -> [0]",
		"0010: JUMP_IF_FALSE #0 #4",
		"0013: HALT",
	}, lines)
}

func TestDisassembleTruncatedInstruction(t *testing.T) {
	text, n := DisassembleInstruction([]int64{1, 5}, 0)
	assert.Equal(t, "ADD [5] [0] -> [0]", text)
	assert.Equal(t, 4, n)

	text, n = DisassembleInstruction([]int64{1, 5}, 9)
	assert.Equal(t, "DATA 0", text)
	assert.Equal(t, 1, n)
}
