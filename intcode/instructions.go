package intcode

import (
	"fmt"
	"strings"

	"github.com/colorfulnotion/intcode/vmerrors"
)

// Opcode is the low two decimal digits of an instruction word.
type Opcode uint8

const (
	ADD                  Opcode = 1
	MULTIPLY             Opcode = 2
	INPUT                Opcode = 3
	OUTPUT               Opcode = 4
	JUMP_IF_TRUE         Opcode = 5
	JUMP_IF_FALSE        Opcode = 6
	LESS_THAN            Opcode = 7
	EQUALS               Opcode = 8
	ADJUST_RELATIVE_BASE Opcode = 9
	HALT                 Opcode = 99
)

// ParamMode is the addressing mode of one operand.
type ParamMode uint8

const (
	POSITION  ParamMode = 0
	IMMEDIATE ParamMode = 1
	RELATIVE  ParamMode = 2
)

func (m ParamMode) String() string {
	switch m {
	case POSITION:
		return "position"
	case IMMEDIATE:
		return "immediate"
	case RELATIVE:
		return "relative"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// ParamRole says whether an operand is read from or written to.
type ParamRole uint8

const (
	Src ParamRole = iota
	Dst
)

func (r ParamRole) String() string {
	if r == Dst {
		return "dst"
	}
	return "src"
}

// InstrDef describes one opcode of the instruction set.
type InstrDef struct {
	Name   string
	Params []ParamRole
}

// Len is the number of memory cells the instruction occupies.
func (d InstrDef) Len() int64 {
	return 1 + int64(len(d.Params))
}

var instrTable = map[Opcode]InstrDef{
	ADD:                  {Name: "ADD", Params: []ParamRole{Src, Src, Dst}},
	MULTIPLY:             {Name: "MULTIPLY", Params: []ParamRole{Src, Src, Dst}},
	INPUT:                {Name: "INPUT", Params: []ParamRole{Dst}},
	OUTPUT:               {Name: "OUTPUT", Params: []ParamRole{Src}},
	JUMP_IF_TRUE:         {Name: "JUMP_IF_TRUE", Params: []ParamRole{Src, Src}},
	JUMP_IF_FALSE:        {Name: "JUMP_IF_FALSE", Params: []ParamRole{Src, Src}},
	LESS_THAN:            {Name: "LESS_THAN", Params: []ParamRole{Src, Src, Dst}},
	EQUALS:               {Name: "EQUALS", Params: []ParamRole{Src, Src, Dst}},
	ADJUST_RELATIVE_BASE: {Name: "ADJUST_RELATIVE_BASE", Params: []ParamRole{Src}},
	HALT:                 {Name: "HALT"},
}

// LookupInstr returns the definition of op and whether op is part of the
// instruction set.
func LookupInstr(op Opcode) (InstrDef, bool) {
	def, ok := instrTable[op]
	return def, ok
}

// Opcodes lists the instruction set in ascending order.
func Opcodes() []Opcode {
	return []Opcode{ADD, MULTIPLY, INPUT, OUTPUT, JUMP_IF_TRUE, JUMP_IF_FALSE, LESS_THAN, EQUALS, ADJUST_RELATIVE_BASE, HALT}
}

func opcode_str(op Opcode) string {
	if def, ok := instrTable[op]; ok {
		return def.Name
	}
	return fmt.Sprintf("OPCODE_%d", uint8(op))
}

func opcode_str_lower(op Opcode) string {
	return strings.ToLower(opcode_str(op))
}

// Insn is a decoded instruction word.
type Insn struct {
	Op    Opcode
	Modes [3]ParamMode
}

// Def returns the table entry of the decoded opcode.
func (i Insn) Def() InstrDef {
	return instrTable[i.Op]
}

func decodeMode(digit int64) (ParamMode, error) {
	switch digit {
	case 0:
		return POSITION, nil
	case 1:
		return IMMEDIATE, nil
	case 2:
		return RELATIVE, nil
	}
	return 0, fmt.Errorf("%w (digit=%d)", vmerrors.ErrInvalidParamMode, digit)
}

// DecodeInsn splits an instruction word into opcode (word mod 100) and the
// modes held in the hundreds, thousands and ten-thousands digits. All three
// mode digits are checked, whatever the opcode's arity.
func DecodeInsn(word int64) (Insn, error) {
	var insn Insn
	div := int64(100)
	for k := 0; k < 3; k++ {
		mode, err := decodeMode((word / div) % 10)
		if err != nil {
			return Insn{}, fmt.Errorf("%w (word=%d, param=%d)", err, word, k+1)
		}
		insn.Modes[k] = mode
		div *= 10
	}
	code := word % 100
	if code < 0 {
		return Insn{}, fmt.Errorf("%w (word=%d)", vmerrors.ErrInvalidOpcode, word)
	}
	insn.Op = Opcode(code)
	if _, ok := instrTable[insn.Op]; !ok {
		return Insn{}, fmt.Errorf("%w (word=%d, opcode=%d)", vmerrors.ErrInvalidOpcode, word, code)
	}
	return insn, nil
}
