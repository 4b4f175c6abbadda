package intcode

import (
	"fmt"
	"strings"
)

func formatOperand(role ParamRole, mode ParamMode, raw int64) string {
	var s string
	switch mode {
	case IMMEDIATE:
		s = fmt.Sprintf("#%d", raw)
	case RELATIVE:
		if raw < 0 {
			s = fmt.Sprintf("rb%d", raw)
		} else {
			s = fmt.Sprintf("rb+%d", raw)
		}
	default:
		s = fmt.Sprintf("[%d]", raw)
	}
	if role == Dst {
		return "-> " + s
	}
	return s
}

// FormatInsn renders insn with the raw parameter cells that follow it:
// positional operands as [a], immediates as #v, relative as rb+o.
func FormatInsn(insn Insn, raws []int64) string {
	def := insn.Def()
	parts := make([]string, 0, 1+len(def.Params))
	parts = append(parts, def.Name)
	for k, role := range def.Params {
		var raw int64
		if k < len(raws) {
			raw = raws[k]
		}
		parts = append(parts, formatOperand(role, insn.Modes[k], raw))
	}
	return strings.Join(parts, " ")
}

func cellAt(mem []int64, addr int) int64 {
	if addr < 0 || addr >= len(mem) {
		return 0
	}
	return mem[addr]
}

// DisassembleInstruction decodes the instruction at pc and returns its text
// and length in cells. Words that do not decode render as DATA and are one
// cell long.
func DisassembleInstruction(mem []int64, pc int) (string, int) {
	word := cellAt(mem, pc)
	insn, err := DecodeInsn(word)
	if err != nil {
		return fmt.Sprintf("DATA %d", word), 1
	}
	n := len(insn.Def().Params)
	raws := make([]int64, n)
	for k := range raws {
		raws[k] = cellAt(mem, pc+1+k)
	}
	return FormatInsn(insn, raws), 1 + n
}

// Disassemble walks image linearly from address 0. Data interleaved with
// code is decoded as whatever it happens to look like.
func Disassemble(image []int64) []string {
	var lines []string
	for pc := 0; pc < len(image); {
		text, n := DisassembleInstruction(image, pc)
		lines = append(lines, fmt.Sprintf("%04d: %s", pc, text))
		pc += n
	}
	return lines
}
