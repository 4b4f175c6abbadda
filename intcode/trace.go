package intcode

import "github.com/colorfulnotion/intcode/log"

// dumpInsn logs the instruction about to execute. Cells are peeked so
// tracing never grows memory.
func (vm *VM) dumpInsn() {
	word, err := vm.mem.Peek(vm.pc)
	if err != nil {
		return
	}
	insn, err := DecodeInsn(word)
	if err != nil {
		log.Root().Trace(log.IntcodeTrace, "undecodable word", "id", vm.GetIdentifier(), "pc", vm.pc, "word", word)
		return
	}
	raws := make([]int64, len(insn.Def().Params))
	for k := range raws {
		raws[k], _ = vm.mem.Peek(vm.pc + 1 + int64(k))
	}
	log.Root().Trace(log.IntcodeTrace, FormatInsn(insn, raws),
		"id", vm.GetIdentifier(), "pc", vm.pc, "rb", vm.relativeBase, "queue", len(vm.input), "step", vm.steps)
}
