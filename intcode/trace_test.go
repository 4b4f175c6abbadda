package intcode

import (
	"bytes"
	"testing"

	"github.com/colorfulnotion/intcode/intcode/program"
	"github.com/colorfulnotion/intcode/log"
	"github.com/stretchr/testify/assert"
)

func TestTraceDumpsEachInstruction(t *testing.T) {
	prev := log.Root()
	defer log.SetDefault(prev)
	var buf bytes.Buffer
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(&buf, log.LevelTrace, false)))

	vm := NewVMWithConfig(program.MustParse("1101,2,3,5,99,0"), Config{MinMemory: 16, Trace: true, Identifier: "traced"})
	runAll(t, vm)

	out := buf.String()
	assert.Contains(t, out, "ADD #2 #3 -> [5]")
	assert.Contains(t, out, "HALT")
	assert.Contains(t, out, "module=intcode_trace")
	assert.Contains(t, out, "id=traced")
	assert.Contains(t, out, "TRACE")
	assert.Equal(t, 16, vm.MemoryLen())

	buf.Reset()
	runAll(t, NewVM(program.MustParse("99"), 16))
	assert.Empty(t, buf.String())
}
