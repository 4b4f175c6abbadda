package intcode

import (
	"fmt"

	"github.com/colorfulnotion/intcode/log"
	"github.com/colorfulnotion/intcode/vmerrors"
)

// Config tunes a VM. The zero value is usable: MinMemory 0 falls back to
// DefaultMinMemory and MaxMemory 0 leaves growth unbounded.
type Config struct {
	MinMemory  int
	MaxMemory  int64
	Trace      bool
	Identifier string
}

// VM executes one IntCode program. It is not safe for concurrent use; a host
// may run separate VMs on separate goroutines.
type VM struct {
	mem          *Memory
	pc           int64
	relativeBase int64
	input        []int64
	output       int64
	hasOutput    bool
	halted       bool
	err          error
	steps        uint64
	trace        bool

	Identifier string
	logging    string
}

// NewVM loads image into a memory of at least minMemory cells.
func NewVM(image []int64, minMemory int) *VM {
	return NewVMWithConfig(image, Config{MinMemory: minMemory})
}

func NewVMWithConfig(image []int64, cfg Config) *VM {
	minMemory := cfg.MinMemory
	if minMemory <= 0 {
		minMemory = DefaultMinMemory
	}
	vm := &VM{
		mem:        NewMemory(image, minMemory, cfg.MaxMemory),
		trace:      cfg.Trace,
		Identifier: cfg.Identifier,
		logging:    log.IntcodeMonitoring,
	}
	log.Debug(vm.logging, "vm loaded", "id", vm.Identifier, "image", len(image), "memory", vm.mem.Len())
	return vm
}

func (vm *VM) SetIdentifier(id string) {
	vm.Identifier = id
}

func (vm *VM) GetIdentifier() string {
	if vm.Identifier == "" {
		return "intcode"
	}
	return vm.Identifier
}

// PushInput appends v to the input queue. It may be called at any time,
// including while the VM is suspended on NEED_INPUT.
func (vm *VM) PushInput(v int64) *VM {
	vm.input = append(vm.input, v)
	return vm
}

func (vm *VM) PushInputs(vs ...int64) *VM {
	vm.input = append(vm.input, vs...)
	return vm
}

func (vm *VM) PendingInputs() int {
	return len(vm.input)
}

// LastOutput returns the value produced by the output instruction that made
// the previous Run return HAS_OUTPUT. At any other time it fails with
// ErrNoOutput instead of returning a stale value.
func (vm *VM) LastOutput() (int64, error) {
	if !vm.hasOutput {
		return 0, vmerrors.ErrNoOutput
	}
	return vm.output, nil
}

func (vm *VM) Halted() bool { return vm.halted }
func (vm *VM) Err() error { return vm.err }
func (vm *VM) PC() int64 { return vm.pc }
func (vm *VM) RelativeBase() int64 { return vm.relativeBase }
func (vm *VM) Steps() uint64 { return vm.steps }
func (vm *VM) MemoryLen() int { return vm.mem.Len() }

// ReadMemory inspects a cell without growing memory.
func (vm *VM) ReadMemory(addr int64) (int64, error) {
	return vm.mem.Peek(addr)
}

// WriteMemory patches a cell, growing memory as a program write would.
func (vm *VM) WriteMemory(addr int64, v int64) error {
	return vm.mem.Write(addr, v)
}

// DumpMemory copies the first n memory cells.
func (vm *VM) DumpMemory(n int) []int64 {
	return vm.mem.Dump(n)
}

// Run executes instructions until the program needs input it does not have,
// produces an output, or halts. It is safe to call again after any of the
// three states; after HALTED it keeps returning HALTED.
//
// A non-nil error is fatal: the VM is faulted and every later call returns
// the same error together with HALTED.
func (vm *VM) Run() (State, error) {
	vm.hasOutput = false
	if vm.err != nil {
		return HALTED, vm.err
	}
	if vm.halted {
		return HALTED, nil
	}
	tracing := vm.trace || log.IsModuleEnabled(log.IntcodeTrace)
	for {
		if tracing {
			vm.dumpInsn()
		}
		state, suspended, err := vm.step()
		if err != nil {
			vm.err = fmt.Errorf("%w (id=%s, pc=%d)", err, vm.GetIdentifier(), vm.pc)
			log.Warn(vm.logging, "vm faulted", "id", vm.GetIdentifier(), "pc", vm.pc, "steps", vm.steps, "err", vmerrors.GetErrorName(err))
			return HALTED, vm.err
		}
		if suspended {
			if state == HALTED {
				log.Debug(vm.logging, "vm halted", "id", vm.GetIdentifier(), "pc", vm.pc, "steps", vm.steps)
			}
			return state, nil
		}
	}
}

// resolve returns the operand value for a source parameter whose raw cell
// holds raw.
func (vm *VM) resolve(mode ParamMode, raw int64) (int64, error) {
	switch mode {
	case POSITION:
		return vm.mem.Read(raw)
	case IMMEDIATE:
		return raw, nil
	case RELATIVE:
		return vm.mem.Read(raw + vm.relativeBase)
	}
	return 0, fmt.Errorf("%w (mode=%d)", vmerrors.ErrInvalidParamMode, mode)
}

// resolveAddress returns the address a destination parameter writes to.
func (vm *VM) resolveAddress(mode ParamMode, raw int64) (int64, error) {
	switch mode {
	case POSITION:
		return raw, nil
	case RELATIVE:
		return raw + vm.relativeBase, nil
	case IMMEDIATE:
		return 0, vmerrors.ErrImmediateWrite
	}
	return 0, fmt.Errorf("%w (mode=%d)", vmerrors.ErrInvalidParamMode, mode)
}

// operands resolves the parameters of insn, which starts at vm.pc. Source
// parameters yield values, destination parameters yield addresses.
func (vm *VM) operands(insn Insn) ([3]int64, error) {
	var out [3]int64
	for k, role := range insn.Def().Params {
		raw, err := vm.mem.Read(vm.pc + 1 + int64(k))
		if err != nil {
			return out, err
		}
		if role == Dst {
			out[k], err = vm.resolveAddress(insn.Modes[k], raw)
		} else {
			out[k], err = vm.resolve(insn.Modes[k], raw)
		}
		if err != nil {
			return out, err
		}
	}
	return out, nil
}

func boolToWord(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// step executes the instruction at vm.pc. suspended reports that Run must
// hand state back to the host. vm.pc only moves once the instruction has
// fully taken effect, so an input with an empty queue leaves it in place.
func (vm *VM) step() (state State, suspended bool, err error) {
	word, err := vm.mem.Read(vm.pc)
	if err != nil {
		return 0, false, err
	}
	insn, err := DecodeInsn(word)
	if err != nil {
		return 0, false, err
	}
	if insn.Op == INPUT {
		// an immediate destination faults even with an empty queue
		if insn.Modes[0] == IMMEDIATE {
			return 0, false, vmerrors.ErrImmediateWrite
		}
		if len(vm.input) == 0 {
			return NEED_INPUT, true, nil
		}
	}
	args, err := vm.operands(insn)
	if err != nil {
		return 0, false, err
	}
	next := vm.pc + insn.Def().Len()
	vm.steps++

	switch insn.Op {
	case ADD:
		err = vm.mem.Write(args[2], args[0]+args[1])
	case MULTIPLY:
		err = vm.mem.Write(args[2], args[0]*args[1])
	case LESS_THAN:
		err = vm.mem.Write(args[2], boolToWord(args[0] < args[1]))
	case EQUALS:
		err = vm.mem.Write(args[2], boolToWord(args[0] == args[1]))
	case INPUT:
		if err = vm.mem.Write(args[0], vm.input[0]); err == nil {
			vm.input = vm.input[1:]
			if len(vm.input) == 0 {
				vm.input = nil
			}
		}
	case OUTPUT:
		vm.output = args[0]
		vm.hasOutput = true
		vm.pc = next
		return HAS_OUTPUT, true, nil
	case JUMP_IF_TRUE:
		if args[0] != 0 {
			next = args[1]
		}
	case JUMP_IF_FALSE:
		if args[0] == 0 {
			next = args[1]
		}
	case ADJUST_RELATIVE_BASE:
		vm.relativeBase += args[0]
	case HALT:
		vm.halted = true
		return HALTED, true, nil
	default:
		return 0, false, fmt.Errorf("%w (opcode=%d)", vmerrors.ErrInvalidOpcode, insn.Op)
	}
	if err != nil {
		return 0, false, err
	}
	vm.pc = next
	return 0, false, nil
}
