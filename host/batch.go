// Package host drives IntCode VMs the way the puzzle solvers do: one-shot
// batch runs, chained amplifier pipelines, and interactive robots.
package host

import (
	"errors"
	"fmt"

	"github.com/colorfulnotion/intcode/intcode"
	"github.com/colorfulnotion/intcode/intcode/program"
	"github.com/colorfulnotion/intcode/log"
	"github.com/colorfulnotion/intcode/vmerrors"
)

// drain runs vm to HALTED collecting outputs. Running out of queued input is
// an error since a batch host has nothing more to give.
func drain(vm *intcode.VM) ([]int64, error) {
	var outs []int64
	for {
		state, err := vm.Run()
		if err != nil {
			return outs, err
		}
		switch state {
		case intcode.HAS_OUTPUT:
			v, err := vm.LastOutput()
			if err != nil {
				return outs, err
			}
			outs = append(outs, v)
		case intcode.NEED_INPUT:
			return outs, fmt.Errorf("%w (id=%s, pc=%d, outputs=%d)", vmerrors.ErrInputStarved, vm.GetIdentifier(), vm.PC(), len(outs))
		case intcode.HALTED:
			return outs, nil
		}
	}
}

// RunOutputs runs image to completion with inputs queued up front and
// returns every output in order.
func RunOutputs(image program.Image, cfg intcode.Config, inputs ...int64) ([]int64, error) {
	vm := intcode.NewVMWithConfig(image, cfg).PushInputs(inputs...)
	return drain(vm)
}

// RunDiagnostic returns the final output of a diagnostic program; earlier
// outputs are test results the caller may inspect via RunOutputs.
func RunDiagnostic(image program.Image, cfg intcode.Config, inputs ...int64) (int64, error) {
	outs, err := RunOutputs(image, cfg, inputs...)
	if err != nil {
		return 0, err
	}
	if len(outs) == 0 {
		return 0, vmerrors.ErrUnexpectedHalt
	}
	return outs[len(outs)-1], nil
}

// RunNounVerb patches cells 1 and 2 with noun and verb, runs to halt and
// returns cell 0.
func RunNounVerb(image program.Image, cfg intcode.Config, noun, verb int64) (int64, error) {
	patched, err := image.Patch(1, noun)
	if err != nil {
		return 0, err
	}
	if patched, err = patched.Patch(2, verb); err != nil {
		return 0, err
	}
	vm := intcode.NewVMWithConfig(patched, cfg)
	if _, err := drain(vm); err != nil {
		return 0, err
	}
	return vm.ReadMemory(0)
}

// FindNounVerb searches nouns and verbs in 0..99 for the pair whose run
// leaves target in cell 0 and returns 100*noun+verb. Pairs that fault the
// program are skipped.
func FindNounVerb(image program.Image, cfg intcode.Config, target int64) (int64, error) {
	for noun := int64(0); noun <= 99; noun++ {
		for verb := int64(0); verb <= 99; verb++ {
			got, err := RunNounVerb(image, cfg, noun, verb)
			if err != nil {
				if vmerrors.IsFatal(err) || errors.Is(err, vmerrors.ErrInputStarved) {
					log.Trace(log.HostMonitoring, "noun/verb faulted", "noun", noun, "verb", verb, "err", vmerrors.GetErrorName(err))
					continue
				}
				return 0, err
			}
			if got == target {
				log.Debug(log.HostMonitoring, "noun/verb found", "noun", noun, "verb", verb)
				return 100*noun + verb, nil
			}
		}
	}
	return 0, fmt.Errorf("%w (target=%d)", vmerrors.ErrNoSolution, target)
}
