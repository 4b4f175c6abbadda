package vmerrors

import (
	"errors"
	"strings"
)

// Decode Errors
var (
	ErrInvalidParamMode = errors.New("D1|InvalidParamMode: Parameter mode digit is not 0 (position), 1 (immediate) or 2 (relative).")
	ErrInvalidOpcode    = errors.New("D2|InvalidOpcode: Opcode is not one of 1-9 or 99.")
)

// Memory Errors
var (
	ErrNegativeAddress = errors.New("M1|NegativeAddress: Memory address resolved below zero.")
	ErrImmediateWrite  = errors.New("M2|ImmediateWrite: Destination parameter uses immediate mode.")
	ErrMemoryLimit     = errors.New("M3|MemoryLimit: Memory growth exceeds the configured maximum.")
)

// Protocol Errors
var (
	ErrNoOutput = errors.New("P1|NoOutput: Output read when the last run did not return HAS_OUTPUT.")
)

// Program Errors
var (
	ErrEmptyProgram   = errors.New("I1|EmptyProgram: Program text holds no integers.")
	ErrBadProgramText = errors.New("I2|BadProgramText: Program text holds a token that is not a signed integer.")
)

// Host Errors
var (
	ErrUnexpectedHalt   = errors.New("H1|UnexpectedHalt: Program halted before producing the expected output.")
	ErrInputStarved     = errors.New("H2|InputStarved: Program requested input after the host ran out of values.")
	ErrPipelineStalled  = errors.New("H3|PipelineStalled: Every running stage needs input and none produced output.")
	ErrRobotProtocol    = errors.New("H4|RobotProtocol: Robot program did not emit a colour/turn output pair.")
	ErrNoSolution       = errors.New("H5|NoSolution: No noun/verb pair produces the target value.")
	ErrInvalidPhaseList = errors.New("H6|InvalidPhaseList: Pipeline needs at least one phase setting.")
)

var fatal = []error{
	ErrInvalidParamMode, ErrInvalidOpcode,
	ErrNegativeAddress, ErrImmediateWrite, ErrMemoryLimit,
	ErrNoOutput,
}

// IsFatal reports whether err stops a VM for good (decode, memory and
// protocol errors), however deeply it is wrapped.
func IsFatal(err error) bool {
	for _, f := range fatal {
		if errors.Is(err, f) {
			return true
		}
	}
	return false
}

// sentinel returns the innermost error of a single-wrap chain, which for
// errors built in this module is the coded sentinel.
func sentinel(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

// GetErrorName extracts the error name from the error message.
func GetErrorName(err error) string {
	if err == nil {
		return "No Error"
	}
	errStr := sentinel(err).Error()
	if !strings.Contains(errStr, "|") || !strings.Contains(errStr, ":") {
		return errStr
	}
	parts := strings.SplitN(errStr, "|", 2)
	nameParts := strings.SplitN(parts[1], ":", 2)
	return strings.TrimSpace(nameParts[0])
}

// GetErrorCode extracts the error code from the error message.
func GetErrorCode(err error) string {
	if err == nil {
		return ""
	}
	errStr := sentinel(err).Error()
	if !strings.Contains(errStr, "|") {
		return ""
	}
	parts := strings.SplitN(errStr, "|", 2)
	return strings.TrimSpace(parts[0])
}
