package intcode

// State is what Run reports when it hands control back to the host.
type State uint8

const (
	NEED_INPUT State = iota // input instruction reached with an empty queue; pc stays on it
	HAS_OUTPUT              // output instruction executed; LastOutput is valid until the next Run
	HALTED                  // opcode 99 reached; terminal
)

func (s State) String() string {
	switch s {
	case NEED_INPUT:
		return "NEED_INPUT"
	case HAS_OUTPUT:
		return "HAS_OUTPUT"
	case HALTED:
		return "HALTED"
	default:
		return "UNKNOWN"
	}
}
