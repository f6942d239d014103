package boot

// State is the position of the boot sequence. States only move forward.
type State uint8

const (
	NotStarted State = iota
	GuardPainted
	EntryRunning
	LoopRunning
	Halted
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case GuardPainted:
		return "guard painted"
	case EntryRunning:
		return "entry running"
	case LoopRunning:
		return "loop running"
	case Halted:
		return "halted"
	default:
		return "unknown"
	}
}

// States lists every state in boot order.
func States() []State {
	return []State{NotStarted, GuardPainted, EntryRunning, LoopRunning, Halted}
}
