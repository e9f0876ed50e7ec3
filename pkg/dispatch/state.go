package dispatch

// State is the stage a dispatcher run has reached.
type State int

const (
	Unstarted State = iota
	GlobalOptionsDeclared
	CommandsRegistered
	Parsed
	Initialized
	CommandInvoked
	NoCommandFound
	// Destroyed is terminal. Every run that reaches Parsed ends here, whatever
	// failed in between.
	Destroyed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Unstarted:
		return "Unstarted"
	case GlobalOptionsDeclared:
		return "GlobalOptionsDeclared"
	case CommandsRegistered:
		return "CommandsRegistered"
	case Parsed:
		return "Parsed"
	case Initialized:
		return "Initialized"
	case CommandInvoked:
		return "CommandInvoked"
	case NoCommandFound:
		return "NoCommandFound"
	case Destroyed:
		return "Destroyed"
	default:
		return "Unknown"
	}
}

// Outcome is how a run ended, as seen by the Destroy hook.
type Outcome struct {
	// Command is the selected sub-command, which may not exist.
	Command string
	// State is the last state reached before Destroy.
	State State
	// Err is what the run returns, not counting Destroy's own error.
	Err error
}

// Status summarizes the outcome as "ok", "miss" or "error".
func (o Outcome) Status() string {
	switch {
	case o.Err != nil:
		return "error"
	case o.State == NoCommandFound:
		return "miss"
	default:
		return "ok"
	}
}
