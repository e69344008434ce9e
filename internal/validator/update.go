package validator

import "fmt"

// State is the lifecycle state of one submission.
type State string

const (
	StateWaiting State = "waiting"
	StateRunning State = "running"
	StateDone    State = "done"
	StateError   State = "error"
)

// UpdateKind selects which fields of an Update are meaningful.
type UpdateKind int

const (
	UpdateState UpdateKind = iota
	UpdateTaskCompleted
	UpdateLogLine
	UpdateSave
)

// Update is a progress event emitted while a submission is validated.
type Update struct {
	Kind UpdateKind

	// UpdateState
	State State

	// UpdateTaskCompleted
	LastCoreTask bool
	Bonus        int

	// UpdateLogLine
	Line string
}

// StateUpdate reports a state transition.
func StateUpdate(s State) Update {
	return Update{Kind: UpdateState, State: s}
}

// TaskCompleted reports a finished task. lastCoreTask marks the task that
// completes the core part of a challenge.
func TaskCompleted(lastCoreTask bool, bonus int) Update {
	return Update{Kind: UpdateTaskCompleted, LastCoreTask: lastCoreTask, Bonus: bonus}
}

// LogLine appends a line to the submission log.
func LogLine(line string) Update {
	return Update{Kind: UpdateLogLine, Line: line}
}

// Save asks the consumer to persist what it has so far.
func Save() Update {
	return Update{Kind: UpdateSave}
}

func (u Update) String() string {
	switch u.Kind {
	case UpdateState:
		return fmt.Sprintf("State(%s)", u.State)
	case UpdateTaskCompleted:
		return fmt.Sprintf("TaskCompleted(%t, %d)", u.LastCoreTask, u.Bonus)
	case UpdateLogLine:
		return fmt.Sprintf("LogLine(%q)", u.Line)
	case UpdateSave:
		return "Save"
	default:
		return "Unknown"
	}
}

// TaskTest identifies one check inside a challenge. It doubles as the
// error returned when that check fails.
type TaskTest struct {
	Task int
	Test int
}

func (t TaskTest) Error() string {
	return fmt.Sprintf("Task %d: test #%d failed 🟥", t.Task, t.Test)
}
