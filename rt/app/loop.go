package app

import (
	"errors"
	"fmt"

	"github.com/gekko3d/pathrt"
)

type LoopState int

const (
	Idle LoopState = iota
	Rendering
	Resizing
	Closing
)

func (s LoopState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Rendering:
		return "rendering"
	case Resizing:
		return "resizing"
	case Closing:
		return "closing"
	}
	return fmt.Sprintf("LoopState(%d)", int(s))
}

var ErrBadTransition = errors.New("invalid loop state transition")

// Rendering and Resizing are only entered from Idle and always return to it.
// Closing is terminal.
var transitions = map[LoopState][]LoopState{
	Idle:      {Rendering, Resizing, Closing},
	Rendering: {Idle, Closing},
	Resizing:  {Idle, Closing},
}

// Loop is the render loop's state machine.
type Loop struct {
	state LoopState
	log   pathrt.Logger
}

func NewLoop(logger pathrt.Logger) *Loop {
	return &Loop{state: Idle, log: pathrt.OrNop(logger)}
}

func (l *Loop) State() LoopState {
	return l.state
}

func (l *Loop) Closing() bool {
	return l.state == Closing
}

func (l *Loop) Transition(to LoopState) error {
	if l.state == to {
		return nil
	}
	for _, allowed := range transitions[l.state] {
		if allowed == to {
			// per-frame Idle <-> Rendering is too noisy to log
			if to != Rendering && l.state != Rendering {
				l.log.Debugf("loop %s -> %s", l.state, to)
			}
			l.state = to
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrBadTransition, l.state, to)
}
