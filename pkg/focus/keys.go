package focus

import (
	"github.com/go-drift/domkit/pkg/events"
	"github.com/go-drift/domkit/pkg/theme"
)

// Key names as reported in events.Event.Key.
const (
	KeyTab        = "Tab"
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyHome       = "Home"
	KeyEnd        = "End"
	KeyEscape     = "Escape"
)

// Action is a logical traversal request.
type Action int

const (
	ActionNone Action = iota
	ActionNext
	ActionPrevious
	ActionFirst
	ActionLast
)

// ArrowAction maps an arrow, Home or End key to an action. Under
// right-to-left direction the horizontal arrows are swapped; vertical
// arrows are unaffected.
func ArrowAction(key string, dir theme.Direction) Action {
	switch key {
	case KeyArrowDown:
		return ActionNext
	case KeyArrowUp:
		return ActionPrevious
	case KeyArrowRight:
		if dir == theme.RightToLeft {
			return ActionPrevious
		}
		return ActionNext
	case KeyArrowLeft:
		if dir == theme.RightToLeft {
			return ActionNext
		}
		return ActionPrevious
	case KeyHome:
		return ActionFirst
	case KeyEnd:
		return ActionLast
	}
	return ActionNone
}

// Perform runs a traversal action and returns the focused id.
func (m *Manager) Perform(a Action) (string, error) {
	switch a {
	case ActionNext:
		return m.MoveNext()
	case ActionPrevious:
		return m.MovePrevious()
	case ActionFirst:
		return m.MoveFirst()
	case ActionLast:
		return m.MoveLast()
	}
	return m.current, nil
}

// HandleKey applies a key-down event. Tab and Shift+Tab walk the tab
// sequence, leaving any active group. Arrow keys, Home and End move within
// the group that holds focus; outside a group they are ignored. Handled
// events have their default action prevented.
func (m *Manager) HandleKey(e *events.Event) (bool, error) {
	if e.Kind != events.KeyDown {
		return false, nil
	}
	if e.Key == KeyTab {
		m.ExitGroup()
		e.PreventDefault()
		var err error
		if e.Shift {
			_, err = m.MovePrevious()
		} else {
			_, err = m.MoveNext()
		}
		return true, err
	}
	action := ArrowAction(e.Key, m.direction)
	if action == ActionNone {
		return false, nil
	}
	group := m.currentGroup()
	if group == "" {
		return false, nil
	}
	active := m.group
	m.group = group
	_, err := m.Perform(action)
	m.group = active
	e.PreventDefault()
	return true, err
}

// KeyHandler returns a listener suitable for events.Registry that forwards
// key-down events to HandleKey. Host errors go to onError when non-nil.
func (m *Manager) KeyHandler(onError func(error)) events.Handler {
	return func(e *events.Event) {
		if _, err := m.HandleKey(e); err != nil && onError != nil {
			onError(err)
		}
	}
}
