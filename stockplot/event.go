// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockplot

type EventArea int

const (
	EventAreaPlot EventArea = iota
	EventAreaXaxis
	EventAreaYaxis
	EventAreaAutoToggle
	EventAreaLogToggle
)

type EventKind int

const (
	EventPress EventKind = iota
	EventDrag
	EventRelease
	EventScroll
	EventMove
	EventLeave
	EventResize
)

func (k EventKind) String() string {
	switch k {
	case EventPress:
		return "press"
	case EventDrag:
		return "drag"
	case EventRelease:
		return "release"
	case EventScroll:
		return "scroll"
	case EventMove:
		return "move"
	case EventLeave:
		return "leave"
	case EventResize:
		return "resize"
	default:
		return "unknown"
	}
}

// Event is a host independent input event in widget pixel coordinates.
// Scroll is positive when zooming in (wheel away from the user).
// Size is only used by EventResize.
type Event struct {
	Kind     EventKind
	Position Point
	Scroll   float64
	Size     Point
}

func Press(x, y float64) Event { return Event{Kind: EventPress, Position: Pt(x, y)} }
func Drag(x, y float64) Event { return Event{Kind: EventDrag, Position: Pt(x, y)} }
func Release(x, y float64) Event { return Event{Kind: EventRelease, Position: Pt(x, y)} }
func Move(x, y float64) Event { return Event{Kind: EventMove, Position: Pt(x, y)} }
func Leave() Event { return Event{Kind: EventLeave} }

func Scroll(x, y, delta float64) Event {
	return Event{Kind: EventScroll, Position: Pt(x, y), Scroll: delta}
}

func Resize(width, height float64) Event {
	return Event{Kind: EventResize, Size: Pt(width, height)}
}
