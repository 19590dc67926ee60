// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockplot

import (
	"candlechart/stockval"
)

const (
	wheelZoomInFactor  = 1.1
	wheelZoomOutFactor = 0.9

	scaleDragSensitivity = 0.003
	minScaleDragFactor   = 0.1
	maxScaleDragFactor   = 10.0
)

type DragMode int

const (
	DragNone DragMode = iota
	DragPanning
	DragScaling
)

func (m DragMode) String() string {
	switch m {
	case DragNone:
		return "idle"
	case DragPanning:
		return "panning"
	case DragScaling:
		return "scaling"
	default:
		return "unknown"
	}
}

// InteractionState is the pointer related state which is read by the renderer.
type InteractionState struct {
	Mode          DragMode
	LastPos       Point
	PointerPos    Point
	PointerInside bool
}

// Controller translates input events to viewport changes.
type Controller struct {
	state InteractionState
}

func NewController() *Controller {
	return &Controller{}
}

func (c *Controller) State() InteractionState {
	return c.state
}

// Handle applies e to v and returns whether a redraw is needed.
func (c *Controller) Handle(v *Viewport, e Event) bool {
	var redraw bool
	c.state, redraw = transition(c.state, v, e)
	return redraw
}

func transition(s InteractionState, v *Viewport, e Event) (InteractionState, bool) {
	dims := newDimensions(v.width, v.height)
	switch e.Kind {
	case EventPress:
		s.PointerPos = e.Position
		switch dims.area(e.Position) {
		case EventAreaAutoToggle:
			v.SetAutoScale(!v.autoScale)
			return s, true
		case EventAreaLogToggle:
			v.SetLogScale(!v.logScale)
			return s, true
		case EventAreaYaxis:
			s.Mode = DragScaling
			v.SetAutoScale(false)
		default:
			s.Mode = DragPanning
		}
		s.LastPos = e.Position
		return s, true

	case EventDrag:
		s.PointerPos = e.Position
		if s.Mode == DragNone {
			return s, false
		}
		dx := e.Position.X - s.LastPos.X
		dy := e.Position.Y - s.LastPos.Y
		s.LastPos = e.Position
		if dx == 0 && dy == 0 {
			return s, false
		}
		if s.Mode == DragPanning {
			v.pan(dx)
			if dy != 0 {
				// Dragging up reveals lower prices.
				v.shiftPrice(-dy, dims.chartHeight)
			}
			return s, true
		}
		if dy == 0 {
			return s, false
		}
		// Dragging down zooms in.
		v.scalePrice(stockval.Clamp(1-dy*scaleDragSensitivity, minScaleDragFactor, maxScaleDragFactor))
		return s, true

	case EventRelease:
		s.Mode = DragNone
		s.PointerPos = e.Position
		return s, true

	case EventScroll:
		if e.Scroll == 0 {
			return s, false
		}
		factor := wheelZoomOutFactor
		if e.Scroll > 0 {
			factor = wheelZoomInFactor
		}
		return s, v.zoomAt(factor, e.Position.X)

	case EventMove:
		s.PointerPos = e.Position
		s.PointerInside = true
		return s, true

	case EventLeave:
		changed := s.PointerInside
		s.PointerInside = false
		return s, changed

	case EventResize:
		v.Resize(e.Size.X, e.Size.Y)
		return s, true
	}
	return s, false
}
