// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockplot

type DisplayKind int

const (
	DisplayEmpty DisplayKind = iota
	DisplayLoading
	DisplayReady
	DisplayError
)

const (
	DefaultEmptyMessage   = "No data"
	DefaultLoadingMessage = "Loading..."
	DefaultErrorMessage   = "Error"
)

// DisplayState tells what the chart shows besides (or instead of) candles.
type DisplayState struct {
	Kind    DisplayKind
	Message string
}

func EmptyState(message string) DisplayState {
	return DisplayState{Kind: DisplayEmpty, Message: message}
}

func LoadingState(message string) DisplayState {
	return DisplayState{Kind: DisplayLoading, Message: message}
}

func ReadyState() DisplayState {
	return DisplayState{Kind: DisplayReady}
}

func ErrorState(reason string) DisplayState {
	return DisplayState{Kind: DisplayError, Message: reason}
}

// Text returns the status line, which is empty when ready.
func (s DisplayState) Text() string {
	switch s.Kind {
	case DisplayEmpty:
		return orDefault(s.Message, DefaultEmptyMessage)
	case DisplayLoading:
		return orDefault(s.Message, DefaultLoadingMessage)
	case DisplayReady:
		return ""
	case DisplayError:
		return orDefault(s.Message, DefaultErrorMessage)
	default:
		panic("unknown display state")
	}
}

func (s DisplayState) IsError() bool {
	return s.Kind == DisplayError
}

func orDefault(s, def string) string {
	if len(s) == 0 {
		return def
	}
	return s
}
