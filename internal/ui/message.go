package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/userdeck/internal/schedule"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgTimerFired MsgKind = iota
)

// timerFiredMsg is the constructor for [MsgTimerFired]
func timerFiredMsg(t schedule.Timer) Msg {
	return Msg{kind: MsgTimerFired, data: t}
}

// tickTimer delivers t back to the program once its delay has elapsed.
func tickTimer(t schedule.Timer) tea.Cmd {
	return tea.Tick(t.Delay, func(time.Time) tea.Msg {
		return timerFiredMsg(t)
	})
}
