// Package tui is the terminal front end of the focus timer.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/focusmode/focusmode/internal/models"
	"github.com/focusmode/focusmode/internal/timer"
)

const recordTimeout = 10 * time.Second

type Model struct {
	timer    *timer.Timer
	recorder Recorder
	task     string

	snapshot   timer.Snapshot
	offerBreak bool
	status     string
	err        error
	quitting   bool
}

// New wraps clock. recorder may be nil, in which case runs are not saved.
func New(clock *timer.Timer, recorder Recorder, task string) Model {
	return Model{
		timer:    clock,
		recorder: recorder,
		task:     task,
		snapshot: clock.Snapshot(),
		status:   "Press space to start.",
	}
}

func (m Model) Init() tea.Cmd {
	return waitForEvent(m.timer.Events())
}

func waitForEvent(events <-chan timer.Event) tea.Cmd {
	return func() tea.Msg {
		return TimerEventMsg{Event: <-events}
	}
}

func (m Model) recordCmd(event timer.Event) tea.Cmd {
	recorder, task := m.recorder, m.task
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		return RecordedMsg{Err: recorder.Record(ctx, event, task)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg.String())

	case TimerEventMsg:
		m.snapshot = m.timer.Snapshot()
		next := waitForEvent(m.timer.Events())
		if msg.Event.Kind != timer.EventCompleted {
			return m, next
		}
		m.offerBreak = msg.Event.SuggestBreak
		m.status = fmt.Sprintf("%s finished.", typeLabel(msg.Event.Type))
		if m.offerBreak {
			m.status += " Press b for a short break."
		}
		if m.recorder == nil {
			return m, next
		}
		return m, tea.Batch(next, m.recordCmd(msg.Event))

	case RecordedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.status += " Saved."
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case KeyQuit, KeyCtrlC:
		m.quitting = true
		m.timer.Close()
		return m, tea.Quit

	case KeyToggle:
		switch m.snapshot.State {
		case timer.StateRunning:
			m.timer.Pause()
			m.status = "Paused."
		case timer.StatePaused:
			m.timer.Resume()
			m.status = "Focus."
		default:
			m.timer.Start(m.snapshot.Duration)
			m.status = "Focus."
		}
		m.offerBreak = false

	case KeyReset:
		m.timer.Reset()
		m.offerBreak = false
		m.status = "Reset."

	case KeyPomodoro, KeyShortBreak, KeyLongBreak:
		_ = m.timer.Select(keyTimerType(key))
		m.offerBreak = false
		m.status = typeLabel(keyTimerType(key)) + " selected."

	case KeyTakeBreak:
		if !m.offerBreak {
			return m, nil
		}
		_ = m.timer.Select(models.TimerShortBreak)
		m.timer.Start(models.DefaultShortBreakMinutes)
		m.offerBreak = false
		m.status = "Short break."
	}

	m.snapshot = m.timer.Snapshot()
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("FocusMode · " + typeLabel(m.snapshot.Type)))
	b.WriteString("\n")
	b.WriteString(clockStyle.Render(m.snapshot.Remaining()))
	b.WriteString("\n")
	if m.task != "" {
		b.WriteString("Task: " + m.task + "\n")
	}
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render("Could not save run: " + m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("space start/pause · r reset · 1 2 3 presets · q quit"))
	b.WriteString("\n")
	return b.String()
}

func keyTimerType(key string) string {
	switch key {
	case KeyShortBreak:
		return models.TimerShortBreak
	case KeyLongBreak:
		return models.TimerLongBreak
	default:
		return models.TimerPomodoro
	}
}

func typeLabel(timerType string) string {
	switch timerType {
	case models.TimerShortBreak:
		return "Short break"
	case models.TimerLongBreak:
		return "Long break"
	default:
		return "Pomodoro"
	}
}
