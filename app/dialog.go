package app

import (
	"github.com/go-theft-auto/rack"
)

// DialogLevel is the severity shown on a message box.
type DialogLevel int

const (
	Info DialogLevel = iota
	Warning
	Error
)

func (l DialogLevel) String() string {
	switch l {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Dialog shows blocking modal message boxes.
type Dialog interface {
	Message(level DialogLevel, text string)
	// Confirm asks a yes/no question and reports whether yes was chosen.
	Confirm(text string) bool
}

// LogDialog writes messages to the logger and answers no to every question.
// It is used when no native dialog is available.
type LogDialog struct{}

func (LogDialog) Message(level DialogLevel, text string) {
	log := rack.Logger()
	switch level {
	case Error:
		log.Error(text)
	case Warning:
		log.Warn(text)
	default:
		log.Info(text)
	}
}

func (LogDialog) Confirm(text string) bool {
	rack.Logger().Warn(text, "answer", "no")
	return false
}
