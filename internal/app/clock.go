package app

import "time"

// Timer is a pending callback that can be canceled.
type Timer interface {
	Stop() bool
}

// Clock abstracts wall time and delayed callbacks so the feedback window is testable.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

