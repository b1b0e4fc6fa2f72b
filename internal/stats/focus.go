package stats

import (
	"sync"
	"time"
)

// FocusSession is one running Pomodoro-style focus block. Stopping it
// credits the elapsed whole minutes to the day the session started.
type FocusSession struct {
	service *Service
	started time.Time

	once sync.Once
}

// StartFocus begins a focus session.
func (s *Service) StartFocus() *FocusSession {
	return &FocusSession{service: s, started: time.Now()}
}

// Stop ends the session and records its minutes. Safe to call more than
// once; only the first call counts.
func (f *FocusSession) Stop() int {
	minutes := 0
	f.once.Do(func() {
		minutes = int(time.Since(f.started).Minutes())
		f.service.AddFocusMinutes(f.started, minutes)
	})
	return minutes
}
