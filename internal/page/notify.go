package page

import (
	"sync"
	"time"

	"github.com/csg33k/salesproj/internal/domain"
	"github.com/csg33k/salesproj/internal/ports"
)

// DefaultNotificationDelay is how long a message stays on screen.
const DefaultNotificationDelay = 5 * time.Second

// Notifier drives the notification surface. Only one message is shown at a
// time; each new message restarts the auto-clear delay.
type Notifier struct {
	view  ports.View
	clock ports.Clock
	delay time.Duration

	mu    sync.Mutex
	seq   uint64
	timer ports.Timer
}

func NewNotifier(view ports.View, clock ports.Clock, delay time.Duration) *Notifier {
	if delay <= 0 {
		delay = DefaultNotificationDelay
	}
	return &Notifier{view: view, clock: clock, delay: delay}
}

// Notify replaces the current message and schedules its removal.
func (n *Notifier) Notify(text string, kind domain.NotificationKind) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.stopLocked()
	n.seq++
	seq := n.seq
	n.view.ShowMessage(domain.Notification{Kind: kind, Text: text})
	n.timer = n.clock.AfterFunc(n.delay, func() { n.expire(seq) })
}

// Clear removes the current message, if any, and cancels its timer.
func (n *Notifier) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.stopLocked()
	n.seq++
	n.view.ClearMessage()
}

// expire clears the message identified by seq. A timer that fired after
// being superseded finds a newer seq and does nothing.
func (n *Notifier) expire(seq uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if seq != n.seq {
		return
	}
	n.timer = nil
	n.view.ClearMessage()
}

func (n *Notifier) stopLocked() {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}
