// Package notify holds the transient, self-expiring notifications shown after
// successful gallery mutations.
package notify

import "time"

// Kind classifies a notification by the mutation that produced it.
type Kind string

const (
	KindAdd    Kind = "add"
	KindEdit   Kind = "edit"
	KindDelete Kind = "delete"
)

// DefaultDuration is how long a notification stays visible.
const DefaultDuration = 5 * time.Second

// Notification is a single user-facing message.
type Notification struct {
	ID      int
	Message string
	Kind    Kind
}

// Queue is an ordered, oldest-first list of notifications. It does not own
// timers: every Enqueue must be paired by the caller with exactly one Expire
// after Duration. Expire always drops the head, which is only correct because
// notifications are displayed and consumed strictly in arrival order.
//
// Queue is not safe for concurrent use; it lives on the UI event loop.
type Queue struct {
	Duration time.Duration

	items  []Notification
	nextID int
}

// New returns a queue whose notifications expire after d (DefaultDuration
// when d <= 0).
func New(d time.Duration) *Queue {
	if d <= 0 {
		d = DefaultDuration
	}
	return &Queue{Duration: d}
}

// Enqueue appends a notification and returns it with its assigned id.
func (q *Queue) Enqueue(message string, kind Kind) Notification {
	q.nextID++
	n := Notification{ID: q.nextID, Message: message, Kind: kind}
	q.items = append(q.items, n)
	return n
}

// Expire removes the oldest notification. It reports false when the queue
// was already empty.
func (q *Queue) Expire() (Notification, bool) {
	if len(q.items) == 0 {
		return Notification{}, false
	}
	head := q.items[0]
	q.items = append([]Notification(nil), q.items[1:]...)
	return head, true
}

// Items returns a copy of the visible notifications, oldest first.
func (q *Queue) Items() []Notification {
	if len(q.items) == 0 {
		return nil
	}
	out := make([]Notification, len(q.items))
	copy(out, q.items)
	return out
}

// Len returns the number of visible notifications.
func (q *Queue) Len() int {
	return len(q.items)
}

// ExpiryDelay returns the configured display duration.
func (q *Queue) ExpiryDelay() time.Duration {
	if q.Duration <= 0 {
		return DefaultDuration
	}
	return q.Duration
}
