// Package events carries person status changes to the views derived
// from them. Listeners register explicitly instead of the old
// string-keyed cache-bust lists: anything depending on person state
// (dashboard counts, downstream consumers) implements StatusListener
// and is notified on every write.
package events

import (
	"context"

	"go.uber.org/zap"
)

// StatusChange one person status transition.
type StatusChange struct {
	MinistryID string `json:"ministry_id"`
	PersonID   string `json:"person_id"`
	Kind       string `json:"kind"`
	OldStatus  string `json:"old_status"`
	NewStatus  string `json:"new_status"`
	Outcome    string `json:"outcome,omitempty"`
	CheckinID  string `json:"checkin_id,omitempty"`
}

// StatusListener receives status changes after they are persisted.
// Listener failures must not fail the write that triggered them.
type StatusListener interface {
	OnStatusChange(ctx context.Context, change StatusChange)
}

// Fanout dispatches a change to every registered listener in order.
type Fanout struct {
	listeners []StatusListener
	logger    *zap.Logger
}

func NewFanout(logger *zap.Logger) *Fanout {
	return &Fanout{logger: logger}
}

func (f *Fanout) Register(l StatusListener) {
	f.listeners = append(f.listeners, l)
}

func (f *Fanout) OnStatusChange(ctx context.Context, change StatusChange) {
	for _, l := range f.listeners {
		l.OnStatusChange(ctx, change)
	}
}

var _ StatusListener = (*Fanout)(nil)
