package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

// fakeSender records messages handed to the gateway.
type fakeSender struct {
	mu       sync.Mutex
	messages []Message
}

func (f *fakeSender) Send(_ context.Context, msg Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, msg)
	return nil
}

func TestAppointmentBody(t *testing.T) {
	body := appointmentBody("Ada Mensah", "2025-03-01", "19:30", "https://meet.example/abc")
	require.Equal(t, "Hi Ada Mensah, your follow-up is scheduled for 2025-03-01 at 19:30. Join here: https://meet.example/abc", body)

	bare := appointmentBody("Ada Mensah", "2025-03-01", "", "")
	require.Equal(t, "Hi Ada Mensah, your follow-up is scheduled for 2025-03-01.", bare)
}

// TestReminderWorker_StopsOnCancel the worker goroutine must exit when
// its context is cancelled, before the first tick fires.
func TestReminderWorker_StopsOnCancel(t *testing.T) {
	// Never connects: the long interval means drain never runs.
	client := redis.NewClient(&redis.Options{Addr: "localhost:1"})
	defer client.Close()

	// IgnoreCurrent covers the client's pool goroutines; the check is
	// about the worker goroutine only.
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	worker := NewReminderWorker(client, &fakeSender{}, nil, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop on context cancel")
	}
}
