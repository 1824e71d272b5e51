package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// reminderQueueKey Redis ZSET of queued reminders, scored by the unix
// time they become due.
const reminderQueueKey = "zoweh:reminders:due"

// reminderEntry queued leader reminder payload (ZSET member).
type reminderEntry struct {
	MinistryID string `json:"ministry_id"`
	PersonID   string `json:"person_id"`
	PersonName string `json:"person_name"`
	LeaderID   string `json:"leader_id,omitempty"`
	Date       string `json:"date"`
	Time       string `json:"time,omitempty"`
	VideoLink  string `json:"video_link,omitempty"`
	RemindAt   int64  `json:"remind_at"`
}

// LeaderDirectory resolves a leader's contact email at dispatch time.
type LeaderDirectory interface {
	LeaderEmail(ctx context.Context, ministryID, leaderID string) (string, error)
}

// ReminderScheduler queues a leader reminder for the configured lead
// time before each scheduled follow-up and, when the person left an
// email, sends them an immediate appointment notice. Failures are
// logged and swallowed: the check-in that scheduled the follow-up has
// already been persisted.
type ReminderScheduler struct {
	redis     *redis.Client
	messenger MessageSender
	leadTime  time.Duration
	logger    *zap.Logger
}

func NewReminderScheduler(redisClient *redis.Client, messenger MessageSender, leadTime time.Duration, logger *zap.Logger) *ReminderScheduler {
	if leadTime <= 0 {
		leadTime = 24 * time.Hour
	}
	return &ReminderScheduler{
		redis:     redisClient,
		messenger: messenger,
		leadTime:  leadTime,
		logger:    logger,
	}
}

var _ Notifier = (*ReminderScheduler)(nil)

func (s *ReminderScheduler) FollowupScheduled(ctx context.Context, n FollowupNotice) {
	remindAt := n.Date.Add(-s.leadTime)

	entry := reminderEntry{
		MinistryID: n.MinistryID,
		PersonID:   n.PersonID,
		PersonName: n.PersonName,
		LeaderID:   n.LeaderID,
		Date:       n.Date.Format("2006-01-02"),
		Time:       n.Time,
		VideoLink:  n.VideoLink,
		RemindAt:   remindAt.Unix(),
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		s.logger.Error("Failed to encode reminder", zap.Error(err))
		return
	}

	err = s.redis.ZAdd(ctx, reminderQueueKey, &redis.Z{
		Score:  float64(remindAt.Unix()),
		Member: string(payload),
	}).Err()
	if err != nil {
		s.logger.Error("Failed to queue leader reminder",
			zap.String("person_id", n.PersonID),
			zap.Error(err),
		)
	}

	if n.RecipientEmail != "" {
		msg := Message{
			Channel: "email",
			To:      n.RecipientEmail,
			Subject: "Your follow-up appointment",
			Body:    appointmentBody(n.PersonName, entry.Date, n.Time, n.VideoLink),
		}
		if err := s.messenger.Send(ctx, msg); err != nil {
			s.logger.Error("Failed to send appointment notice",
				zap.String("person_id", n.PersonID),
				zap.Error(err),
			)
		}
	}
}

func appointmentBody(name, date, timeOfDay, videoLink string) string {
	body := fmt.Sprintf("Hi %s, your follow-up is scheduled for %s", name, date)
	if timeOfDay != "" {
		body += " at " + timeOfDay
	}
	body += "."
	if videoLink != "" {
		body += " Join here: " + videoLink
	}
	return body
}

// ReminderWorker drains due reminders and dispatches them to leaders.
// Single consumer per deployment; claims via ZRem before sending so a
// crash loses at most the reminders claimed in one batch.
type ReminderWorker struct {
	redis     *redis.Client
	messenger MessageSender
	leaders   LeaderDirectory
	interval  time.Duration
	logger    *zap.Logger
}

func NewReminderWorker(redisClient *redis.Client, messenger MessageSender, leaders LeaderDirectory, interval time.Duration, logger *zap.Logger) *ReminderWorker {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &ReminderWorker{
		redis:     redisClient,
		messenger: messenger,
		leaders:   leaders,
		interval:  interval,
		logger:    logger,
	}
}

// Run ticks until ctx is cancelled.
func (w *ReminderWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("Reminder worker started", zap.Duration("interval", w.interval))
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Reminder worker stopped")
			return
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

func (w *ReminderWorker) drain(ctx context.Context) {
	now := time.Now().Unix()
	members, err := w.redis.ZRangeByScore(ctx, reminderQueueKey, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(now, 10),
		Count: 100,
	}).Result()
	if err != nil {
		w.logger.Error("Failed to read reminder queue", zap.Error(err))
		return
	}

	for _, member := range members {
		removed, err := w.redis.ZRem(ctx, reminderQueueKey, member).Result()
		if err != nil || removed == 0 {
			continue // another worker claimed it
		}

		var entry reminderEntry
		if err := json.Unmarshal([]byte(member), &entry); err != nil {
			w.logger.Error("Dropping unreadable reminder", zap.Error(err))
			continue
		}
		w.dispatch(ctx, entry)
	}
}

func (w *ReminderWorker) dispatch(ctx context.Context, entry reminderEntry) {
	if entry.LeaderID == "" {
		w.logger.Warn("Reminder without assigned leader",
			zap.String("person_id", entry.PersonID),
		)
		return
	}

	email, err := w.leaders.LeaderEmail(ctx, entry.MinistryID, entry.LeaderID)
	if err != nil || email == "" {
		w.logger.Warn("Could not resolve leader email",
			zap.String("leader_id", entry.LeaderID),
			zap.Error(err),
		)
		return
	}

	body := fmt.Sprintf("Follow-up with %s is tomorrow (%s", entry.PersonName, entry.Date)
	if entry.Time != "" {
		body += " " + entry.Time
	}
	body += ")."
	if entry.VideoLink != "" {
		body += " Video link: " + entry.VideoLink
	}

	msg := Message{
		Channel: "email",
		To:      email,
		Subject: "Follow-up reminder: " + entry.PersonName,
		Body:    body,
	}
	if err := w.messenger.Send(ctx, msg); err != nil {
		w.logger.Error("Failed to send leader reminder",
			zap.String("leader_id", entry.LeaderID),
			zap.String("person_id", entry.PersonID),
			zap.Error(err),
		)
	}
}
