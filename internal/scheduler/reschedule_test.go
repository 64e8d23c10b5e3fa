package scheduler_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/wellspring/internal/scheduler"
	"github.com/limbo/wellspring/pkg/entity"
	"github.com/stretchr/testify/assert"
)

func TestAdvance(t *testing.T) {
	trigger := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	logger := slog.Default()
	newReminder := func(frequency string) *entity.Reminder {
		return &entity.Reminder{
			ID:          uuid.New(),
			TriggerTime: trigger,
			Frequency:   frequency,
			Status:      entity.StatusPending,
		}
	}
	t.Run("hourly", func(t *testing.T) {
		r := newReminder(entity.FrequencyHourly)
		scheduler.Advance(r, logger)
		assert.Equal(t, trigger.Add(time.Hour), r.TriggerTime)
		assert.Equal(t, entity.StatusPending, r.Status)
	})
	t.Run("daily", func(t *testing.T) {
		r := newReminder(entity.FrequencyDaily)
		scheduler.Advance(r, logger)
		assert.Equal(t, trigger.Add(24*time.Hour), r.TriggerTime)
		assert.Equal(t, entity.StatusPending, r.Status)
	})
	t.Run("weekly", func(t *testing.T) {
		r := newReminder(entity.FrequencyWeekly)
		scheduler.Advance(r, logger)
		assert.Equal(t, time.Date(2025, 1, 8, 8, 0, 0, 0, time.UTC), r.TriggerTime)
		assert.Equal(t, entity.StatusPending, r.Status)
	})
	t.Run("monthly is exactly thirty days", func(t *testing.T) {
		r := newReminder(entity.FrequencyMonthly)
		scheduler.Advance(r, logger)
		assert.Equal(t, time.Date(2025, 1, 31, 8, 0, 0, 0, time.UTC), r.TriggerTime)
		assert.Equal(t, entity.StatusPending, r.Status)
	})
	t.Run("unknown frequency is a no-op", func(t *testing.T) {
		r := newReminder("biweekly")
		scheduler.Advance(r, logger)
		assert.Equal(t, trigger, r.TriggerTime)
		assert.Equal(t, entity.StatusPending, r.Status)
	})
	t.Run("new trigger is strictly later", func(t *testing.T) {
		for _, freq := range []string{entity.FrequencyHourly, entity.FrequencyDaily, entity.FrequencyWeekly, entity.FrequencyMonthly} {
			r := newReminder(freq)
			scheduler.Advance(r, logger)
			assert.True(t, r.TriggerTime.After(trigger), freq)
		}
	})
}
