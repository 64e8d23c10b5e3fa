package scheduler

import (
	"log/slog"
	"time"

	"github.com/limbo/wellspring/pkg/entity"
)

// Frequency steps are fixed durations. Monthly is exactly 30 days, a known
// simplification carried over from the product unchanged.
var frequencySteps = map[string]time.Duration{
	entity.FrequencyHourly:  time.Hour,
	entity.FrequencyDaily:   24 * time.Hour,
	entity.FrequencyWeekly:  7 * 24 * time.Hour,
	entity.FrequencyMonthly: 30 * 24 * time.Hour,
}

// Advance moves a recurring reminder to its next occurrence in the same
// local-time frame (the owner's offset is not reapplied) and resets it to
// pending so a later tick can pick it up again. A frequency it does not
// recognize leaves the reminder untouched: it stays pending with a stale
// trigger time until somebody corrects it.
func Advance(r *entity.Reminder, logger *slog.Logger) {
	step, ok := frequencySteps[r.Frequency]
	if !ok {
		logger.Warn("unknown frequency, not rescheduling",
			slog.String("reminder_id", r.ID.String()),
			slog.String("frequency", r.Frequency),
		)
		return
	}
	r.TriggerTime = r.TriggerTime.Add(step)
	r.Status = entity.StatusPending
	logger.Info("reminder rescheduled",
		slog.String("reminder_id", r.ID.String()),
		slog.Time("next_trigger", r.TriggerTime),
	)
}
