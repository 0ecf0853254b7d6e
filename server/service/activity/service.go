// Package activity reduces a user's raw activity log into day-level presence
// data and a consecutive-day streak count.
package activity

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/king120kw/research-weaver-sub001/store"
)

const dateLayout = "2006-01-02"

// Store is the persistence surface the aggregator consumes.
type Store interface {
	CreateActivityRecord(ctx context.Context, create *store.ActivityRecord) (*store.ActivityRecord, error)
	ListActivityRecords(ctx context.Context, find *store.FindActivityRecord) ([]*store.ActivityRecord, error)
}

// Stats is the aggregate view of a user's activity log.
type Stats struct {
	// TotalByType counts records per activity type tag.
	TotalByType map[string]int64
	// StreakDays is the number of consecutive calendar days with at least one
	// record, counting back from today. No record today means zero.
	StreakDays int64
}

// Service aggregates activity records. It performs at most one store read per
// invocation and holds no cross-call state.
type Service struct {
	store Store

	// now is injected for deterministic streak tests. "Today" is always
	// interpreted as a UTC calendar date.
	now func() time.Time
}

// NewService creates a new activity aggregator.
func NewService(activityStore Store) *Service {
	return &Service{
		store: activityStore,
		now:   time.Now,
	}
}

// Record logs one user action. Metadata may be empty; it is stored as an
// opaque JSON string.
func (s *Service) Record(ctx context.Context, userID int32, activityType, metadata string) error {
	if metadata == "" {
		metadata = "{}"
	}
	now := s.now().UTC()
	_, err := s.store.CreateActivityRecord(ctx, &store.ActivityRecord{
		UserID:       userID,
		ActivityType: activityType,
		ActivityDate: now.Format(dateLayout),
		Metadata:     metadata,
		CreatedTs:    now.Unix(),
	})
	return err
}

// ActiveDaysInMonth returns the ascending, deduplicated day-of-month numbers
// with at least one record for the user in the given calendar month. A store
// failure yields an empty slice; the error is logged, never propagated.
func (s *Service) ActiveDaysInMonth(ctx context.Context, userID int32, year int, month time.Month) []int {
	userIDPtr := userID
	monthStart := fmt.Sprintf("%04d-%02d-01", year, int(month))
	nextMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	monthEnd := nextMonth.Format(dateLayout)

	records, err := s.store.ListActivityRecords(ctx, &store.FindActivityRecord{
		UserID:          &userIDPtr,
		ActivityDateGte: &monthStart,
		ActivityDateLt:  &monthEnd,
	})
	if err != nil {
		slog.Warn("failed to list activity records, returning no active days",
			slog.Int64("user_id", int64(userID)),
			slog.String("error", err.Error()),
		)
		return []int{}
	}

	seen := make(map[int]bool)
	for _, r := range records {
		date, err := time.Parse(dateLayout, r.ActivityDate)
		if err != nil {
			continue
		}
		seen[date.Day()] = true
	}

	days := make([]int, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Ints(days)
	return days
}

// ActivityStats returns per-type totals and the current streak for the user.
// A store failure yields the zero-value stats; the error is logged, never
// propagated.
func (s *Service) ActivityStats(ctx context.Context, userID int32) *Stats {
	stats := &Stats{TotalByType: make(map[string]int64)}

	userIDPtr := userID
	records, err := s.store.ListActivityRecords(ctx, &store.FindActivityRecord{UserID: &userIDPtr})
	if err != nil {
		slog.Warn("failed to list activity records, returning zero stats",
			slog.Int64("user_id", int64(userID)),
			slog.String("error", err.Error()),
		)
		return stats
	}

	activeDates := make(map[string]bool)
	for _, r := range records {
		stats.TotalByType[r.ActivityType]++
		activeDates[r.ActivityDate] = true
	}

	stats.StreakDays = streakDays(activeDates, s.now().UTC())
	return stats
}

// streakDays walks consecutive calendar days backward from today over the
// distinct-date set. The first gap stops the walk; a missing record for today
// itself yields zero immediately.
func streakDays(activeDates map[string]bool, today time.Time) int64 {
	var streak int64
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	for activeDates[day.Format(dateLayout)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
