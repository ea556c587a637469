package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"PawMatch/internal/domain/models"
	domrepo "PawMatch/internal/domain/repository"
	"PawMatch/pkg/cache"
	applogger "PawMatch/pkg/logger"
)

const availabilityKeyPrefix = "avail:"

// AvailabilityIndex answers conflict queries against existing bookings and
// enumerates a sitter's remaining open windows. Only CONFIRMED and
// IN_PROGRESS bookings block time; the half-open overlap test here is the
// single source of truth for conflict detection.
type AvailabilityIndex struct {
	store     domrepo.DataStore
	cache     cache.Cache
	ttl       time.Duration
	openHour  int
	closeHour int
	logger    *applogger.Logger
}

// NewAvailabilityIndex builds the index. cache may be nil (no caching).
// openHour/closeHour are the fallback window for sitters with no configured
// hours.
func NewAvailabilityIndex(store domrepo.DataStore, c cache.Cache, ttl time.Duration, openHour, closeHour int, l *applogger.Logger) *AvailabilityIndex {
	if openHour <= 0 && closeHour <= 0 {
		openHour, closeHour = 8, 18
	}
	return &AvailabilityIndex{store: store, cache: c, ttl: ttl, openHour: openHour, closeHour: closeHour, logger: l}
}

// blocking filters to the statuses that consume time.
func blocking(bookings []*models.Booking) []*models.Booking {
	out := make([]*models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Status == models.StatusConfirmed || b.Status == models.StatusInProgress {
			out = append(out, b)
		}
	}
	return out
}

// IsAvailable reports whether the sitter has no blocking booking overlapping
// [start,end). Touching endpoints do not conflict. Reads the store directly;
// this path must never serve stale data.
func (a *AvailabilityIndex) IsAvailable(ctx context.Context, sitterID string, start, end time.Time) (bool, error) {
	if !start.Before(end) {
		return false, models.ValidationErrorf("start %s must precede end %s", start, end)
	}
	existing, err := a.store.GetBookingsForSitter(ctx, sitterID, start, end)
	if err != nil {
		return false, models.DataError("get bookings", err)
	}
	for _, b := range blocking(existing) {
		if b.Overlaps(start, end) {
			return false, nil
		}
	}
	return true, nil
}

// FreeWindows enumerates, per day in [from,to], the sitter's open hours minus
// blocking bookings. Responses are cached per sitter and range; booking
// writes invalidate the sitter's prefix.
func (a *AvailabilityIndex) FreeWindows(ctx context.Context, sitterID string, from, to time.Time) ([]models.AvailabilityWindow, error) {
	if !from.Before(to) {
		return nil, models.ValidationErrorf("from %s must precede to %s", from, to)
	}

	key := fmt.Sprintf("%s%s:%d:%d", availabilityKeyPrefix, sitterID, from.Unix(), to.Unix())
	if a.cache != nil {
		if b, ok, err := a.cache.GetBytes(ctx, key); err == nil && ok {
			var cached []models.AvailabilityWindow
			if err := json.Unmarshal(b, &cached); err == nil {
				return cached, nil
			}
		}
	}

	sitter, err := a.store.GetSitter(ctx, sitterID)
	if err != nil {
		return nil, models.DataError("get sitter", err)
	}
	open, close := a.openHour, a.closeHour
	if sitter.OpenHour > 0 || sitter.CloseHour > 0 {
		open, close = sitter.OpenHour, sitter.CloseHour
	}

	existing, err := a.store.GetBookingsForSitter(ctx, sitterID, from, to)
	if err != nil {
		return nil, models.DataError("get bookings", err)
	}
	busy := blocking(existing)

	var windows []models.AvailabilityWindow
	for day := dateOf(from); !day.After(dateOf(to)); day = day.AddDate(0, 0, 1) {
		w := models.AvailabilityWindow{
			SitterID:  sitterID,
			Date:      day,
			OpenHour:  open,
			CloseHour: close,
		}
		dayStart := day.Add(time.Duration(open) * time.Hour)
		dayEnd := day.Add(time.Duration(close) * time.Hour)

		var taken []models.Interval
		for _, b := range busy {
			if b.Overlaps(dayStart, dayEnd) {
				taken = append(taken, clip(models.Interval{Start: b.StartTime, End: b.EndTime}, dayStart, dayEnd))
			}
		}
		sort.Slice(taken, func(i, j int) bool { return taken[i].Start.Before(taken[j].Start) })
		w.ExistingBookings = taken
		w.FreeIntervals = subtract(models.Interval{Start: dayStart, End: dayEnd}, taken)
		windows = append(windows, w)
	}

	if a.cache != nil {
		if b, err := json.Marshal(windows); err == nil {
			if err := a.cache.SetBytes(ctx, key, b, a.ttl); err != nil && a.logger != nil {
				a.logger.Warn("availability cache set", applogger.Error(err))
			}
		}
	}
	return windows, nil
}

// Invalidate drops all cached windows for a sitter. Called on every booking
// write for that sitter.
func (a *AvailabilityIndex) Invalidate(ctx context.Context, sitterID string) {
	if a.cache == nil {
		return
	}
	if err := a.cache.DeletePrefix(ctx, availabilityKeyPrefix+sitterID+":"); err != nil && a.logger != nil {
		a.logger.Warn("availability cache invalidate", applogger.Error(err))
	}
}

// subtract removes the sorted taken intervals from window, returning the
// remaining contiguous sub-intervals.
func subtract(window models.Interval, taken []models.Interval) []models.Interval {
	free := make([]models.Interval, 0, len(taken)+1)
	cursor := window.Start
	for _, t := range taken {
		if t.Start.After(cursor) {
			free = append(free, models.Interval{Start: cursor, End: minTime(t.Start, window.End)})
		}
		if t.End.After(cursor) {
			cursor = t.End
		}
	}
	if cursor.Before(window.End) {
		free = append(free, models.Interval{Start: cursor, End: window.End})
	}
	return free
}

func clip(iv models.Interval, lo, hi time.Time) models.Interval {
	if iv.Start.Before(lo) {
		iv.Start = lo
	}
	if iv.End.After(hi) {
		iv.End = hi
	}
	return iv
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
