package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
)

// fullDayCloseMinute marks a closing time of 23:59 or later, which together
// with a 00:00 opening means the store never closes.
const fullDayCloseMinute = 23*60 + 59

// StoreOpenAt reports whether a store is open at the given instant.
//
// Evaluation order:
//  1. An explicit is_open_override=false closes the store unconditionally.
//  2. A 24/7 store, or one whose window spans the full day, is always open.
//  3. Without parseable opening hours the override decides; absent an
//     override the store is treated as open.
//  4. Otherwise the time-of-day window applies. A closing time strictly
//     before the opening time is an overnight window that wraps past
//     midnight; equal opening and closing times form an empty window, so
//     the store is never open.
//
// The window is half-open: a store is open at its opening minute and closed
// at its closing minute.
func StoreOpenAt(store model.Store, now time.Time) bool {
	if store.IsOpenOverride != nil && !*store.IsOpenOverride {
		return false
	}

	if store.Is24x7 {
		return true
	}

	open, okOpen := parseMinuteOfDay(store.OpensAt)
	close, okClose := parseMinuteOfDay(store.ClosesAt)
	if !okOpen || !okClose {
		if store.IsOpenOverride != nil {
			return *store.IsOpenOverride
		}
		return true
	}

	if open == 0 && close >= fullDayCloseMinute {
		return true
	}

	minute := now.Hour()*60 + now.Minute()

	if open <= close {
		return minute >= open && minute < close
	}
	// Overnight window, e.g. 20:00 to 02:00.
	return minute >= open || minute < close
}

// parseMinuteOfDay parses "HH:MM" or "HH:MM:SS" into minutes since midnight.
// Seconds are ignored.
func parseMinuteOfDay(s string) (int, bool) {
	if s == "" {
		return 0, false
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}

	return hour*60 + minute, true
}
