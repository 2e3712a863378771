package schedule

import (
	"time"

	"github.com/ytget/bing-wallpaper/internal/model"
)

// NextFetchInterval returns how long to wait before fetching; zero means fetch now.
// A zero lastUpdate means no update ever ran.
func NextFetchInterval(now, lastUpdate time.Time, cfg model.ScheduleConfig) time.Duration {
	if cfg.UseScheduledTime {
		if d, ok := untilScheduledTime(now, lastUpdate, cfg.Hour, cfg.Minute); ok {
			return d
		}
	}
	return untilIntervalElapsed(now, lastUpdate, cfg.Interval())
}

// IsUpdateNecessary reports whether a fetch is due now
func IsUpdateNecessary(now, lastUpdate time.Time, cfg model.ScheduleConfig) bool {
	return NextFetchInterval(now, lastUpdate, cfg) == 0
}

func untilIntervalElapsed(now, lastUpdate time.Time, interval time.Duration) time.Duration {
	if lastUpdate.IsZero() {
		return 0
	}
	// A last update in the future (clock moved back) counts as just now.
	elapsed := now.Sub(lastUpdate)
	if elapsed < 0 {
		elapsed = 0
	}
	if remaining := interval - elapsed; remaining > 0 {
		return remaining
	}
	return 0
}

// untilScheduledTime returns false when hour or minute cannot form a time of day.
func untilScheduledTime(now, lastUpdate time.Time, hour, minute int) (time.Duration, bool) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, false
	}

	loc := now.Location()
	y, m, d := now.Date()
	target := time.Date(y, m, d, hour, minute, 0, 0, loc)

	if target.After(now) {
		return target.Sub(now), true
	}

	if !lastUpdate.IsZero() {
		last := lastUpdate.In(loc)
		ly, lm, ld := last.Date()
		sameDay := ly == y && lm == m && ld == d
		if sameDay && !last.Before(target) {
			tomorrow := time.Date(y, m, d+1, hour, minute, 0, 0, loc)
			return tomorrow.Sub(now), true
		}
	}

	return 0, true
}
