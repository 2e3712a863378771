package config

import "fmt"

// RetentionDuration selects how long downloaded images are kept
type RetentionDuration int

const (
	Keep1Day RetentionDuration = iota
	Keep2Days
	Keep5Days
	Keep10Days
	KeepForever
)

// retentionDays maps finite retention classes to their length in days
var retentionDays = map[RetentionDuration]int{
	Keep1Day:   1,
	Keep2Days:  2,
	Keep5Days:  5,
	Keep10Days: 10,
}

// legacyRetention maps the count based encoding used before settings version 2
// (5, 10, 50, 100 images, unlimited) onto day based classes
var legacyRetention = map[int]RetentionDuration{
	0: Keep5Days,
	1: Keep10Days,
	2: Keep5Days,
	3: Keep10Days,
	4: KeepForever,
}

// IsValid returns true for known retention classes
func (r RetentionDuration) IsValid() bool {
	return r >= Keep1Day && r <= KeepForever
}

// Days returns the retention length; false means images are kept forever
func (r RetentionDuration) Days() (int, bool) {
	days, ok := retentionDays[r]
	return days, ok
}

// String returns a human readable label
func (r RetentionDuration) String() string {
	if r == KeepForever {
		return "Forever"
	}
	days, ok := r.Days()
	if !ok {
		return fmt.Sprintf("RetentionDuration(%d)", int(r))
	}
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

// RetentionOptions returns all retention classes in display order
func RetentionOptions() []RetentionDuration {
	return []RetentionDuration{Keep1Day, Keep2Days, Keep5Days, Keep10Days, KeepForever}
}

// ParseRetention maps a label produced by String back to its class
func ParseRetention(label string) (RetentionDuration, error) {
	for _, r := range RetentionOptions() {
		if r.String() == label {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown retention duration: %q", label)
}
