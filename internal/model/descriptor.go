package model

import (
	"math"
	"strings"
	"time"
)

// StartDateLayout is the layout of a descriptor key (YYYYMMDD)
const StartDateLayout = "20060102"

// ImageEntry is one image record as returned by the remote archive
type ImageEntry struct {
	StartDate     string `json:"startdate"`
	URL           string `json:"url"`
	Copyright     string `json:"copyright"`
	CopyrightLink string `json:"copyrightlink"`
}

// ImageDescriptor is the stored metadata for one day's wallpaper, keyed by StartDate.
// Descriptors are immutable; whether the image is on disk is derived from the file system.
type ImageDescriptor struct {
	StartDate     string `yaml:"start_date"`
	URL           string `yaml:"url"`
	Copyright     string `yaml:"copyright"`
	CopyrightLink string `yaml:"copyright_link,omitempty"`
}

// NewImageDescriptor creates a descriptor from a remote entry
func NewImageDescriptor(entry ImageEntry) ImageDescriptor {
	return ImageDescriptor{
		StartDate:     entry.StartDate,
		URL:           entry.URL,
		Copyright:     entry.Copyright,
		CopyrightLink: entry.CopyrightLink,
	}
}

// Title returns the description part of the copyright text, e.g. "Lighthouse at dusk"
func (d ImageDescriptor) Title() string {
	title, _, _ := strings.Cut(d.Copyright, "(")
	return strings.TrimSpace(title)
}

// Credit returns the parenthesised part of the copyright text without brackets
func (d ImageDescriptor) Credit() string {
	idx := strings.LastIndex(d.Copyright, "(")
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(strings.ReplaceAll(d.Copyright[idx+1:], ")", ""))
}

// Date parses StartDate in the local time zone
func (d ImageDescriptor) Date() (time.Time, error) {
	return time.ParseInLocation(StartDateLayout, d.StartDate, time.Local)
}

// IsValidStartDate reports whether key is a well-formed YYYYMMDD date
func IsValidStartDate(key string) bool {
	if len(key) != len(StartDateLayout) {
		return false
	}
	_, err := time.Parse(StartDateLayout, key)
	return err == nil
}

// ScheduleConfig selects between interval based and fixed daily time scheduling
type ScheduleConfig struct {
	UseScheduledTime bool
	IntervalHours    float64
	Hour             int
	Minute           int
}

// maxInterval is the longest interval a time.Duration can hold
const maxInterval = time.Duration(math.MaxInt64)

// Interval returns the configured interval as a duration. NaN and non-positive
// hours give zero; values beyond the Duration range saturate.
func (c ScheduleConfig) Interval() time.Duration {
	hours := c.IntervalHours
	if math.IsNaN(hours) || hours <= 0 {
		return 0
	}
	ns := hours * float64(time.Hour)
	if ns >= float64(maxInterval) {
		return maxInterval
	}
	return time.Duration(ns)
}
