// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package dates provides calendar helpers over time.Time values. Every
// function returns a new value and leaves its argument untouched.
package dates

import (
	"fmt"
	"time"
)

// DisplayDate returns the day of the month, zero padded to two digits.
func DisplayDate(t time.Time) string {
	return fmt.Sprintf("%02d", t.Day())
}

// DisplayMonth returns the month number (January is 01), zero padded to two
// digits.
func DisplayMonth(t time.Time) string {
	return fmt.Sprintf("%02d", int(t.Month()))
}

// Display renders t as MM/DD/YYYY hh:mm:ss in t's own location.
func Display(t time.Time) string {
	return fmt.Sprintf("%s/%s/%04d %s", DisplayMonth(t), DisplayDate(t), t.Year(), t.Format("15:04:05"))
}

func AddMilliseconds(t time.Time, count int) time.Time {
	return t.Add(time.Duration(count) * time.Millisecond)
}

func AddSeconds(t time.Time, count int) time.Time {
	return t.Add(time.Duration(count) * time.Second)
}

func AddMinutes(t time.Time, count int) time.Time {
	return t.Add(time.Duration(count) * time.Minute)
}

func AddHours(t time.Time, count int) time.Time {
	return t.Add(time.Duration(count) * time.Hour)
}

// AddDate adds count calendar days. Overflow normalizes the same way
// time.Time.AddDate does.
func AddDate(t time.Time, count int) time.Time {
	return t.AddDate(0, 0, count)
}

// AddMonth adds count calendar months; Jan 31 plus one month lands in March.
func AddMonth(t time.Time, count int) time.Time {
	return t.AddDate(0, count, 0)
}

func AddYear(t time.Time, count int) time.Time {
	return t.AddDate(count, 0, 0)
}
