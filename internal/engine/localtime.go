package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultOffsetMinutes is the fixed UTC offset applied when the caller does
// not supply one. It follows the JS getTimezoneOffset sign convention, so
// -120 means UTC+2.
const DefaultOffsetMinutes = -120

const secondsPerDay = 24 * 3600

// LocalTime pins an absolute instant to a local calendar day plus a
// second-of-day, computed once from the fixed offset. Everything downstream
// works on this value instead of re-shifting time.Time fields.
type LocalTime struct {
	Day     time.Time // UTC midnight of the local calendar day
	Seconds int       // seconds since local midnight
}

func NewLocalTime(at time.Time, offsetMinutes int) LocalTime {
	shifted := at.UTC().Add(-time.Duration(offsetMinutes) * time.Minute)
	return LocalTime{
		Day:     time.Date(shifted.Year(), shifted.Month(), shifted.Day(), 0, 0, 0, 0, time.UTC),
		Seconds: shifted.Hour()*3600 + shifted.Minute()*60 + shifted.Second(),
	}
}

func (lt LocalTime) Hour() int { return lt.Seconds / 3600 }

func (lt LocalTime) Clock() string { return formatClock(lt.Seconds) }

// DateOnly truncates an instant to UTC midnight, the canonical day key.
func DateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func dateKey(t time.Time) string { return t.UTC().Format("2006-01-02") }

// parseClockSeconds reads "HH:MM" or "HH:MM:SS". Anything unparseable
// normalizes to 00:00:00 rather than failing the run.
func parseClockSeconds(s string) int {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 {
		return 0
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 {
		return 0
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0
	}
	sec := 0
	if len(parts) > 2 {
		if v, err := strconv.Atoi(parts[2]); err == nil && v >= 0 && v <= 59 {
			sec = v
		}
	}
	return h*3600 + m*60 + sec
}

// formatClock renders a second-of-day as "HH:MM". Values past midnight wrap,
// so a reassigned 00:30 checkout still prints as 00:30.
func formatClock(seconds int) string {
	seconds %= secondsPerDay
	if seconds < 0 {
		seconds += secondsPerDay
	}
	return fmt.Sprintf("%02d:%02d", seconds/3600, (seconds%3600)/60)
}

// shiftStartHour reads the hour component of an employee's default shift
// start, falling back to 9.
func shiftStartHour(emp Employee) int {
	if emp.ShiftStart == "" {
		return 9
	}
	return parseClockSeconds(emp.ShiftStart) / 3600
}
