// Package scheduler computes the bookable time slots offered on the public
// booking page. It is pure interval arithmetic over data the caller has
// already fetched; nothing in here touches the database or the wall clock.
package scheduler

import (
	"errors"
	"fmt"
	"time"

	"github.com/zedule/zedule-server/models"
)

// ErrNoServiceSelected is returned when slot generation is attempted without a
// service; slot length and grid step both come from the service duration.
var ErrNoServiceSelected = errors.New("no service selected")

const clockLayout = "15:04"

// ParseClock parses an "HH:MM" wall-clock string.
func ParseClock(s string) (time.Time, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	return t, nil
}

// atClock anchors an "HH:MM" string onto the calendar day of date, keeping
// date's location.
func atClock(date time.Time, clock string) (time.Time, error) {
	t, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

// GenerateSlots returns the ascending start instants a client may book on the
// given calendar day.
//
// avail is the day's recurring window (nil or inactive means the day is closed
// and yields no slots — that is not an error). Candidate slots start at the
// window start and step by service duration plus bufferMinutes, whether or not
// the previous candidate was offered. A candidate is offered when its
// half-open interval [start, start+duration) overlaps no non-cancelled
// appointment and it starts strictly after now.
//
// The walk continues while the cursor is before the window end, so the final
// offered slot may end past the window by up to one service duration. That
// matches the original booking page and is pinned by tests; tighten the loop
// condition if the policy ever changes.
func GenerateSlots(date time.Time, avail *models.WeeklyAvailability, service *models.Service, bufferMinutes int, appointments []models.Appointment, now time.Time) ([]time.Time, error) {
	if service == nil {
		return nil, ErrNoServiceSelected
	}
	if avail == nil || !avail.Active {
		return []time.Time{}, nil
	}

	windowStart, err := atClock(date, avail.StartTime)
	if err != nil {
		return nil, err
	}
	windowEnd, err := atClock(date, avail.EndTime)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(service.Duration) * time.Minute
	if duration <= 0 {
		duration = models.DefaultDuration * time.Minute
	}
	buffer := time.Duration(bufferMinutes) * time.Minute
	if buffer < 0 {
		buffer = 0
	}

	slots := []time.Time{}
	for cursor := windowStart; cursor.Before(windowEnd); cursor = cursor.Add(duration + buffer) {
		candidateEnd := cursor.Add(duration)
		if !occupied(cursor, candidateEnd, appointments) && cursor.After(now) {
			slots = append(slots, cursor)
		}
	}
	return slots, nil
}

// occupied reports whether [start, end) overlaps any appointment that still
// holds its interval. Half-open comparison: back-to-back intervals sharing an
// endpoint do not conflict.
func occupied(start, end time.Time, appointments []models.Appointment) bool {
	for i := range appointments {
		if appointments[i].Status == models.StatusCancelled {
			continue
		}
		apptStart, apptEnd := appointments[i].Interval()
		if start.Before(apptEnd) && end.After(apptStart) {
			return true
		}
	}
	return false
}
