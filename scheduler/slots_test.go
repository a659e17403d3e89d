package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zedule/zedule-server/models"
)

// Monday 2 March 2026.
var day = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

func nineToFive() *models.WeeklyAvailability {
	return &models.WeeklyAvailability{
		DayOfWeek: models.Monday,
		StartTime: "09:00",
		EndTime:   "17:00",
		Active:    true,
	}
}

func thirtyMinService() *models.Service {
	return &models.Service{Name: "Consultation", Duration: 30}
}

func at(hour, min int) time.Time {
	return time.Date(2026, time.March, 2, hour, min, 0, 0, time.UTC)
}

func appt(start time.Time, duration int, status models.AppointmentStatus) models.Appointment {
	return models.Appointment{
		StartTime: models.NewFlexTime(start),
		Duration:  duration,
		Status:    status,
	}
}

func TestParseClock(t *testing.T) {
	got, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9, got.Hour())
	assert.Equal(t, 30, got.Minute())

	_, err = ParseClock("9am")
	assert.Error(t, err)
}

func TestGenerateSlots_FullOpenDay(t *testing.T) {
	slots, err := GenerateSlots(day, nineToFive(), thirtyMinService(), 0, nil, day)
	require.NoError(t, err)

	require.Len(t, slots, 16)
	assert.Equal(t, at(9, 0), slots[0])
	assert.Equal(t, at(16, 30), slots[len(slots)-1])
}

func TestGenerateSlots_BookedSlotIsSkipped(t *testing.T) {
	appointments := []models.Appointment{
		appt(at(10, 0), 30, models.StatusBooked),
	}

	slots, err := GenerateSlots(day, nineToFive(), thirtyMinService(), 0, appointments, day)
	require.NoError(t, err)

	assert.Len(t, slots, 15)
	assert.NotContains(t, slots, at(10, 0))
	assert.Contains(t, slots, at(9, 30))
	assert.Contains(t, slots, at(10, 30))
}

func TestGenerateSlots_BufferSpacesTheGrid(t *testing.T) {
	slots, err := GenerateSlots(day, nineToFive(), thirtyMinService(), 15, nil, day)
	require.NoError(t, err)

	// 45-minute cadence: 09:00, 09:45, 10:30, ...
	require.Len(t, slots, 11)
	assert.Equal(t, at(9, 0), slots[0])
	assert.Equal(t, at(9, 45), slots[1])
	assert.Equal(t, at(10, 30), slots[2])
}

func TestGenerateSlots_InactiveDayIsEmpty(t *testing.T) {
	avail := nineToFive()
	avail.Active = false

	appointments := []models.Appointment{
		appt(at(10, 0), 30, models.StatusBooked),
	}

	slots, err := GenerateSlots(day, avail, thirtyMinService(), 0, appointments, day)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_MissingAvailabilityIsEmptyNotError(t *testing.T) {
	slots, err := GenerateSlots(day, nil, thirtyMinService(), 0, nil, day)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_NoServiceSelected(t *testing.T) {
	_, err := GenerateSlots(day, nineToFive(), nil, 0, nil, day)
	assert.ErrorIs(t, err, ErrNoServiceSelected)
}

func TestGenerateSlots_PastAndCurrentSlotsExcluded(t *testing.T) {
	now := at(9, 15)
	slots, err := GenerateSlots(day, nineToFive(), thirtyMinService(), 0, nil, now)
	require.NoError(t, err)

	require.NotEmpty(t, slots)
	assert.Equal(t, at(9, 30), slots[0])

	// A slot starting exactly at now is also excluded.
	slots, err = GenerateSlots(day, nineToFive(), thirtyMinService(), 0, nil, at(9, 30))
	require.NoError(t, err)
	assert.Equal(t, at(10, 0), slots[0])
}

func TestGenerateSlots_HalfOpenIntervalsDoNotTouchConflict(t *testing.T) {
	appointments := []models.Appointment{
		appt(at(10, 0), 30, models.StatusBooked),
	}

	slots, err := GenerateSlots(day, nineToFive(), thirtyMinService(), 0, appointments, day)
	require.NoError(t, err)

	// 09:30 ends exactly where the appointment starts, 10:30 starts exactly
	// where it ends; neither counts as an overlap.
	assert.Contains(t, slots, at(9, 30))
	assert.Contains(t, slots, at(10, 30))
}

func TestGenerateSlots_CancelledAppointmentsDoNotOccupy(t *testing.T) {
	appointments := []models.Appointment{
		appt(at(10, 0), 30, models.StatusCancelled),
	}

	slots, err := GenerateSlots(day, nineToFive(), thirtyMinService(), 0, appointments, day)
	require.NoError(t, err)
	assert.Contains(t, slots, at(10, 0))
}

func TestGenerateSlots_AppointmentWithoutDurationBlocksThirtyMinutes(t *testing.T) {
	appointments := []models.Appointment{
		appt(at(10, 0), 0, models.StatusBooked),
	}

	slots, err := GenerateSlots(day, nineToFive(), thirtyMinService(), 0, appointments, day)
	require.NoError(t, err)
	assert.NotContains(t, slots, at(10, 0))
	assert.Contains(t, slots, at(10, 30))
}

func TestGenerateSlots_AnyOverlapDisqualifies(t *testing.T) {
	// A long appointment covering 09:45-12:00 knocks out every candidate it
	// touches, including partial overlaps.
	appointments := []models.Appointment{
		appt(at(9, 45), 135, models.StatusBooked),
	}

	slots, err := GenerateSlots(day, nineToFive(), thirtyMinService(), 0, appointments, day)
	require.NoError(t, err)

	assert.NotContains(t, slots, at(9, 30))
	assert.NotContains(t, slots, at(10, 0))
	assert.NotContains(t, slots, at(11, 30))
	assert.Contains(t, slots, at(9, 0))
	assert.Contains(t, slots, at(12, 0))
}

func TestGenerateSlots_LastSlotMaySpillPastWindowEnd(t *testing.T) {
	avail := &models.WeeklyAvailability{
		DayOfWeek: models.Monday,
		StartTime: "09:00",
		EndTime:   "10:45",
		Active:    true,
	}

	slots, err := GenerateSlots(day, avail, thirtyMinService(), 0, nil, day)
	require.NoError(t, err)

	// 10:30 starts before the window closes, so it is offered even though it
	// runs until 11:00.
	require.Len(t, slots, 4)
	assert.Equal(t, at(10, 30), slots[len(slots)-1])
}

func TestGenerateSlots_BufferMonotonicity(t *testing.T) {
	var prev int
	for i, buffer := range []int{0, 5, 15, 30, 60} {
		slots, err := GenerateSlots(day, nineToFive(), thirtyMinService(), buffer, nil, day)
		require.NoError(t, err)
		if i > 0 {
			assert.LessOrEqual(t, len(slots), prev, "buffer %d produced more slots than a smaller buffer", buffer)
		}
		prev = len(slots)
	}
}

func TestGenerateSlots_Deterministic(t *testing.T) {
	appointments := []models.Appointment{
		appt(at(11, 0), 60, models.StatusBooked),
	}

	first, err := GenerateSlots(day, nineToFive(), thirtyMinService(), 10, appointments, at(9, 40))
	require.NoError(t, err)
	second, err := GenerateSlots(day, nineToFive(), thirtyMinService(), 10, appointments, at(9, 40))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateSlots_MalformedWindowIsAnError(t *testing.T) {
	avail := nineToFive()
	avail.StartTime = "nine"

	_, err := GenerateSlots(day, avail, thirtyMinService(), 0, nil, day)
	assert.Error(t, err)
}
