package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexTime_UnmarshalEpochSeconds(t *testing.T) {
	var f FlexTime
	require.NoError(t, json.Unmarshal([]byte(`1767349800`), &f))
	assert.Equal(t, time.Unix(1767349800, 0).UTC(), f.Time())
}

func TestFlexTime_UnmarshalSecondsObject(t *testing.T) {
	var f FlexTime
	require.NoError(t, json.Unmarshal([]byte(`{"seconds": 1767349800, "nanoseconds": 0}`), &f))
	assert.Equal(t, time.Unix(1767349800, 0).UTC(), f.Time())
}

func TestFlexTime_UnmarshalISOString(t *testing.T) {
	var f FlexTime
	require.NoError(t, json.Unmarshal([]byte(`"2026-03-02T09:30:00Z"`), &f))
	assert.Equal(t, time.Date(2026, time.March, 2, 9, 30, 0, 0, time.UTC), f.Time())
}

func TestFlexTime_UnmarshalDatetimeLocal(t *testing.T) {
	var f FlexTime
	require.NoError(t, json.Unmarshal([]byte(`"2026-03-02T09:30"`), &f))
	assert.Equal(t, 9, f.Time().Hour())
	assert.Equal(t, 30, f.Time().Minute())
}

func TestFlexTime_UnmarshalGarbage(t *testing.T) {
	var f FlexTime
	assert.Error(t, json.Unmarshal([]byte(`"next tuesday"`), &f))
}

func TestFlexTime_MarshalRoundTrip(t *testing.T) {
	orig := NewFlexTime(time.Date(2026, time.March, 2, 9, 30, 0, 0, time.UTC))
	out, err := json.Marshal(orig)
	require.NoError(t, err)

	var back FlexTime
	require.NoError(t, json.Unmarshal(out, &back))
	assert.True(t, back.Time().Equal(orig.Time()))
}

func TestAppointment_DurationOrDefault(t *testing.T) {
	withDuration := Appointment{Duration: 45}
	assert.Equal(t, 45*time.Minute, withDuration.DurationOrDefault())

	missing := Appointment{}
	assert.Equal(t, 30*time.Minute, missing.DurationOrDefault())
}

func TestAppointment_Interval(t *testing.T) {
	start := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	a := Appointment{StartTime: NewFlexTime(start), Duration: 60}

	gotStart, gotEnd := a.Interval()
	assert.Equal(t, start, gotStart)
	assert.Equal(t, start.Add(time.Hour), gotEnd)
}
