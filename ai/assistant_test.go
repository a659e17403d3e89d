package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scriptedAssistant() *Assistant {
	return &Assistant{} // no model configured
}

func TestScriptedDialogueReachesCompletion(t *testing.T) {
	a := scriptedAssistant()
	ctx := context.Background()

	transcript := []Message{
		{Role: "assistant", Content: Greeting},
		{Role: "user", Content: "Everests Painting & Sons"},
	}

	reply := a.NextReply(ctx, transcript)
	assert.Contains(t, reply, "What services do you offer")
	_, done := ExtractCompletion(reply)
	assert.False(t, done)

	transcript = append(transcript,
		Message{Role: "assistant", Content: reply},
		Message{Role: "user", Content: "Interior painting, about 60 minutes, weekdays 9 to 5"},
	)

	reply = a.NextReply(ctx, transcript)
	data, done := ExtractCompletion(reply)
	require.True(t, done)
	assert.Equal(t, "Everests Painting & Sons", data.BusinessName)
	require.NotEmpty(t, data.Services)
	assert.Equal(t, 60, data.Services[0].Duration)
	assert.Len(t, data.Availability, 5)
	assert.Equal(t, "09:00", data.Availability[0].StartTime)
}

func TestExtractCompletion_IgnoresOrdinaryReplies(t *testing.T) {
	_, done := ExtractCompletion("Got it. What are your working hours?")
	assert.False(t, done)
}

func TestExtractCompletion_ParsesEmbeddedPayload(t *testing.T) {
	reply := `All set! Here is your profile.

	{ "action": "complete_onboarding", "data": {
		"businessName": "Studio North",
		"services": [{"name": "Cut", "duration": 45}],
		"availability": [{"dayOfWeek": 2, "startTime": "10:00", "endTime": "18:00"}]
	} }`

	data, done := ExtractCompletion(reply)
	require.True(t, done)
	assert.Equal(t, "Studio North", data.BusinessName)
	assert.Equal(t, "Cut", data.Services[0].Name)
	assert.Equal(t, 2, data.Availability[0].DayOfWeek)
	assert.Equal(t, "18:00", data.Availability[0].EndTime)
}

func TestExtractCompletion_AppliesDefaults(t *testing.T) {
	reply := `{ "action": "complete_onboarding", "data": {} }`

	data, done := ExtractCompletion(reply)
	require.True(t, done)
	assert.Equal(t, "My Business", data.BusinessName)
	require.Len(t, data.Services, 1)
	assert.Equal(t, 30, data.Services[0].Duration)
	require.Len(t, data.Availability, 1)
	assert.Equal(t, 1, data.Availability[0].DayOfWeek)
}

func TestExtractCompletion_MalformedPayloadIsNotDone(t *testing.T) {
	_, done := ExtractCompletion(`{ "action": "complete_onboarding", "data": {`)
	assert.False(t, done)
}
