// Package ai holds the onboarding chat assistant. A Gemini-backed client
// drives the conversation when an API key is configured; otherwise a scripted
// dialogue with the same trigger and payload shape takes over, so the
// onboarding flow works in every environment.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
	"time"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Message is one turn of the onboarding conversation.
type Message struct {
	Role    string `json:"role"` // "assistant" or "user"
	Content string `json:"content"`
}

// OnboardingData is the structured payload the assistant emits once it has
// collected everything it needs.
type OnboardingData struct {
	BusinessName string              `json:"businessName"`
	Services     []OnboardingService `json:"services"`
	Availability []OnboardingDay     `json:"availability"`
}

type OnboardingService struct {
	Name     string `json:"name"`
	Duration int    `json:"duration"`
}

type OnboardingDay struct {
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Greeting opens every onboarding conversation.
const Greeting = "Hi there! I'm your Zedule assistant. Let's get your scheduling page ready. What should we call your business or profile?"

const systemPrompt = `You are Zedule's AI Onboarding Assistant. Your goal is to help users set up their scheduling profile.
IMPORTANT: Focus ONLY on the information provided in the current conversation. Do not assume any details from previous sessions or common business templates unless the user confirms them.

You need to collect:
1. Name of the business/user.
2. Services offered (e.g., "Consultation", "Haircut").
3. Duration for each service (in minutes).
4. Availability (days and hours).

Be friendly, professional, and concise. Once you have enough info, summarize it.
Output a special JSON block at the end of the conversation when all data is collected:
{ "action": "complete_onboarding", "data": { ... } }`

const retryMessage = "I'm having trouble connecting to my AI brain right now. Can we try again in a moment?"

// requestTimeout bounds the completion call so a slow backend cannot hang the
// onboarding chat.
const requestTimeout = 5 * time.Second

type Assistant struct {
	model *genai.GenerativeModel
}

// NewAssistant builds the assistant. Without GEMINI_API_KEY it runs in
// scripted mode.
func NewAssistant() *Assistant {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Println("GEMINI_API_KEY not set, onboarding assistant running in scripted mode")
		return &Assistant{}
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		log.Printf("Failed to create Gemini client, falling back to scripted mode: %v", err)
		return &Assistant{}
	}
	return &Assistant{model: client.GenerativeModel("models/gemini-1.5-pro")}
}

// NextReply returns the assistant's next message for the given transcript.
func (a *Assistant) NextReply(ctx context.Context, messages []Message) string {
	if a.model == nil {
		return scriptedReply(messages)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := a.model.GenerateContent(ctx, genai.Text(renderPrompt(messages)))
	if err != nil {
		log.Printf("Assistant completion error: %v", err)
		return retryMessage
	}
	if len(resp.Candidates) == 0 {
		return retryMessage
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String()
}

func renderPrompt(messages []Message) string {
	var sb strings.Builder
	sb.WriteString(systemPrompt)
	sb.WriteString("\n\nConversation so far:\n")
	for _, m := range messages {
		role := "Assistant"
		if m.Role == "user" {
			role = "User"
		}
		sb.WriteString(role)
		sb.WriteString(": ")
		sb.WriteString(m.Content)
		sb.WriteString("\n")
	}
	sb.WriteString("Assistant:")
	return sb.String()
}

// scriptedReply walks a fixed three-step dialogue: acknowledge the business
// name, ask about services and hours, then emit the completion payload.
func scriptedReply(messages []Message) string {
	if len(messages) == 0 {
		return Greeting
	}
	last := messages[len(messages)-1].Content

	if len(messages) <= 2 {
		return fmt.Sprintf("Oh, I see! %q sounds like a great name. What services do you offer? (e.g. Consulting, Design)", last)
	}

	businessName := "My Business"
	if len(messages) > 1 {
		businessName = messages[1].Content
	}

	if len(messages) >= 4 {
		payload := map[string]interface{}{
			"action": "complete_onboarding",
			"data": OnboardingData{
				BusinessName: businessName,
				Services: []OnboardingService{
					{Name: "Standard Session", Duration: 60},
				},
				Availability: []OnboardingDay{
					{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"},
					{DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00"},
					{DayOfWeek: 3, StartTime: "09:00", EndTime: "17:00"},
					{DayOfWeek: 4, StartTime: "09:00", EndTime: "17:00"},
					{DayOfWeek: 5, StartTime: "09:00", EndTime: "17:00"},
				},
			},
		}
		encoded, _ := json.Marshal(payload)
		return fmt.Sprintf("Awesome! I've got all the info for %s. Let's get you started!\n\n%s", businessName, encoded)
	}

	return "Got it. And how long does a standard session usually take? Also, what are your working hours?"
}

var completionPattern = regexp.MustCompile(`(?s)\{.*"action":\s*"complete_onboarding".*\}`)

// ExtractCompletion pulls the terminal onboarding payload out of an assistant
// reply, if present. Missing fields get the same defaults the product always
// shipped with.
func ExtractCompletion(reply string) (*OnboardingData, bool) {
	match := completionPattern.FindString(reply)
	if match == "" {
		return nil, false
	}

	var envelope struct {
		Action string         `json:"action"`
		Data   OnboardingData `json:"data"`
	}
	if err := json.Unmarshal([]byte(match), &envelope); err != nil {
		log.Printf("Failed to parse onboarding completion payload: %v", err)
		return nil, false
	}

	data := envelope.Data
	if data.BusinessName == "" {
		data.BusinessName = "My Business"
	}
	if len(data.Services) == 0 {
		data.Services = []OnboardingService{{Name: "Consultation", Duration: 30}}
	}
	if len(data.Availability) == 0 {
		data.Availability = []OnboardingDay{{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"}}
	}
	return &data, true
}
