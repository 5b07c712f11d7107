package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"google.golang.org/genai"

	"github.com/gh0stlung/Agri-Store/internal/errx"
	"github.com/gh0stlung/Agri-Store/internal/logx"
	"github.com/gh0stlung/Agri-Store/internal/models"
)

// chatPersona keeps the assistant short, friendly and on topic.
const chatPersona = "You are an expert agriculture assistant for 'New Nikhil Khad Bhandar' in India. " +
	"You speak simple Hinglish (Hindi + English). VERY IMPORTANT: Keep your answers VERY SHORT (max 30 words). " +
	"Only answer questions about farming, crops, fertilizers, or the store. Do not write long paragraphs. " +
	"Be friendly but direct."

// Message is one turn of a conversation. The client resends the full
// history on every call; nothing is kept server-side.
type Message struct {
	Role string `json:"role" binding:"required,oneof=user model"`
	Text string `json:"text" binding:"required"`
}

// Suggestion is the autofill payload for a product form.
type Suggestion struct {
	Category string `json:"category"`
	Price    int64  `json:"price"`
	Unit     string `json:"unit"`
}

// Assistant is a single-shot Gemini text-completion client. The
// unconfigured state (no API key) is constructible and reported via
// Configured, not a nil sentinel.
type Assistant struct {
	client *genai.Client
	model  string
}

// New connects to the Gemini API. An empty apiKey returns an unconfigured
// assistant rather than an error, so the rest of the app can start.
func New(ctx context.Context, apiKey, model string) (*Assistant, error) {
	if apiKey == "" {
		return Unconfigured(), nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Assistant{client: client, model: model}, nil
}

// Unconfigured returns an assistant with no backing client.
func Unconfigured() *Assistant {
	return &Assistant{}
}

// Configured reports whether an API key was provided.
func (a *Assistant) Configured() bool {
	return a.client != nil
}

// Chat answers one customer message given the resent history.
func (a *Assistant) Chat(ctx context.Context, history []Message, input string) (string, error) {
	if !a.Configured() {
		return "", errx.Unconfigured("AI assistant")
	}

	contents := make([]*genai.Content, 0, len(history)+2)
	contents = append(contents, genai.NewContentFromText(chatPersona, genai.RoleUser))
	for _, m := range history {
		role := genai.Role(genai.RoleUser)
		if m.Role == "model" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Text, role))
	}
	contents = append(contents, genai.NewContentFromText(input, genai.RoleUser))

	resp, err := a.client.Models.GenerateContent(ctx, a.model, contents, nil)
	if err != nil {
		logx.Error().Err(err).Msg("chat completion failed")
		return "", errx.New(err, http.StatusBadGateway, "assistant unavailable")
	}

	reply := strings.TrimSpace(resp.Text())
	if reply == "" {
		reply = "Sorry, samajh nahi aaya. Phir se bolo?"
	}
	return reply, nil
}

// AutofillProduct suggests category, price and unit for a product name.
func (a *Assistant) AutofillProduct(ctx context.Context, name string) (*Suggestion, error) {
	if !a.Configured() {
		return nil, errx.Unconfigured("AI assistant")
	}

	prompt := fmt.Sprintf(`Given the agricultural product name "%s", suggest a JSON with:
category (one of: %s),
price (estimated numeric value in INR, default 500 if unknown),
unit (one of: %s)

Example output: {"category": "Fertilizer", "price": 1200, "unit": "bag"}
Only return JSON.`, name, strings.Join(models.Categories, ", "), strings.Join(models.Units, ", "))

	resp, err := a.client.Models.GenerateContent(ctx, a.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}, nil)
	if err != nil {
		logx.Error().Err(err).Str("product", name).Msg("autofill completion failed")
		return nil, errx.New(err, http.StatusBadGateway, "assistant unavailable")
	}

	return ParseSuggestion(resp.Text())
}

var jsonBlock = regexp.MustCompile(`\{[\s\S]*\}`)

// ParseSuggestion extracts the first JSON object from a model reply, which
// may be wrapped in prose or code fences.
func ParseSuggestion(text string) (*Suggestion, error) {
	match := jsonBlock.FindString(text)
	if match == "" {
		return nil, errx.New(fmt.Errorf("no JSON in reply %q", text), http.StatusBadGateway, "assistant reply unusable")
	}

	var s Suggestion
	if err := json.Unmarshal([]byte(match), &s); err != nil {
		return nil, errx.New(err, http.StatusBadGateway, "assistant reply unusable")
	}
	return &s, nil
}
