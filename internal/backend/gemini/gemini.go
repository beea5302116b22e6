// Package gemini serves both model roles by prompting a Gemini model.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Engine owns the Gemini client shared by the corrector and classifier.
type Engine struct {
	model  string
	client *genai.Client
}

// New dials the Gemini API. The returned Engine must be closed.
func New(ctx context.Context, apiKey, model string) (*Engine, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini: api key is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	return &Engine{model: strings.TrimSpace(model), client: cl}, nil
}

func (e *Engine) Close() error { return e.client.Close() }

func (e *Engine) generativeModel(system string) *genai.GenerativeModel {
	m := e.client.GenerativeModel(e.model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		ResponseMIMEType: "application/json",
	}
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	return m
}

// generate retries transient failures a few times.
func (e *Engine) generate(ctx context.Context, m *genai.GenerativeModel, user string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		resp, err := m.GenerateContent(ctx, genai.Text(user))
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			select {
			case <-time.After(time.Duration(attempt) * 300 * time.Millisecond):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			continue
		}
		txt := firstText(resp)
		if txt == "" {
			return "", errors.New("gemini: empty response")
		}
		return stripCodeFences(txt), nil
	}
	return "", lastErr
}

const correctionSystem = `You are a grammar correction model for student writing.
Rewrite the user's text with spelling, punctuation and grammar mistakes fixed.
Keep the meaning, wording and sentence order whenever they are already correct.
Answer with JSON only: {"corrected_text": "<the corrected text>"}`

// Corrector implements grammar correction through Gemini.
type Corrector struct{ e *Engine }

func NewCorrector(e *Engine) *Corrector { return &Corrector{e: e} }

func (c *Corrector) Name() string  { return "gemini" }
func (c *Corrector) Model() string { return c.e.model }

func (c *Corrector) Correct(ctx context.Context, text string) (string, error) {
	txt, err := c.e.generate(ctx, c.e.generativeModel(correctionSystem), text)
	if err != nil {
		return "", err
	}
	return parseCorrection(txt)
}

// Classifier labels span pairs through Gemini.
type Classifier struct {
	e      *Engine
	system string
}

// NewClassifier builds the classification prompt from labels in id order.
func NewClassifier(e *Engine, labels []string) *Classifier {
	var b strings.Builder
	b.WriteString("You classify a single grammar correction made to a student's text.\n")
	b.WriteString("The input has the form \"Original: <span> | Corrected: <span>\".\n")
	b.WriteString("Pick the one category that best describes the correction:\n")
	for i, l := range labels {
		fmt.Fprintf(&b, "%d: %s\n", i, l)
	}
	b.WriteString(`Answer with JSON only: {"label_id": <number>}`)
	return &Classifier{e: e, system: b.String()}
}

func (c *Classifier) Name() string  { return "gemini" }
func (c *Classifier) Model() string { return c.e.model }

func (c *Classifier) Classify(ctx context.Context, input string) (int, error) {
	txt, err := c.e.generate(ctx, c.e.generativeModel(c.system), input)
	if err != nil {
		return 0, err
	}
	return parseLabelID(txt)
}

func parseCorrection(txt string) (string, error) {
	var out struct {
		CorrectedText *string `json:"corrected_text"`
	}
	if err := json.Unmarshal([]byte(txt), &out); err != nil {
		return "", fmt.Errorf("gemini: bad correction JSON: %w", err)
	}
	if out.CorrectedText == nil {
		return "", errors.New("gemini: corrected_text missing")
	}
	return strings.TrimSpace(*out.CorrectedText), nil
}

func parseLabelID(txt string) (int, error) {
	var out struct {
		LabelID json.RawMessage `json:"label_id"`
	}
	if err := json.Unmarshal([]byte(txt), &out); err != nil {
		return 0, fmt.Errorf("gemini: bad label JSON: %w", err)
	}
	if len(out.LabelID) == 0 {
		return 0, errors.New("gemini: label_id missing")
	}
	// Models sometimes quote the number.
	s := strings.Trim(string(out.LabelID), `"`)
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return -1, nil
	}
	return n, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		var b strings.Builder
		for _, p := range cand.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
		if s := strings.TrimSpace(b.String()); s != "" {
			return s
		}
	}
	return ""
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}

func ptrFloat32(v float32) *float32 { return &v }
