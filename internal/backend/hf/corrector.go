package hf

import (
	"context"
	"errors"
	"strings"
)

// Generation parameters used for grammar correction.
const (
	correctionPrefix    = "grammar: "
	correctionMaxLength = 128
	correctionNumBeams  = 4
)

// Corrector calls a text2text-generation model such as
// vennify/t5-base-grammar-correction.
type Corrector struct {
	c     *Client
	model string
}

func NewCorrector(c *Client, model string) *Corrector {
	return &Corrector{c: c, model: strings.TrimSpace(model)}
}

func (k *Corrector) Name() string  { return "hf" }
func (k *Corrector) Model() string { return k.model }

func (k *Corrector) Ping(ctx context.Context) error { return k.c.Ping(ctx) }

type generationParams struct {
	MaxLength     int  `json:"max_length"`
	NumBeams      int  `json:"num_beams"`
	EarlyStopping bool `json:"early_stopping"`
}

type generationOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type generationRequest struct {
	Inputs     string            `json:"inputs"`
	Parameters generationParams  `json:"parameters"`
	Options    generationOptions `json:"options"`
}

type generationOutput struct {
	GeneratedText string `json:"generated_text"`
}

// Correct returns the model's rewrite of text.
func (k *Corrector) Correct(ctx context.Context, text string) (string, error) {
	req := generationRequest{
		Inputs: correctionPrefix + text,
		Parameters: generationParams{
			MaxLength:     correctionMaxLength,
			NumBeams:      correctionNumBeams,
			EarlyStopping: true,
		},
		Options: generationOptions{WaitForModel: true},
	}
	var out []generationOutput
	if err := k.c.post(ctx, k.model, req, &out); err != nil {
		return "", err
	}
	if len(out) == 0 {
		return "", errors.New("empty generation response")
	}
	return strings.TrimSpace(out[0].GeneratedText), nil
}
