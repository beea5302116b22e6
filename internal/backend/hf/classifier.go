package hf

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const classificationMaxLength = 64

// mnliLabelIDs are the label names NLI classifiers such as
// typeform/distilbert-base-uncased-mnli return, in their config id order.
var mnliLabelIDs = map[string]int{
	"entailment":    0,
	"neutral":       1,
	"contradiction": 2,
}

// Classifier calls a text-classification model and returns the id of the
// highest scoring label.
type Classifier struct {
	c     *Client
	model string
	// labelIDs maps label names the server returns to ids.
	labelIDs map[string]int
}

// NewClassifier constructs a Classifier. Labels of the form LABEL_<n> always
// resolve to n. Other names resolve through labelIDs; when labelIDs is empty
// the NLI names entailment, neutral and contradiction map to 0, 1 and 2.
func NewClassifier(c *Client, model string, labelIDs map[string]int) *Classifier {
	if len(labelIDs) == 0 {
		labelIDs = mnliLabelIDs
	}
	ids := make(map[string]int, len(labelIDs))
	for k, v := range labelIDs {
		ids[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return &Classifier{c: c, model: strings.TrimSpace(model), labelIDs: ids}
}

func (k *Classifier) Name() string  { return "hf" }
func (k *Classifier) Model() string { return k.model }

func (k *Classifier) Ping(ctx context.Context) error { return k.c.Ping(ctx) }

// Fingerprint identifies the name to id mapping so cached labels are not
// reused after it changes.
func (k *Classifier) Fingerprint() string {
	names := make([]string, 0, len(k.labelIDs))
	for n := range k.labelIDs {
		names = append(names, n)
	}
	sort.Strings(names)
	var b strings.Builder
	for _, n := range names {
		fmt.Fprintf(&b, "%s=%d;", n, k.labelIDs[n])
	}
	return b.String()
}

type classificationParams struct {
	Truncation bool `json:"truncation"`
	MaxLength  int  `json:"max_length"`
}

type classificationRequest struct {
	Inputs     string               `json:"inputs"`
	Parameters classificationParams `json:"parameters"`
	Options    generationOptions    `json:"options"`
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classify returns the id of the best label, or -1 when the label name is
// unknown.
func (k *Classifier) Classify(ctx context.Context, input string) (int, error) {
	req := classificationRequest{
		Inputs:     input,
		Parameters: classificationParams{Truncation: true, MaxLength: classificationMaxLength},
		Options:    generationOptions{WaitForModel: true},
	}
	var raw json.RawMessage
	if err := k.c.post(ctx, k.model, req, &raw); err != nil {
		return 0, err
	}
	scores, err := decodeScores(raw)
	if err != nil {
		return 0, err
	}
	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}
	return k.labelID(best.Label), nil
}

// decodeScores accepts both [[{label,score}...]] (batched) and
// [{label,score}...] answers.
func decodeScores(raw json.RawMessage) ([]labelScore, error) {
	var nested [][]labelScore
	if err := json.Unmarshal(raw, &nested); err == nil && len(nested) > 0 && len(nested[0]) > 0 {
		return nested[0], nil
	}
	var flat []labelScore
	if err := json.Unmarshal(raw, &flat); err == nil && len(flat) > 0 {
		return flat, nil
	}
	return nil, errors.New("classification response has no label scores")
}

func (k *Classifier) labelID(label string) int {
	l := strings.ToLower(strings.TrimSpace(label))
	if id, ok := k.labelIDs[l]; ok {
		return id
	}
	if rest, ok := strings.CutPrefix(l, "label_"); ok {
		if n, err := strconv.Atoi(rest); err == nil {
			return n
		}
	}
	return -1
}
