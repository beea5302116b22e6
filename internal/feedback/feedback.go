// Package feedback turns a student's error history into advice.
package feedback

import (
	"fmt"

	"grammarbot/internal/analyzer"
	"grammarbot/pkg/types"
)

// NoErrors is returned when a student has no logged errors.
const NoErrors = "No errors recorded. Great job!"

var suggestions = map[string]string{
	analyzer.LabelSpelling:    "- Pay attention to commonly confused words.\n- Use a spell-check tool.\n",
	analyzer.LabelPunctuation: "- Revisit punctuation rules (commas, periods, etc.).\n",
	analyzer.LabelVerbTense:   "- Keep your sentences in the same tense.\n- Check subject-verb agreement.\n",
	analyzer.LabelDeterminer:  "- Practice using 'a', 'an', and 'the' correctly.\n",
}

const generalSuggestion = "- Review general grammar and practice with targeted exercises.\n"

// MostFrequent returns the error type with the highest count. Ties go to the
// type that appears first in logs. ok is false when logs is empty.
func MostFrequent(logs []types.ErrorLog) (errorType string, count int, ok bool) {
	counts := make(map[string]int, 8)
	var order []string
	for _, l := range logs {
		if _, seen := counts[l.ErrorType]; !seen {
			order = append(order, l.ErrorType)
		}
		counts[l.ErrorType]++
	}
	for _, t := range order {
		if counts[t] > count {
			errorType, count = t, counts[t]
		}
	}
	return errorType, count, len(order) > 0
}

// Suggestions returns the advice lines for one error type.
func Suggestions(errorType string) string {
	if s, ok := suggestions[errorType]; ok {
		return s
	}
	return generalSuggestion
}

// Build returns the feedback message for logs ordered by id.
func Build(logs []types.ErrorLog) string {
	t, n, ok := MostFrequent(logs)
	if !ok {
		return NoErrors
	}
	return fmt.Sprintf("Your most frequent error type is '%s', occurring %d times.\nHere are some suggestions:\n%s", t, n, Suggestions(t))
}
