package analyzer

// Default error labels, in classifier id order.
const (
	LabelSpelling    = "Spelling Error"
	LabelPunctuation = "Punctuation Error"
	LabelVerbTense   = "Verb Tense Error"
	LabelDeterminer  = "Determiner Error"
	LabelOther       = "Other Grammar Error"
)

// DefaultLabels returns a fresh copy of the default label table.
func DefaultLabels() []string {
	return []string{LabelSpelling, LabelPunctuation, LabelVerbTense, LabelDeterminer, LabelOther}
}

// labelFor maps a classifier id to its label. Anything outside the table
// falls back to LabelOther.
func labelFor(labels []string, id int) string {
	if id >= 0 && id < len(labels) {
		return labels[id]
	}
	return LabelOther
}
