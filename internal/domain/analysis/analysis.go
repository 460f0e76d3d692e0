package analysis

import (
	"fmt"
	"regexp"
	"strings"
)

// QuestionCount is the fixed size of every KIQ set.
const QuestionCount = 15

// The two mandatory questions open every KIQ set verbatim, regardless of
// document content.
const (
	MandatoryQuestion1 = "What are they offering as compensation for the contribution of our efforts, networks and capital introduction sources?"
	MandatoryQuestion2 = "Does the company have any open litigation, or threats of litigation for any unresolved open matters as disputes with counter parts on agreements?"
)

// placeholderQuestion fills KIQ slots when generation produced fewer than
// thirteen usable content-derived questions.
const placeholderQuestion = "To be supplied during analyst review."

// Report top-level section headers.
const (
	SectionCompetitive = "LACK OF DURABLE COMPETITIVE ADVANTAGES"
	SectionRedFlags    = "INVESTOR RED FLAGS"
	SectionConclusion  = "CONCLUSION"
)

// Question is one KIQ entry.
type Question struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// QuestionSet holds exactly QuestionCount entries, the first two mandatory.
type QuestionSet struct {
	Questions []Question `json:"questions"`
}

// Render formats the set as the KIQ worksheet: each entry as
// "{index}. {text}" followed by an empty answer line.
func (qs QuestionSet) Render() string {
	var b strings.Builder
	for i, q := range qs.Questions {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "%d. %s\nA:", q.Index, q.Text)
	}
	return b.String()
}

// Result is the output of document analysis for one submission.
type Result struct {
	Report            string      `json:"report"`
	Questions         QuestionSet `json:"questions"`
	DegradedReport    bool        `json:"degraded_report,omitempty"`
	DegradedQuestions bool        `json:"degraded_questions,omitempty"`
}

var questionLine = regexp.MustCompile(`^\s*(\d+)[.)]\s+(\S.*)$`)

// ParseQuestions pulls question texts out of generated output. The model is
// asked for a numbered list with "A:" answer lines; anything that is not a
// numbered entry is dropped. Restated mandatory questions are dropped too so
// seeding never duplicates them.
func ParseQuestions(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		m := questionLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		text := strings.TrimSpace(m[2])
		if text == "" || text == MandatoryQuestion1 || text == MandatoryQuestion2 {
			continue
		}
		out = append(out, text)
	}
	return out
}

// BuildQuestionSet seeds the two mandatory questions and fills the remaining
// slots with content-derived questions, truncating past QuestionCount and
// padding with the analyst placeholder when short.
func BuildQuestionSet(derived []string) QuestionSet {
	texts := []string{MandatoryQuestion1, MandatoryQuestion2}
	for _, q := range derived {
		if len(texts) == QuestionCount {
			break
		}
		texts = append(texts, q)
	}
	for len(texts) < QuestionCount {
		texts = append(texts, placeholderQuestion)
	}

	qs := QuestionSet{Questions: make([]Question, 0, QuestionCount)}
	for i, t := range texts {
		qs.Questions = append(qs.Questions, Question{Index: i + 1, Text: t})
	}
	return qs
}

// FallbackQuestionSet is the KIQ set used when no content-derived questions
// are available: the two mandatory entries plus placeholders.
func FallbackQuestionSet() QuestionSet {
	return BuildQuestionSet(nil)
}

// FallbackReport renders the minimal manual-review report used when
// extraction or generation could not complete. The reason preserves the
// adapter failure kind for observability.
func FallbackReport(reason string) string {
	return fmt.Sprintf(`1. %s

Automated analysis could not be completed (%s). Manual review required.

2. %s

Automated analysis could not be completed (%s). Manual review required.

%s

This submission requires manual underwriting review before any conclusion can be drawn.`,
		SectionCompetitive, reason, SectionRedFlags, reason, SectionConclusion)
}

// HasReportSections reports whether text carries the three top-level report
// sections, in order.
func HasReportSections(text string) bool {
	i := strings.Index(text, SectionCompetitive)
	if i < 0 {
		return false
	}
	j := strings.Index(text[i:], SectionRedFlags)
	if j < 0 {
		return false
	}
	return strings.Contains(text[i+j:], SectionConclusion)
}
