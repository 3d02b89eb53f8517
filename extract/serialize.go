package extract

import (
	"regexp"
	"strings"
)

// Serialize renders a record as the text stored and embedded for exam
// entries: the question on the first line followed by one "label) text" line
// per present option. Absent options are omitted.
func Serialize(r Record) string {
	var b strings.Builder
	b.WriteString(r.Question)
	b.WriteByte('\n')
	for _, l := range Labels {
		text, ok := r.Options.Get(l).Text()
		if !ok {
			continue
		}
		b.WriteString(l.String())
		b.WriteString(") ")
		b.WriteString(text)
		b.WriteByte('\n')
	}
	return b.String()
}

// UnknownAnswer marks a correct answer that could not be determined.
const UnknownAnswer = "?"

var answerPattern = regexp.MustCompile(`^\(?([a-dA-D])(?:[).:]|$)`)

// NormalizeAnswer converts a free-form answer such as "c) las variables",
// "C." or "c" into the stored "<label>)" form. Anything else yields
// UnknownAnswer.
func NormalizeAnswer(raw string) string {
	m := answerPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return UnknownAnswer
	}
	l, _ := ParseLabel(m[1])
	return l.String() + ")"
}

// Filter keeps the records whose topic contains topic, ignoring case. An empty
// topic keeps everything.
func Filter(records []Record, topic string) []Record {
	if topic == "" {
		return records
	}
	want := strings.ToLower(topic)
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.TopicOrEmpty()), want) {
			out = append(out, r)
		}
	}
	return out
}

// WithTopic returns copies of records tagged with topic ("" clears it).
func WithTopic(records []Record, topic string) []Record {
	t := optionalString(topic)
	out := make([]Record, len(records))
	for i, r := range records {
		r.Topic = t
		out[i] = r
	}
	return out
}
