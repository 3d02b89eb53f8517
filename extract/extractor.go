package extract

import "strings"

// machine is the per-page accumulator. active is set by a question start even
// when the marker carries no text ("12."), so the following spans can supply
// the question body.
type machine struct {
	topic    *string
	active   bool
	question string
	options  Options
	out      []Record
}

func (m *machine) feed(span string) {
	line := Classify(strings.TrimSpace(span))
	switch line.Kind {
	case QuestionStart:
		m.flush()
		m.active = true
		m.question = line.Text
	case OptionLine:
		// Options collected before the first question of a page carry into it.
		m.options.Set(line.Label, line.Text)
	case Continuation:
		if !m.active || line.Text == "" {
			return
		}
		if m.question == "" {
			m.question = line.Text
		} else {
			m.question += " " + line.Text
		}
	}
}

// flush emits the accumulated question, if any. Options are cleared only
// when a record is emitted; labels never seen stay Absent in that record.
func (m *machine) flush() {
	if q := strings.TrimSpace(m.question); m.active && q != "" {
		m.out = append(m.out, Record{
			Question: q,
			Options:  m.options,
			Topic:    m.topic,
		})
		m.options = Options{}
	}
	m.active = false
	m.question = ""
}

// endPage flushes and drops any options left over, so nothing crosses a page
// boundary.
func (m *machine) endPage() {
	m.flush()
	m.options = Options{}
}

// Extract runs the classifier over every page and returns the questions in
// document order. Pages are independent: a question still open at the end of
// a page is emitted there. topic is attached to every record; "" leaves it
// unset. The result is never nil.
func Extract(pages [][]string, topic string) []Record {
	m := &machine{topic: optionalString(topic), out: make([]Record, 0)}
	for _, page := range pages {
		for _, span := range page {
			m.feed(span)
		}
		m.endPage()
	}
	return m.out
}

// ExtractSpans is Extract for a single-page document.
func ExtractSpans(spans []string, topic string) []Record {
	return Extract([][]string{spans}, topic)
}
