package extract

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Label identifies one of the four answer slots.
type Label int

const (
	A Label = iota
	B
	C
	D
)

// Labels lists every label in presentation order.
var Labels = [4]Label{A, B, C, D}

// String returns the lowercase letter of the label.
func (l Label) String() string {
	if l < A || l > D {
		return fmt.Sprintf("Label(%d)", int(l))
	}
	return string(rune('a' + l))
}

// ParseLabel accepts a single letter a-d in either case.
func ParseLabel(s string) (Label, bool) {
	if len(s) != 1 {
		return 0, false
	}
	c := s[0]
	if c >= 'A' && c <= 'D' {
		c += 'a' - 'A'
	}
	if c < 'a' || c > 'd' {
		return 0, false
	}
	return Label(c - 'a'), true
}

// Option is the content of one answer slot: either Present with its text or
// Absent. The zero value is Absent.
type Option struct {
	text    string
	present bool
}

// Present returns an option holding text. Empty text is still present.
func Present(text string) Option { return Option{text: text, present: true} }

// Absent returns the marker for an option the source did not provide.
func Absent() Option { return Option{} }

// Text returns the option text and whether the option is present.
func (o Option) Text() (string, bool) { return o.text, o.present }

// IsPresent reports whether the source provided this option.
func (o Option) IsPresent() bool { return o.present }

// Options always holds exactly four slots, one per label.
type Options [4]Option

// Get returns the option stored under l.
func (o Options) Get(l Label) Option { return o[l] }

// Set stores text under l.
func (o *Options) Set(l Label, text string) { o[l] = Present(text) }

// Count returns how many options are present.
func (o Options) Count() int {
	n := 0
	for _, opt := range o {
		if opt.present {
			n++
		}
	}
	return n
}

type optionsJSON struct {
	A *string `json:"a"`
	B *string `json:"b"`
	C *string `json:"c"`
	D *string `json:"d"`
}

func (o Option) ptr() *string {
	if !o.present {
		return nil
	}
	s := o.text
	return &s
}

// MarshalJSON writes all four labels, using null for absent options.
func (o Options) MarshalJSON() ([]byte, error) {
	return json.Marshal(optionsJSON{A: o[A].ptr(), B: o[B].ptr(), C: o[C].ptr(), D: o[D].ptr()})
}

// UnmarshalJSON reads an object keyed by label. Missing or null labels become
// Absent and unknown keys are ignored, so partial maps written by older tools
// still load with four slots.
func (o *Options) UnmarshalJSON(data []byte) error {
	var raw map[string]*string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*o = Options{}
	for k, v := range raw {
		l, ok := ParseLabel(strings.TrimSpace(k))
		if !ok || v == nil {
			continue
		}
		o.Set(l, *v)
	}
	return nil
}

// Record is one extracted question. Records are values; the extractor never
// changes a record after emitting it.
type Record struct {
	Question      string  `json:"question"`
	Options       Options `json:"options"`
	CorrectAnswer *string `json:"correct_answer"`
	Topic         *string `json:"topic"`
}

// TopicOrEmpty returns the topic tag or "" when unset.
func (r Record) TopicOrEmpty() string {
	if r.Topic == nil {
		return ""
	}
	return *r.Topic
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
