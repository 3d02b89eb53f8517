package extract

import (
	"regexp"
	"strings"
)

// Kind is the classification of a single span.
type Kind int

const (
	// Continuation is any span that is neither a question start nor an option.
	Continuation Kind = iota
	// QuestionStart is a numbered line such as "3. What is TCP?".
	QuestionStart
	// OptionLine is a lettered answer such as "b) A cable". Only lowercase
	// labels count; "A) ..." is continuation text.
	OptionLine
)

func (k Kind) String() string {
	switch k {
	case QuestionStart:
		return "question"
	case OptionLine:
		return "option"
	default:
		return "continuation"
	}
}

// Line is the classified form of a span. Text is the captured content with
// the marker removed; Label is only meaningful for OptionLine.
type Line struct {
	Kind  Kind
	Text  string
	Label Label
}

var (
	questionStartPattern = regexp.MustCompile(`(?s)^\d+\.\s*(.*)$`)
	optionLinePattern    = regexp.MustCompile(`(?s)^\s*([a-d])\)\s*(.*)$`)
)

// Classify maps one span to its Line. Question starts take precedence over
// option lines.
func Classify(span string) Line {
	if m := questionStartPattern.FindStringSubmatch(span); m != nil {
		return Line{Kind: QuestionStart, Text: strings.TrimSpace(m[1])}
	}
	if m := optionLinePattern.FindStringSubmatch(span); m != nil {
		l, _ := ParseLabel(m[1])
		return Line{Kind: OptionLine, Label: l, Text: strings.TrimSpace(m[2])}
	}
	return Line{Kind: Continuation, Text: strings.TrimSpace(span)}
}
