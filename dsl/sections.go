package dsl

import (
	"strconv"
	"strings"

	"github.com/everydev1618/quizgen"
	"github.com/everydev1618/quizgen/richtext"
)

// readCode collects the expanded lines up to :EndCode: as program source.
func (r *run) readCode() (string, error) {
	var sb strings.Builder
	for {
		line, ok := r.src.next()
		if !ok || strings.TrimSpace(line) == CodeEnd {
			break
		}
		expanded, err := r.env.Expand(line)
		if err != nil {
			return "", err
		}
		sb.WriteString(expanded)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// readChoices collects "<points>,<text>" lines up to :EndChoices:.
// Malformed lines are skipped with a warning.
func (r *run) readChoices() (*ChoiceSet, error) {
	set := &ChoiceSet{}
	for {
		line, ok := r.src.next()
		if !ok {
			break
		}
		line = strings.TrimSpace(line)
		if line == ChoicesEnd {
			break
		}
		if line == "" {
			continue
		}

		comma := strings.Index(line, ",")
		if comma <= 0 {
			r.warn(quizgen.WarnMalformedChoice, line)
			continue
		}
		points, err := strconv.Atoi(strings.TrimSpace(line[:comma]))
		if err != nil {
			r.warn(quizgen.WarnMalformedChoice, line)
			continue
		}
		text := strings.TrimLeft(line[comma+1:], ",")
		text, err = r.env.Expand(text)
		if err != nil {
			return nil, err
		}
		set.Add(strings.TrimSpace(text), points)
	}
	return set, nil
}

// readText collects the question body up to :EndText: and renders it. The
// first line that is not a "Type: " line is the numbered prompt.
func (r *run) readText() error {
	var (
		lines    []string
		prompted bool
	)
	for {
		line, ok := r.src.next()
		if !ok || strings.TrimSpace(line) == TextEnd {
			break
		}
		expanded, err := r.env.Expand(line)
		if err != nil {
			return err
		}
		lines = append(lines, expanded)

		if !prompted && !strings.Contains(expanded, "Type: ") {
			prompted = true
			r.doc.Text(r.q.Number + ". ")
			r.doc.Spans(richtext.SplitBold(expanded))
			r.doc.ParagraphBreak()
			continue
		}
		r.doc.Spans(richtext.SplitBold(expanded))
		r.doc.LineBreak()
	}
	r.doc.ParagraphBreak()
	r.q.Text = lines
	return nil
}
