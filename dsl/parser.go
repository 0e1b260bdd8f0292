package dsl

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Check validates a template without evaluating or executing anything. It
// reports every problem it finds, in line order.
func Check(input string) []*ValidationError {
	c := &checker{
		src:     newLineSource(input),
		defined: make(map[string]bool),
	}
	c.run()
	return c.errs
}

type checker struct {
	src     *lineSource
	defined map[string]bool
	errs    []*ValidationError

	inQuestion bool
	question   string
	questionAt int
	solved     bool
	hasCode    bool
	hasChoices bool
	qType      string
}

func (c *checker) add(line int, field, msg, hint string) {
	c.errs = append(c.errs, &ValidationError{Line: line, Field: field, Message: msg, Hint: hint})
}

func (c *checker) run() {
	for {
		line, ok := c.src.next()
		if !ok {
			break
		}
		lineNo := c.src.lineNo()
		evs := classify(line)
		if len(evs) == 0 {
			continue
		}

		for _, ev := range evs {
			switch ev.kind {
			case evQuestion:
				c.finishQuestion()
				c.inQuestion = true
				c.question = ev.arg
				c.questionAt = lineNo
				c.solved = false
				c.hasCode = false
				c.hasChoices = false
			case evQuestionType:
				c.qType = ev.arg
			case evDefine:
				c.checkDefinition(lineNo, line)
			case evCode:
				c.hasCode = true
				c.checkSection(lineNo, CodeStart, CodeEnd, nil)
			case evChoices:
				c.hasChoices = true
				c.checkSection(lineNo, ChoicesStart, ChoicesEnd, c.checkChoice)
			case evText:
				c.checkSection(lineNo, TextStart, TextEnd, nil)
			case evSolution:
				c.checkSolution(lineNo, line)
			}
		}
	}
	c.finishQuestion()
}

func (c *checker) finishQuestion() {
	if c.inQuestion && !c.solved {
		c.add(c.questionAt, "question "+c.question, "question has no Solution line", "")
	}
}

// checkRefs reports #NAME# references that are not defined yet.
func (c *checker) checkRefs(lineNo int, line string) {
	names, isolated := references(line)
	for _, name := range names {
		if c.defined[name] {
			continue
		}
		hint := ""
		if similar := findSimilar(name, c.names()); similar != "" {
			hint = fmt.Sprintf("Did you mean '%s'?", similar)
		}
		c.add(lineNo, "#"+name+"#", "undefined variable", hint)
	}
	if isolated {
		c.add(lineNo, "", "'#' has no closing '#'", "References are written #NAME#")
	}
}

func (c *checker) checkDefinition(lineNo int, line string) {
	runes := []rune(line)
	if len(runes) < 3 {
		c.add(lineNo, "definition", "variable name must be two characters", "")
		return
	}
	name := string(runes[1:3])
	field := "#" + name

	_, body, ok := strings.Cut(line, ":")
	if !ok {
		c.add(lineNo, field, "missing ':' after the variable name", "Write #"+name+": <definition>")
		return
	}

	switch {
	case strings.Contains(body, "{"):
		if !strings.Contains(body, "}") {
			c.add(lineNo, field, "set is missing '}'", "")
		}
	case strings.Contains(body, "from"), strings.Contains(body, "#"):
		if ref, ok := reference(body); !ok {
			c.add(lineNo, field, "definition needs a #NAME# reference", "")
		} else if !c.defined[ref] {
			hint := ""
			if similar := findSimilar(ref, c.names()); similar != "" {
				hint = fmt.Sprintf("Did you mean '%s'?", similar)
			}
			c.add(lineNo, "#"+ref+"#", "undefined variable", hint)
		}
		if !strings.Contains(body, "from") {
			parts := strings.Split(body, ",")
			if len(parts) < 3 {
				c.add(lineNo, field, "derived definition needs '#REF#, method, value'", "")
			} else if m := strings.TrimSpace(parts[1]); !strings.EqualFold(m, "add") {
				c.add(lineNo, field, fmt.Sprintf("unknown method '%s'", m), "Only 'add' is supported")
			}
		}
	default:
		parts := strings.Split(body, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if len(parts) < 4 || parts[1] != "random" || (parts[0] != "int" && parts[0] != "double") {
			c.add(lineNo, field, "expected 'int|double, random, min, max'", "")
			break
		}
		if _, _, err := randomBounds(parts[2], parts[3]); err != nil {
			c.add(lineNo, field, err.Error(), "Bounds are 32-bit integers with min <= max")
		}
	}
	c.defined[name] = true
}

// checkSection walks a section body up to its terminator.
func (c *checker) checkSection(startLine int, start, end string, each func(lineNo int, line string)) {
	for {
		line, ok := c.src.next()
		if !ok {
			c.add(startLine, start, "section is not terminated", "Close it with "+end)
			return
		}
		if strings.TrimSpace(line) == end {
			return
		}
		lineNo := c.src.lineNo()
		c.checkRefs(lineNo, line)
		if each != nil {
			each(lineNo, line)
		}
	}
}

func (c *checker) checkChoice(lineNo int, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	comma := strings.Index(line, ",")
	if comma <= 0 {
		c.add(lineNo, ChoicesStart, "choice line must be '<points>,<text>'", "")
		return
	}
	if _, err := strconv.Atoi(strings.TrimSpace(line[:comma])); err != nil {
		c.add(lineNo, ChoicesStart, fmt.Sprintf("points '%s' is not an integer", strings.TrimSpace(line[:comma])), "")
	}
}

func (c *checker) checkSolution(lineNo int, line string) {
	if !c.inQuestion {
		c.add(lineNo, SolutionPrefix, "solution before any question", "Start the question with 'Question #1:'")
		return
	}
	c.solved = true
	if c.hasChoices && !strings.EqualFold(c.qType, "MC") {
		c.add(lineNo, "question "+c.question, "choices on a question that is not multiple choice", "Add 'QuestionType: MC'")
	}
	if c.hasCode || c.hasChoices {
		return
	}
	c.checkRefs(lineNo, afterColon(line))

	next, ok := c.src.peekSignificant()
	if !ok || !hasKeyword(next, SolutionTypePrefix) {
		return
	}
	c.src.next()
	if typ := afterColon(next); !knownSolutionType(typ) {
		hint := "Use one of: double, int, long, short"
		if similar := findSimilar(typ, []string{SolutionDouble, SolutionInt, SolutionLong, SolutionShort}); similar != "" {
			hint = fmt.Sprintf("Did you mean '%s'?", similar)
		}
		c.add(c.src.lineNo(), SolutionTypePrefix, fmt.Sprintf("unknown solution type '%s'", typ), hint)
	}
}

func (c *checker) names() []string {
	names := make([]string, 0, len(c.defined))
	for n := range c.defined {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// references returns the names of every #NAME# token in line and whether
// an unpaired '#' was left over.
func references(line string) (names []string, isolated bool) {
	rest := line
	for {
		i := strings.IndexByte(rest, '#')
		if i < 0 {
			return names, false
		}
		j := strings.IndexByte(rest[i+1:], '#')
		if j < 0 {
			return names, true
		}
		names = append(names, rest[i+1:i+1+j])
		rest = rest[i+j+2:]
	}
}

// findSimilar finds the most similar string from candidates.
func findSimilar(target string, candidates []string) string {
	target = strings.ToLower(target)
	best := ""
	bestScore := 0

	for _, c := range candidates {
		score := similarity(target, strings.ToLower(c))
		if score > bestScore {
			bestScore = score
			best = c
		}
	}

	return best
}

// similarity returns a simple similarity score.
func similarity(a, b string) int {
	if a == b {
		return 100
	}

	score := 0
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] == b[i] {
			score += 2
		} else {
			break
		}
	}

	if strings.Contains(b, a) || strings.Contains(a, b) {
		score += 10
	}

	return score
}
