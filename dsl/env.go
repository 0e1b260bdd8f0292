package dsl

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/everydev1618/quizgen"
)

// Env holds the variable bindings of one generation run. It is created
// fresh for every run and is not safe for concurrent use.
type Env struct {
	vars map[string]Value
	rng  *rand.Rand

	// linkedIndex is the set index chosen by the first linked pick of the
	// current question, -1 when none has been made.
	linkedIndex int

	warn func(kind quizgen.WarningKind, text string)
}

// NewEnv creates an empty environment drawing random numbers from rng.
func NewEnv(rng *rand.Rand) *Env {
	return &Env{
		vars:        make(map[string]Value),
		rng:         rng,
		linkedIndex: -1,
		warn:        func(quizgen.WarningKind, string) {},
	}
}

// Lookup returns the value bound to name.
func (e *Env) Lookup(name string) (Value, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Bind sets name to v, replacing any previous binding.
func (e *Env) Bind(name string, v Value) {
	e.vars[name] = v
}

// ResetLinked forgets the linked index. Called when a question starts.
func (e *Env) ResetLinked() {
	e.linkedIndex = -1
}

// Define interprets a definition line such as "#N1: int, random, 1, 10".
// The variable name is the two characters after the leading '#'. linked
// reports whether linked selection is active for the current question.
func (e *Env) Define(line string, linked bool) error {
	runes := []rune(line)
	if len(runes) < 3 {
		return fmt.Errorf("%w: %q is too short for a name", quizgen.ErrMalformedDefinition, line)
	}
	name := string(runes[1:3])

	_, body, ok := strings.Cut(line, ":")
	if !ok {
		return fmt.Errorf("%w: %s: missing ':'", quizgen.ErrMalformedDefinition, name)
	}

	switch {
	case strings.Contains(body, "{"):
		return e.defineSet(name, body)
	case strings.Contains(body, "from"):
		return e.definePick(name, body, linked)
	case strings.Contains(body, "#"):
		return e.defineDerived(name, body)
	default:
		return e.defineRandom(name, body)
	}
}

// defineSet binds a literal set: "{a, b, c}".
func (e *Env) defineSet(name, body string) error {
	open := strings.Index(body, "{")
	end := strings.LastIndex(body, "}")
	if end < open {
		return fmt.Errorf("%w: %s: unterminated set", quizgen.ErrMalformedDefinition, name)
	}
	inner := body[open+1 : end]
	var items []string
	if strings.TrimSpace(inner) != "" {
		for _, item := range strings.Split(inner, ",") {
			items = append(items, strings.TrimSpace(item))
		}
	}
	e.Bind(name, SetValue(items))
	return nil
}

// definePick binds a random element of a set: "from #S1#".
func (e *Env) definePick(name, body string, linked bool) error {
	ref, ok := reference(body)
	if !ok {
		return fmt.Errorf("%w: %s: 'from' needs a #SET# reference", quizgen.ErrMalformedDefinition, name)
	}
	v, ok := e.vars[ref]
	if !ok {
		return &quizgen.UndefinedVariableError{Name: ref}
	}
	items, ok := v.Set()
	if !ok {
		return fmt.Errorf("%w: %s: %s is a %s, not a set", quizgen.ErrMalformedDefinition, name, ref, v.Kind())
	}
	if len(items) == 0 {
		return fmt.Errorf("%w: %s: set %s is empty", quizgen.ErrMalformedDefinition, name, ref)
	}

	index := e.rng.Intn(len(items))
	if linked {
		if e.linkedIndex == -1 {
			e.linkedIndex = index
		} else {
			index = e.linkedIndex
		}
	}
	if index >= len(items) {
		return fmt.Errorf("%w: %s: linked index %d is outside set %s of size %d",
			quizgen.ErrMalformedDefinition, name, index, ref, len(items))
	}

	e.Bind(name, StringValue(items[index]))
	return nil
}

// defineDerived binds arithmetic on another variable: "#N1#, add, 3".
func (e *Env) defineDerived(name, body string) error {
	parts := strings.Split(strings.TrimSpace(body), ",")
	if len(parts) < 3 {
		return fmt.Errorf("%w: %s: want '#REF#, method, value'", quizgen.ErrMalformedDefinition, name)
	}
	method := strings.TrimSpace(parts[1])
	operand := strings.TrimSpace(parts[2])

	ref, ok := reference(body)
	if !ok {
		return fmt.Errorf("%w: %s: missing #REF#", quizgen.ErrMalformedDefinition, name)
	}

	if !strings.EqualFold(method, "add") {
		e.warn(quizgen.WarnIgnoredDefinition, fmt.Sprintf("%s: unknown method %q, nothing bound", name, method))
		return nil
	}

	v, ok := e.vars[ref]
	if !ok {
		return &quizgen.UndefinedVariableError{Name: ref}
	}
	base, ok := v.Int()
	if !ok {
		return fmt.Errorf("%w: %s: add needs an int, %s is a %s", quizgen.ErrMalformedDefinition, name, ref, v.Kind())
	}
	n, err := strconv.Atoi(operand)
	if err != nil {
		return fmt.Errorf("%w: %s: add operand %q: %v", quizgen.ErrMalformedDefinition, name, operand, err)
	}

	e.Bind(name, IntValue(base+n))
	return nil
}

// defineRandom binds a random number: "int, random, min, max" or
// "double, random, min, max".
func (e *Env) defineRandom(name, body string) error {
	parts := strings.Split(strings.TrimSpace(body), ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 2 {
		return fmt.Errorf("%w: %s: want 'type, random, min, max'", quizgen.ErrMalformedDefinition, name)
	}

	typ, rule := parts[0], parts[1]
	if rule != "random" || (typ != "int" && typ != "double") {
		e.warn(quizgen.WarnIgnoredDefinition, fmt.Sprintf("%s: unsupported %q %q, nothing bound", name, typ, rule))
		return nil
	}
	if len(parts) < 4 {
		return fmt.Errorf("%w: %s: %s random needs min and max", quizgen.ErrMalformedDefinition, name, typ)
	}
	lo, hi, err := randomBounds(parts[2], parts[3])
	if err != nil {
		return fmt.Errorf("%w: %s: %v", quizgen.ErrMalformedDefinition, name, err)
	}

	n := int(lo + e.rng.Int63n(hi-lo+1))
	if typ == "int" {
		e.Bind(name, IntValue(n))
		return nil
	}
	tenth := e.rng.Intn(9) + 1
	e.Bind(name, RealValue(float64(n)+float64(tenth)/10.0))
	return nil
}

// randomBounds parses the min and max of a random definition. Bounds are
// 32-bit integers with min <= max.
func randomBounds(minText, maxText string) (int64, int64, error) {
	lo, err := strconv.ParseInt(minText, 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("min %q: %w", minText, err)
	}
	hi, err := strconv.ParseInt(maxText, 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("max %q: %w", maxText, err)
	}
	if lo > hi {
		return 0, 0, fmt.Errorf("min %d > max %d", lo, hi)
	}
	return lo, hi, nil
}

// Expand replaces every #NAME# token in line with the string form of the
// bound value. A '#' without a closing partner is reported as a warning
// and left in place.
func (e *Env) Expand(line string) (string, error) {
	if !strings.Contains(line, "#") {
		return line, nil
	}

	var sb strings.Builder
	rest := line
	for {
		i := strings.IndexByte(rest, '#')
		if i < 0 {
			sb.WriteString(rest)
			break
		}
		j := strings.IndexByte(rest[i+1:], '#')
		if j < 0 {
			e.warn(quizgen.WarnIsolatedHash, line)
			sb.WriteString(rest)
			break
		}
		name := rest[i+1 : i+1+j]
		v, ok := e.vars[name]
		if !ok {
			return "", &quizgen.UndefinedVariableError{Name: name}
		}
		sb.WriteString(rest[:i])
		sb.WriteString(v.String())
		rest = rest[i+j+2:]
	}
	return sb.String(), nil
}

// reference returns the name inside the first #...# pair of s.
func reference(s string) (string, bool) {
	i := strings.IndexByte(s, '#')
	if i < 0 {
		return "", false
	}
	j := strings.IndexByte(s[i+1:], '#')
	if j < 0 {
		return "", false
	}
	return s[i+1 : i+1+j], true
}
