package dsl

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/shopspring/decimal"

	"github.com/everydev1618/quizgen"
)

// Numeric solution types.
const (
	SolutionDouble = "double"
	SolutionInt    = "int"
	SolutionLong   = "long"
	SolutionShort  = "short"
)

// exactDigits is enough fractional digits to keep every float64 off a
// false tie at the second decimal.
const exactDigits = 40

// Answer payloads, tried in order.
var answerPatterns = []*regexp2.Regexp{
	regexp2.MustCompile(`\[(\d+)\]`, regexp2.None),
	regexp2.MustCompile(`\[(true|false)\]`, regexp2.None),
	regexp2.MustCompile(`\[(.*?)\]`, regexp2.None),
}

// knownSolutionType reports whether typ is a declared numeric type.
func knownSolutionType(typ string) bool {
	switch typ {
	case SolutionDouble, SolutionInt, SolutionLong, SolutionShort:
		return true
	}
	return false
}

// formatNumber renders v according to a SolutionType. Integral types
// truncate toward zero and saturate at the type's range; anything else is
// formatted as double with at most two decimals and at least one.
func formatNumber(v float64, typ string) (string, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", fmt.Errorf("%w: result %v is not finite", quizgen.ErrEvaluation, v)
	}

	switch typ {
	case SolutionLong:
		return strconv.FormatInt(toInt64(v), 10), nil
	case SolutionInt:
		return strconv.FormatInt(int64(toInt32(v)), 10), nil
	case SolutionShort:
		return strconv.FormatInt(int64(int16(toInt32(v))), 10), nil
	default:
		s := roundDouble(v).String()
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s, nil
	}
}

// roundDouble rounds the exact binary value of v half-even to two
// decimals. 2.675 is stored as 2.67499... and rounds down.
func roundDouble(v float64) decimal.Decimal {
	exact := new(big.Float).SetFloat64(v).Text('f', exactDigits)
	d, err := decimal.NewFromString(exact)
	if err != nil {
		d = decimal.NewFromFloat(v)
	}
	return d.RoundBank(2)
}

func toInt64(v float64) int64 {
	switch {
	case v >= math.MaxInt64:
		return math.MaxInt64
	case v <= math.MinInt64:
		return math.MinInt64
	default:
		return int64(v)
	}
}

func toInt32(v float64) int32 {
	switch {
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= math.MinInt32:
		return math.MinInt32
	default:
		return int32(v)
	}
}

// extractValue pulls the answer payload out of one line of program output:
// an integer in brackets, then a boolean, then any bracketed text.
func extractValue(s string) (string, bool) {
	for _, re := range answerPatterns {
		m, err := re.FindStringMatch(s)
		if err != nil || m == nil {
			continue
		}
		return m.GroupByNumber(1).String(), true
	}
	return "", false
}

// splitOutput splits program output into result lines, dropping trailing
// empty lines.
func splitOutput(out string) []string {
	lines := strings.Split(out, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// parseUnits reads the brace list of a Unit line: "Unit: {cm, m}".
func parseUnits(line string) ([]string, bool) {
	open := strings.Index(line, "{")
	end := strings.Index(line, "}")
	if open < 0 || end < open {
		return nil, false
	}
	inner := strings.TrimSpace(line[open+1 : end])
	if inner == "" {
		return nil, true
	}
	var units []string
	for _, u := range strings.Split(inner, ",") {
		units = append(units, strings.TrimSpace(u))
	}
	return units, true
}

// formatSolution builds the bracketed solution, one entry per unit. With
// no units the bare result is the only entry.
func formatSolution(result string, units []string) string {
	if len(units) == 0 {
		return "[" + result + "]"
	}
	entries := make([]string, len(units))
	for i, u := range units {
		entries[i] = result + u
	}
	return "[" + strings.Join(entries, ", ") + "]"
}

// solutionAnswers splits a bracketed solution into its answer entries.
func solutionAnswers(solution string) []string {
	inner := strings.NewReplacer("[", "", "]", "").Replace(solution)
	inner = strings.TrimSpace(inner)
	parts := strings.Split(inner, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
