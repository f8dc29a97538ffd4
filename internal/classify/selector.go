package classify

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Trigger selects Method when any of its phrases occurs in the question text,
// or when every phrase of one of its Together groups occurs as whole words.
// Higher Priority is checked first.
type Trigger struct {
	Method   Method
	Phrases  []string
	Together [][]string
	Priority int
}

// Match is a trigger that fired and the phrase that fired it.
type Match struct {
	Trigger
	Phrase string
}

// FallbackMethod is returned when no trigger matches.
const FallbackMethod = MethodHighlight

// defaultTriggers is kept in declaration order; sortedTriggers is the
// evaluation order. Phrases are matched as plain lowercase substrings.
var defaultTriggers = []Trigger{
	{
		Method:   MethodDisputeLocate,
		Priority: 100,
		Phrases:  []string{"two speakers with names", "a says... b says...", "point at issue", "disagree about"},
		Together: [][]string{{"a says", "b says"}},
	},
	{
		Method:   MethodFormula,
		Priority: 95,
		Phrases:  []string{"parallel reasoning", "parallel flaw", "similar pattern of reasoning", "most similar in its reasoning"},
	},
	{
		Method:   MethodArgumentChain,
		Priority: 90,
		Phrases:  []string{"role of the statement", "method of reasoning", "argumentative strategy", "proceeds by", "main conclusion"},
	},
	{
		Method:   MethodParallelBridge,
		Priority: 85,
		Phrases:  []string{"resolve", "reconcile", "explain the discrepancy", "apparent contradiction", "surprising finding"},
	},
	{
		Method:   MethodVenn,
		Priority: 80,
		Phrases:  []string{"all x are y", "some x are y", "no x are y", "most x are y", "few x are y"},
	},
	{
		Method:   MethodSubstitution,
		Priority: 75,
		Phrases:  []string{"if...then", "only if", "unless", "whenever", "required for", "sufficient for"},
	},
	{
		Method:   MethodRiverDualBridge,
		Priority: 70,
		Phrases:  []string{"two explanations", "alternatively", "another possibility", "some argue... others argue"},
	},
	{
		Method:   MethodRiverCrossing,
		Priority: 50,
		Phrases:  []string{"weaken", "strengthen", "assumption required", "assumption sufficient", "flaw", "vulnerable"},
	},
}

var sortedTriggers = SortTriggers(defaultTriggers)

// DefaultTriggers returns the trigger table in declaration order.
func DefaultTriggers() []Trigger {
	return append([]Trigger(nil), defaultTriggers...)
}

// SortTriggers returns a copy of triggers ordered by descending priority.
// Equal priorities keep their declaration order.
func SortTriggers(triggers []Trigger) []Trigger {
	out := append([]Trigger(nil), triggers...)
	slices.SortStableFunc(out, func(a, b Trigger) int {
		return b.Priority - a.Priority
	})
	return out
}

// SelectMethod picks the diagram method for a question from trigger phrases
// found in the stem and stimulus.
func SelectMethod(stem, stimulus string) Method {
	return MethodFor(SelectTrigger(stem, stimulus))
}

// MethodFor returns the method of m, or FallbackMethod when nothing matched.
func MethodFor(m Match, ok bool) Method {
	if !ok {
		return FallbackMethod
	}
	return m.Method
}

// SelectTrigger returns the highest-priority trigger that fires for the
// question, or false when none does.
func SelectTrigger(stem, stimulus string) (Match, bool) {
	return MatchTriggers(sortedTriggers, stem, stimulus)
}

// MatchTriggers scans triggers in the given order and returns the first one
// that fires on the lowercased stem and stimulus, along with the phrase that
// fired it. A Together group is reported as its phrases joined by " + ".
func MatchTriggers(triggers []Trigger, stem, stimulus string) (Match, bool) {
	text := strings.ToLower(stem + " " + stimulus)
	for _, t := range triggers {
		for _, phrase := range t.Phrases {
			if strings.Contains(text, strings.ToLower(phrase)) {
				return Match{Trigger: t, Phrase: phrase}, true
			}
		}
		for _, group := range t.Together {
			if len(group) > 0 && allWords(text, group) {
				return Match{Trigger: t, Phrase: strings.Join(group, " + ")}, true
			}
		}
	}
	return Match{}, false
}

func allWords(text string, phrases []string) bool {
	for _, p := range phrases {
		if !containsWord(text, strings.ToLower(p)) {
			return false
		}
	}
	return true
}

// containsWord reports whether phrase occurs in text with no letter or
// digit directly before or after it.
func containsWord(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	for off := 0; off <= len(text)-len(phrase); {
		i := strings.Index(text[off:], phrase)
		if i < 0 {
			return false
		}
		start, end := off+i, off+i+len(phrase)
		before, _ := utf8.DecodeLastRuneInString(text[:start])
		after, _ := utf8.DecodeRuneInString(text[end:])
		if !isWordRune(before) && !isWordRune(after) {
			return true
		}
		off = start + 1
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
