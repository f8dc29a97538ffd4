package classify

import (
	"regexp"
	"strings"
)

// Rule is one entry of the ordered classification table.
// Match reports whether the rule applies anywhere in text.
type Rule interface {
	Type() QuestionType
	Match(text string) bool
}

// patternRule matches a case-insensitive RE2 pattern. The extra predicates
// cover alternatives that RE2 cannot express (lookbehind).
type patternRule struct {
	typ   QuestionType
	re    *regexp.Regexp
	extra []func(string) bool
}

func (r *patternRule) Type() QuestionType { return r.typ }

func (r *patternRule) Match(text string) bool {
	if r.re.MatchString(text) {
		return true
	}
	for _, fn := range r.extra {
		if fn(text) {
			return true
		}
	}
	return false
}

func newRule(typ QuestionType, pattern string, extra ...func(string) bool) *patternRule {
	return &patternRule{
		typ:   typ,
		re:    regexp.MustCompile("(?i)" + pattern),
		extra: extra,
	}
}

// notPrecededBy matches pattern only at positions where the text before the
// match does not end with prefix (case-insensitive).
func notPrecededBy(pattern, prefix string) func(string) bool {
	re := regexp.MustCompile("(?i)" + pattern)
	return func(text string) bool {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			start := max(0, loc[0]-len(prefix))
			if !strings.EqualFold(text[start:loc[0]], prefix) {
				return true
			}
		}
		return false
	}
}

// defaultRules is evaluated top to bottom. Narrow rules sit above the broad
// ones they overlap with: parallel_flaw before flaw and parallel.
var defaultRules = []Rule{
	newRule(TypeParallelFlaw,
		`(flaw|flawed).*(similar|resembles|parallel|like|analogy)|(similar|resembles|parallel|like|analogy).*(flaw|flawed)|has a flawed pattern`),
	newRule(TypeWeaken,
		`weaken|undermine|call[s]? into question|cast[s]? (doubt|most doubt)|evidence against|damage|argues against|vulnerable to.*(criticism|objection|grounds)|criticism of|strongest (criticism|challenge|objection)|challenge to|counter|invalidate|cancel out|casts the most doubt|at odds with|refut|seriously (calls|limit)|argues.* against|misleading`),
	newRule(TypeStrengthen,
		`strengthen|additional support|helps? (to )?(justify|account)|justification for|provides?.*(support|evidence|basis)|best (evidence|reason)|defense of|most support|account for|(^|\W)supports the`,
		notPrecededBy(`supports? (the|for)`, "strongly "),
	),
	newRule(TypeAssumptionNecessary,
		`assumption.*(depends|requires|relies|required|that would permit|made|on which|of the argument)|depends on.*(assuming|assumption)|assumes|relies on|requires.*(assumption|assuming)|argument (depends|makes.*assumption|rely)|is assumed|presupposes|must.*assume|based on.*(assumption|which one)|permit the conclusion|logically committed|committed to|assumption necessary|assumption that the argument`),
	newRule(TypeAssumptionSufficient,
		`if (assumed|true).*(enables|allows|properly drawn)|follows logically if.*(assumed|completes)|enables.*conclusion|logically completes|completes the (argument|passage)|added to the premises|allow.*conclusion.*properly|would do most to justify|logical completion|argument to be logically correct|properly drawn.*assumed|would have to be (true|made)|must.*assumed`),
	newRule(TypeFlaw,
		`\bflaw\b|error in.*(reasoning|argument)|questionable|describes an error|error of reasoning|commits.*(error|fallacy)|fails to (recognize|address)|problem with|errors in reasoning|reasoning error|weakness|mistakes? in|reasoning flaws?`),
	newRule(TypeMustBeTrue,
		`must (be true|be false|also be true|on the basis)|properly (inferred|concluded)|logically (follows|inferred|concluded)|can be (properly )?(inferred|concluded|drawn)|follows logically|cannot be true|can be expected|least compatible|conflicts with|would have to be true|have to be true|validly drawn`),
	newRule(TypeMostSupported,
		`most strongly supported|strongly supported|most supported|support.*(inference|which one)|best (illustrated|supported)|most justifiably|used as part of an argument|reasonably (supported|concluded|inferred)|proper inference|best supported|most reasonably be concluded|grounds for accepting`),
	newRule(TypeParallel,
		`most similar|similar.*(reasoning|pattern|argument)|resembles|parallel|least similar|logical structure.*(like|most like)|has a logical structure|most nearly similar`),
	newRule(TypeMainConclusion,
		`main (conclusion|point)|overall conclusion|conclusion (drawn|of the argument|is best expressed)|expresses the conclusion|lead to.*(conclusion|conclusions)|best expresses the point|most accurately expresses.*conclusion`),
	newRule(TypeRole,
		`\brole\b|\bfunction\b|plays which one|serves (to|which)|figures in.*(which|how)|related to.*argument|used in.*(which|how)|uses which|characterizes.*response|misinterpreting|misinterpret`),
	newRule(TypeMethodOfReasoning,
		`method|technique|strategy|responds? to|proceeds by|does which one.*(dealing|in)|strategies of argumentation|describes.*argument|decision process|employs which|argumentative strateg`),
	newRule(TypeResolve,
		`resolve|reconcile|paradox|discrepancy|apparent conflict|explanation|desired effect|incomplete|difference in`),
	newRule(TypePointAtIssue,
		`disagree|dispute|point at issue|committed to (disagreeing|agreeing)|what is at issue`),
	newRule(TypePrincipleApply,
		`conform[s]? (to|most closely)|illustrate[s]?|exhibit[s]?|consistent with.*(principle|proposition)|application of|principle underlying|principles forms|most usefully invoked|principles underlies|judgments? conforms?|most closely (to|conforms)|most closely accords|violates|best illustration|example of.*described|exemplified`),
	newRule(TypePrincipleJustify,
		`principle.*(justify|support|help|valid|established|accepted|provide)|justify.*(reasoning|argument)|strongest justification|logical basis|general principle|could underlie`),
	newRule(TypeEvaluate,
		`evaluate|useful to know|would be most helpful|most strongly indicates|contribute.*evaluation|reconsider|most (help|important|relevant).*(evaluat|know)|clarification.*most important`),
	newRule(TypeExcept, `\bEXCEPT\b`),
}

// DefaultRules returns the classification rules in evaluation order.
func DefaultRules() []Rule {
	return append([]Rule(nil), defaultRules...)
}

// RunRules returns the type of the first rule matching text, or unknown.
func RunRules(rules []Rule, text string) QuestionType {
	for _, r := range rules {
		if r.Match(text) {
			return r.Type()
		}
	}
	return TypeUnknown
}
