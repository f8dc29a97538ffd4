package taxonomy

import "github.com/logiclue/logiclue/internal/classify"

var methodDescriptions = map[classify.Method]string{
	classify.MethodRiverCrossing:   "River Crossing: X-bank (premise) → Bridge (reasoning) → Y-bank (conclusion), find the Gap",
	classify.MethodRiverDualBridge: "Dual Bridge: Two competing explanations, find which one is attacked/supported",
	classify.MethodRiverFork:       "River Fork: One premise splits into several possible conclusions or supports, find the branch the question targets",
	classify.MethodHighlight:       "Highlight: Scan options against question requirements (fallback method)",
	classify.MethodLego:            "Lego: Snap stated facts together as attribute combinations and check which combination must follow",
	classify.MethodSubstitution:    "Substitution: A→B, B→C, therefore A→C; chain the if-then statements and check the contrapositive",
	classify.MethodVenn:            "Venn Diagram: Draw circles to show set relationships (all/some/none/most)",
	classify.MethodFormula:         "Formula Method: Abstract structure, match identical pattern",
	classify.MethodAbstractMapping: "Abstract Mapping: Replace the topic with placeholders and map each option onto the same skeleton",
	classify.MethodParallelBridge:  "Parallel Bridge: Two facts side by side, find common explanation",
	classify.MethodDisputeLocate:   "Dispute Locate: Two speakers, find specific point of disagreement",
	classify.MethodArgumentChain:   "Argument Chain: ①②③④ with roles (P/IC/MC/E)",
	classify.MethodNumberVisual:    "Number/Visual: Lines and ranges for quantity comparisons",
	classify.MethodExtremeTest:     "Extreme Test: Assume extreme case, test if assumption necessary",
}

// MethodInfo pairs a method with its one-line description.
type MethodInfo struct {
	Method      classify.Method
	Description string
}

// MethodDescription returns the one-line description of m, or "" when m is
// not a known method.
func MethodDescription(m classify.Method) string {
	return methodDescriptions[m]
}

// MethodDescriptions returns every method with its description, in the
// order methods are presented to the model.
func MethodDescriptions() []MethodInfo {
	methods := classify.AllMethods()
	out := make([]MethodInfo, 0, len(methods))
	for _, m := range methods {
		out = append(out, MethodInfo{Method: m, Description: methodDescriptions[m]})
	}
	return out
}
