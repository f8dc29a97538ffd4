package taxonomy

import (
	"sort"

	"github.com/logiclue/logiclue/internal/classify"
)

// FallbackDiagram is used for unknown template names.
const FallbackDiagram = "highlight"

// diagrams holds the ASCII skeletons the model fills in. Placeholders are
// written as {name}.
var diagrams = map[string]string{
	"river_crossing": `
┌─────────────────┐                      ┌─────────────────┐
│    X-BANK       │                      │    Y-BANK       │
│   (Premise)     │                      │  (Conclusion)   │
│                 │         GAP          │                 │
│  {premise}      │ ═══════════════════> │  {conclusion}   │
│                 │    ↑                 │                 │
└─────────────────┘    │                 └─────────────────┘
                       │
                 {gap_description}
`,
	"river_dual_bridge": `
                    ┌─── Bridge A: {explanation_1} ───┐
                    │                                  │
{observation} ──────┤                                  ├────── {conclusion}
                    │                                  │
                    └─── Bridge B: {explanation_2} ───┘
                              ↑
                    Which bridge is {attacked_or_supported}?
`,
	"river_multi_bridge": `
                    ┌─── Support 1: {support_1} ───┐
                    │                               │
{evidence} ─────────┼─── Support 2: {support_2} ───┼────── {conclusion}
                    │                               │
                    └─── Support 3: {support_3} ───┘
`,
	"venn_all": `
All {A} are {B}:
┌─────────────────┐
│        B        │
│    ┌───────┐    │
│    │   A   │    │
│    └───────┘    │
└─────────────────┘
`,
	"venn_some": `
Some {A} are {B}:
    ┌───────┐ ┌───────┐
    │   A   │ │   B   │
    │     ╲ │ │ ╱     │
    │      ╲│ │╱      │
    │       ╲│╱       │
    └───────┴─┴───────┘
         overlap
`,
	"venn_none": `
No {A} are {B}:
┌───────┐     ┌───────┐
│   A   │     │   B   │
│       │     │       │
└───────┘     └───────┘
   (no overlap)
`,
	"venn_most": `
Most {A} are {B}:
┌─────────────────┐
│        B        │
│    ┌───────┐    │
│    │  A    │←───│── most of A is inside B
│    │   ····│    │   but some A outside
└────│───────│────┘
     └───────┘
`,
	"substitution": `
Given Chain:
{condition_1} → {condition_2} → {condition_3}

Contrapositive:
¬{condition_3} → ¬{condition_2} → ¬{condition_1}

Therefore:
{condition_1} → {condition_3}  ✓
`,
	"parallel_bridge": `
Fact 1: {fact_1}          Fact 2: {fact_2}
        │                         │
        ↓                         ↓
        └────────────┬────────────┘
                     ↓
         ┌───────────────────────┐
         │  {reconciling_factor} │
         │  explains both facts  │
         └───────────────────────┘
`,
	"dispute_locate": `
┌─────────────────────────────────────────────┐
│               POINT AT ISSUE                │
├─────────────────┬───────────────────────────┤
│   Speaker A     │      Speaker B            │
├─────────────────┼───────────────────────────┤
│ Believes: {a_view}  │ Believes: {b_view}    │
├─────────────────┼───────────────────────────┤
│       ✓         │         ✗                 │
│   (agrees)      │    (disagrees)            │
└─────────────────┴───────────────────────────┘
        ↓
  The disagreement is about: {dispute_point}
`,
	"argument_chain": `
① {statement_1}  [role: {role_1}]
        ↓
② {statement_2}  [role: {role_2}]
        ↓
③ {statement_3}  [role: {role_3}]
        ↓
④ {statement_4}  [role: {role_4}]

Legend:
P = Premise
IC = Intermediate Conclusion
MC = Main Conclusion
E = Evidence
`,
	"formula": `
Original Argument Structure:
{premise_type_1} + {premise_type_2} → {conclusion_type}

Abstract Form:
{abstract_formula}

Match in Answer:
Option {letter}:
{matched_premise_1} + {matched_premise_2} → {matched_conclusion}
`,
	"number_visual": `
{low_end} ←─────────────────────────────→ {high_end}
          │                             │
          │    ┌───{range}───┐          │
          │    │             │          │
          ▼    ▼             ▼          ▼
──────────┼────┼─────────────┼──────────┼──────────
          {point_1}          {point_2}
`,
	"extreme_test": `
Test: If we assume the EXTREME case...

Assumption being tested: {assumption}

Extreme scenario: {extreme_case}

Result:
├─ Argument still works? → Assumption NOT necessary
└─ Argument collapses?   → Assumption IS necessary ✓
`,
	"highlight": `
Question asks: {question_type}

Key elements to match:
• {element_1}
• {element_2}
• {element_3}

Scan each option for these elements:
A: {match_status_a}
B: {match_status_b}
C: {match_status_c}
D: {match_status_d}
E: {match_status_e}
`,
}

// methodDiagram maps methods whose template name differs from the method.
// Methods with no entry here and no template of their own use the fallback.
var methodDiagram = map[classify.Method]string{
	classify.MethodVenn:            "venn_all",
	classify.MethodRiverFork:       "river_multi_bridge",
	classify.MethodAbstractMapping: "formula",
}

// DiagramTemplate returns the template called name, or the highlight
// template when there is none.
func DiagramTemplate(name string) string {
	if d, ok := diagrams[name]; ok {
		return d
	}
	return diagrams[FallbackDiagram]
}

// DiagramForMethod returns the template used to draw m.
func DiagramForMethod(m classify.Method) string {
	if name, ok := methodDiagram[m]; ok {
		return diagrams[name]
	}
	return DiagramTemplate(string(m))
}

// DiagramNames returns every template name, sorted.
func DiagramNames() []string {
	names := make([]string, 0, len(diagrams))
	for n := range diagrams {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
