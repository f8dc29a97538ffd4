// Package prompt renders the LLM prompts for question analysis and free-text
// extraction. Rendering is pure: the same input always yields the same text.
package prompt

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/logiclue/logiclue/internal/classify"
	"github.com/logiclue/logiclue/internal/taxonomy"
)

// UserContext is optional self-reported context about the student's choice.
type UserContext struct {
	AltChoice     string
	RationaleTag  string
	RationaleText string
}

// AnalysisInput is everything the analysis prompt embeds.
type AnalysisInput struct {
	Stimulus        string
	QuestionStem    string
	Options         map[string]string
	UserChoice      string
	CorrectAnswer   string
	Context         UserContext
	SuggestedMethod classify.Method
	Classification  classify.Classification
}

// Option is one lettered answer choice.
type Option struct {
	Letter string
	Text   string
}

// SortedOptions returns the options ordered by letter.
func SortedOptions(opts map[string]string) []Option {
	letters := make([]string, 0, len(opts))
	for l := range opts {
		letters = append(letters, l)
	}
	sort.Strings(letters)

	out := make([]Option, 0, len(letters))
	for _, l := range letters {
		out = append(out, Option{Letter: l, Text: opts[l]})
	}
	return out
}

type analysisView struct {
	AnalysisInput
	SOP          string
	Methods      []taxonomy.MethodInfo
	Diagrams     []diagramView
	ErrorTypes   []*taxonomy.ErrorType
	ErrorCodes   string
	Suggested    string
	SortedOption []Option
}

type diagramView struct {
	Name     string
	Template string
}

// coreDiagrams are always offered, whatever the question type.
var coreDiagrams = []string{
	"river_crossing",
	"river_dual_bridge",
	"venn_all",
	"venn_some",
	"venn_none",
	"substitution",
	"parallel_bridge",
}

// diagramsFor returns the core templates followed by the templates of the
// suggested and candidate methods. A template already listed is skipped.
func diagramsFor(suggested classify.Method, candidates []classify.Method) []diagramView {
	seen := make(map[string]bool)
	var out []diagramView
	add := func(name, tmpl string) {
		if seen[tmpl] {
			return
		}
		seen[tmpl] = true
		out = append(out, diagramView{Name: name, Template: strings.Trim(tmpl, "\n")})
	}
	for _, name := range coreDiagrams {
		add(name, taxonomy.DiagramTemplate(name))
	}
	for _, m := range append([]classify.Method{suggested}, candidates...) {
		if m == "" {
			continue
		}
		add(string(m), taxonomy.DiagramForMethod(m))
	}
	return out
}

var analysisTemplate = template.Must(template.New("analysis").Parse(`{{.SOP}}
---

## QUESTION CLASSIFICATION

Type: {{.Classification.Type}}
Family: {{.Classification.Family}}
Candidate methods: {{.Suggested}}

---

## AVAILABLE DIAGRAM TEMPLATES

{{range .Methods}}- **{{.Method}}**: {{.Description}}
{{end}}
{{range .Diagrams}}### {{.Name}}
` + "```" + `
{{.Template}}
` + "```" + `

{{end}}---

## ERROR TYPES TO USE

When classifying the student's error, use one of these codes:
{{.ErrorCodes}}

| Code | Name | Trigger condition | One-line diagnosis |
|------|------|-------------------|--------------------|
{{range .ErrorTypes}}| {{.Code}} | {{.Name}} | {{.Trigger}} | {{.DiagnosisTemplate}} |
{{end}}
---

## QUESTION TO ANALYZE

**Stimulus:**
{{.Stimulus}}

**Question:**
{{.QuestionStem}}

**Options:**
{{range .SortedOption}}({{.Letter}}) {{.Text}}
{{end}}
**User selected:** {{.UserChoice}}
{{if .CorrectAnswer}}**Correct answer:** {{.CorrectAnswer}}{{end}}
{{with .Context.AltChoice}}User was torn between {{$.UserChoice}} and {{.}}.
{{end}}{{with .Context.RationaleTag}}User's self-reported issue: {{.}}
{{end}}{{with .Context.RationaleText}}User's explanation: "{{.}}"
{{end}}
**Suggested method based on triggers:** {{.SuggestedMethod}}

---

## YOUR TASK

1. Confirm the suggested method, or override it if the stimulus calls for another one.
2. Draw a diagram from the matching template that makes the answer obvious.
3. Name the gap or the key insight.
4. If the student chose wrong, write the fork feedback (fork_point, user_reasoning, bridge_to_correct).
5. Return valid JSON in the shape below.

## OUTPUT FORMAT (JSON only, no markdown wrapper)

` + outputFormat))

const outputFormat = `{
  "method": "river_crossing | venn | formula | highlight | ...",
  "diagram": "ASCII diagram (use template)",
  "analysis": {
    "X_bank": "premise/evidence",
    "Y_bank": "conclusion",
    "gap": "hidden assumption or key insight",
    "key_insight": "one sentence why correct answer works"
  },
  "correctAnswer": "A|B|C|D|E",
  "isCorrect": true/false,
  "correctAnswerExplanation": {
    "brief": "1-2 sentences",
    "flipTest": "If this were false, the argument would..."
  },
  "userChoiceFeedback": {
    "errorType": "one of the error codes, or null if correct",
    "fork_point": "where thinking diverged",
    "user_reasoning": "why their logic made sense",
    "bridge_to_correct": "path to correct thinking"
  },
  "trapAnalysis": {
    "option": "letter of trap option",
    "attraction": "why tempting",
    "flaw": "why wrong"
  },
  "takeaway": "one transferable principle"
}
`

// BuildAnalysis renders the full analysis prompt.
func BuildAnalysis(in AnalysisInput) (string, error) {
	methods := make([]string, len(in.Classification.PrimaryMethods))
	for i, m := range in.Classification.PrimaryMethods {
		methods[i] = string(m)
	}

	view := analysisView{
		AnalysisInput: in,
		SOP:           SOP,
		Methods:       taxonomy.MethodDescriptions(),
		Diagrams:      diagramsFor(in.SuggestedMethod, in.Classification.PrimaryMethods),
		ErrorTypes:    taxonomy.AllErrorTypes(),
		ErrorCodes:    strings.Join(taxonomy.ErrorCodes(), ", "),
		Suggested:     strings.Join(methods, ", "),
		SortedOption:  SortedOptions(in.Options),
	}

	var buf bytes.Buffer
	if err := analysisTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render analysis prompt: %w", err)
	}
	return buf.String(), nil
}

// ExtractInput is a free-text description of a question the student is
// stuck on.
type ExtractInput struct {
	Text  string
	Stuck string
	Mode  string
}

// ExtractSystem is the system prompt for extraction.
const ExtractSystem = "You are a logic analysis assistant. Extract structured information from the user's description. Return JSON only, no markdown."

// BuildExtract returns the system and user prompts for extraction.
func BuildExtract(in ExtractInput) (system, user string) {
	stuck := in.Stuck
	if stuck == "" {
		stuck = "Not provided"
	}

	var b strings.Builder
	b.WriteString("Extract from this text:\n")
	fmt.Fprintf(&b, "TEXT: %s\n", in.Text)
	fmt.Fprintf(&b, "STUCK: %s\n\n", stuck)
	b.WriteString("Return this exact JSON:\n{\n")
	b.WriteString(`  "description": "the core argument in 1-2 sentences",` + "\n")
	b.WriteString(`  "questionStem": "the question being asked, or empty string if none",` + "\n")
	b.WriteString(`  "userReasoning": "why the user thought their answer was right, or empty string if not provided",` + "\n")
	fmt.Fprintf(&b, "  \"mode\": %q\n}", in.Mode)
	return ExtractSystem, b.String()
}
