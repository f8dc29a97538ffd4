// Package report renders analysis results and statistics for the terminal.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/logiclue/logiclue/internal/analysis"
	"github.com/logiclue/logiclue/internal/taxonomy"
	"github.com/logiclue/logiclue/internal/ui/components"
	"github.com/logiclue/logiclue/internal/ui/theme"
)

// Width is the target line width for bars and rules.
const Width = 72

// Analysis writes res as a card: classification, method, diagram,
// breakdown, answer, feedback and takeaway.
func Analysis(w io.Writer, res *analysis.Result) error {
	if res == nil || res.Analysis == nil {
		return fmt.Errorf("no analysis to render")
	}
	a := res.Analysis

	var b strings.Builder
	b.WriteString(theme.Title.Render("LogiClue analysis"))
	b.WriteString("\n\n")
	field(&b, "Question type", fmt.Sprintf("%s (%s)", res.Classification.Type, res.Classification.Family))
	field(&b, "Method", a.Method)
	if res.SuggestedMethod != "" && string(res.SuggestedMethod) != a.Method {
		field(&b, "Suggested", string(res.SuggestedMethod))
	}
	if a.QuestionID != "" {
		field(&b, "Question ID", a.QuestionID)
	}

	if strings.TrimSpace(a.Diagram) != "" {
		section(&b, "Diagram")
		b.WriteString(theme.Diagram.Render(strings.TrimRight(a.Diagram, "\n")))
		b.WriteString("\n")
	}

	if a.Analysis != (analysis.Breakdown{}) {
		section(&b, "Breakdown")
		field(&b, "X bank", a.Analysis.XBank)
		field(&b, "Y bank", a.Analysis.YBank)
		field(&b, "Gap", a.Analysis.Gap)
		field(&b, "Key insight", a.Analysis.KeyInsight)
	}

	section(&b, "Answer")
	verdict := theme.Incorrect.Render("✗ incorrect")
	if a.IsCorrect {
		verdict = theme.Correct.Render("✓ correct")
	}
	field(&b, "Correct answer", a.CorrectAnswer+"  "+verdict)
	field(&b, "Why", a.CorrectAnswerExplanation.Brief)
	field(&b, "Flip test", a.CorrectAnswerExplanation.FlipTest)

	if fb := a.UserChoiceFeedback; !a.IsCorrect && fb != (analysis.UserChoiceFeedback{}) {
		section(&b, "Where it went wrong")
		if fb.ErrorType != "" {
			field(&b, "Error type", taxonomy.DisplayLabel(fb.ErrorType))
			field(&b, "Diagnosis", diagnosis(fb.ErrorType, a.Analysis))
		}
		field(&b, "Fork point", fb.ForkPoint)
		field(&b, "Your reasoning", fb.UserReasoning)
		field(&b, "Bridge", fb.BridgeToCorrect)
	}

	if t := a.TrapAnalysis; t != (analysis.TrapAnalysis{}) {
		section(&b, "Trap")
		field(&b, "Option", t.Option)
		field(&b, "Attraction", t.Attraction)
		field(&b, "Flaw", t.Flaw)
	}

	if a.Takeaway != "" {
		section(&b, "Takeaway")
		b.WriteString(theme.Body.Render(a.Takeaway))
		b.WriteString("\n")
	}

	_, err := fmt.Fprintln(w, theme.Card.Render(strings.TrimRight(b.String(), "\n")))
	return err
}

// Stats writes the overview with an accuracy meter and the error-type table.
func Stats(w io.Writer, st *analysis.Stats) error {
	if st == nil {
		return fmt.Errorf("no stats to render")
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Practice stats"))
	b.WriteString("\n\n")
	field(&b, "Questions", fmt.Sprintf("%d", st.Overview.TotalQuestions))
	field(&b, "Correct", fmt.Sprintf("%d", st.Overview.CorrectCount))
	if st.Overview.AvgDifficulty > 0 {
		field(&b, "Avg difficulty", fmt.Sprintf("%.1f", st.Overview.AvgDifficulty))
	}
	b.WriteString(components.Meter{Label: "Accuracy", Percent: st.Overview.Accuracy, Width: Width}.View())
	b.WriteString("\n")

	section(&b, "Mistakes by error type")
	if len(st.ByErrorType) == 0 {
		b.WriteString(theme.Hint.Render("No mistakes recorded."))
		b.WriteString("\n")
	}
	width := 0
	for _, e := range st.ByErrorType {
		width = max(width, len(e.Display))
	}
	for _, e := range st.ByErrorType {
		fmt.Fprintf(&b, "%-*s  %s\n", width, e.Display, theme.Label.Render(fmt.Sprintf("%d", e.Count)))
	}

	_, err := fmt.Fprintln(w, theme.Card.Render(strings.TrimRight(b.String(), "\n")))
	return err
}

// diagnosis fills the one-line diagnosis of code from the breakdown. When
// the breakdown cannot fill every placeholder the error's trigger condition
// is shown instead. Unknown codes yield "".
func diagnosis(code string, bd analysis.Breakdown) string {
	e, ok := taxonomy.GetErrorType(code)
	if !ok {
		return ""
	}
	vars := make(map[string]string)
	for k, v := range map[string]string{
		"premise":           bd.XBank,
		"conclusion":        bd.YBank,
		"topic":             bd.YBank,
		"hidden_assumption": bd.Gap,
		"needed":            bd.Gap,
	} {
		if v = strings.TrimSpace(v); v != "" {
			vars[k] = v
		}
	}
	line := taxonomy.FormatDiagnosis(code, vars)
	if strings.Contains(line, "{") {
		return e.Trigger
	}
	return line
}

func section(b *strings.Builder, name string) {
	b.WriteString("\n")
	b.WriteString(theme.Section.Render(name))
	b.WriteString("\n")
}

// field writes "label: value", skipping empty values.
func field(b *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	b.WriteString(theme.Label.Render(label + ":"))
	b.WriteString(" ")
	b.WriteString(theme.Body.Render(value))
	b.WriteString("\n")
}
