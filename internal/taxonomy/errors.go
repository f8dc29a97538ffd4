// Package taxonomy holds the fixed reference tables used to explain LSAT
// answers: the error types a wrong choice is diagnosed with, the diagram
// methods and their ASCII templates.
package taxonomy

import "strings"

// ErrorType is a known reasoning mistake behind a wrong answer choice.
type ErrorType struct {
	Code              string
	Name              string
	Trigger           string
	DiagnosisTemplate string
	Example           string
}

// ErrorFamily groups error types for reporting.
type ErrorFamily string

const (
	FamilyLogicalStructure ErrorFamily = "logical_structure"
	FamilyScopeIssues      ErrorFamily = "scope_issues"
	FamilyStrengthIssues   ErrorFamily = "strength_issues"
	FamilyCausalIssues     ErrorFamily = "causal_issues"
	FamilySurfaceMatching  ErrorFamily = "surface_matching"
	FamilyComprehension    ErrorFamily = "comprehension"
)

// UnknownErrorType is returned by FormatDiagnosis for unregistered codes.
const UnknownErrorType = "Unknown error type"

var errorFamilies = []struct {
	family ErrorFamily
	codes  []string
}{
	{FamilyLogicalStructure, []string{"direction_reversed", "necessary_vs_sufficient", "part_vs_whole"}},
	{FamilyScopeIssues, []string{"scope_shift", "off_topic", "wrong_target"}},
	{FamilyStrengthIssues, []string{"too_strong", "too_weak"}},
	{FamilyCausalIssues, []string{"correlation_causation", "temporal_confusion"}},
	{FamilySurfaceMatching, []string{"keyword_match", "extreme_language"}},
	{FamilyComprehension, []string{"missing_link"}},
}

// legacyLabels names error codes that older analyses produced before the
// taxonomy settled. Stats still show them readably.
var legacyLabels = map[string]string{
	"wrong_flaw":           "Wrong flaw type",
	"frequency_jumped":     "Quantity shift",
	"irrelevant":           "Irrelevant",
	"incomplete_bridge":    "Incomplete bridge",
	"affirming_consequent": "Affirming consequent",
	"degree_not_stance":    "Degree not stance",
	"is_vs_ought":          "Is vs ought",
}

var (
	registry   map[string]*ErrorType
	familyByID map[string]ErrorFamily
	codes      []string
)

func init() {
	registry = make(map[string]*ErrorType, len(seedErrorTypes))
	codes = make([]string, 0, len(seedErrorTypes))
	for i := range seedErrorTypes {
		e := &seedErrorTypes[i]
		registry[e.Code] = e
		codes = append(codes, e.Code)
	}

	familyByID = make(map[string]ErrorFamily, len(seedErrorTypes))
	for _, f := range errorFamilies {
		for _, c := range f.codes {
			familyByID[c] = f.family
		}
	}
}

// GetErrorType returns the error type registered under code.
func GetErrorType(code string) (*ErrorType, bool) {
	e, ok := registry[code]
	return e, ok
}

// ErrorCodes returns every error code in declaration order.
func ErrorCodes() []string {
	return append([]string(nil), codes...)
}

// AllErrorTypes returns every error type in declaration order.
func AllErrorTypes() []*ErrorType {
	out := make([]*ErrorType, 0, len(codes))
	for _, c := range codes {
		out = append(out, registry[c])
	}
	return out
}

// FormatDiagnosis fills the diagnosis template of code. Each {key} is
// replaced once, at its first occurrence.
func FormatDiagnosis(code string, vars map[string]string) string {
	e, ok := registry[code]
	if !ok {
		return UnknownErrorType
	}
	out := e.DiagnosisTemplate
	for k, v := range vars {
		out = strings.Replace(out, "{"+k+"}", v, 1)
	}
	return out
}

// FamilyOfError returns the family of code.
func FamilyOfError(code string) (ErrorFamily, bool) {
	f, ok := familyByID[code]
	return f, ok
}

// ErrorFamilies returns the codes of each family, keyed by family.
func ErrorFamilies() map[ErrorFamily][]string {
	out := make(map[ErrorFamily][]string, len(errorFamilies))
	for _, f := range errorFamilies {
		out[f.family] = append([]string(nil), f.codes...)
	}
	return out
}

// DisplayLabel returns a human-readable label for an error code: the
// taxonomy name, then a legacy label, then the code itself.
func DisplayLabel(code string) string {
	if e, ok := registry[code]; ok {
		return e.Name
	}
	if l, ok := legacyLabels[code]; ok {
		return l
	}
	return code
}
