package classify

// QuestionType is the LSAT question type inferred from a question stem.
type QuestionType string

const (
	TypeWeaken               QuestionType = "weaken"
	TypeStrengthen           QuestionType = "strengthen"
	TypeAssumptionNecessary  QuestionType = "assumption_necessary"
	TypeAssumptionSufficient QuestionType = "assumption_sufficient"
	TypeFlaw                 QuestionType = "flaw"
	TypePrincipleApply       QuestionType = "principle_apply"
	TypePrincipleJustify     QuestionType = "principle_justify"
	TypeEvaluate             QuestionType = "evaluate"
	TypeMustBeTrue           QuestionType = "must_be_true"
	TypeMostSupported        QuestionType = "most_supported"
	TypeParallel             QuestionType = "parallel"
	TypeParallelFlaw         QuestionType = "parallel_flaw"
	TypePointAtIssue         QuestionType = "point_at_issue"
	TypeResolve              QuestionType = "resolve"
	TypeMainConclusion       QuestionType = "main_conclusion"
	TypeRole                 QuestionType = "role"
	TypeMethodOfReasoning    QuestionType = "method_of_reasoning"
	TypeExcept               QuestionType = "except"
	TypeUnknown              QuestionType = "unknown"
)

// Family groups question types that share a solving approach.
type Family string

const (
	FamilyRiverCrossing     Family = "river_crossing"
	FamilyInference         Family = "inference"
	FamilyStructureMatching Family = "structure_matching"
	FamilyDualStructure     Family = "dual_structure"
	FamilyArgumentStructure Family = "argument_structure"
)

// Method is a diagramming or explanation technique.
type Method string

const (
	MethodRiverCrossing   Method = "river_crossing"
	MethodRiverDualBridge Method = "river_dual_bridge"
	MethodRiverFork       Method = "river_fork"
	MethodHighlight       Method = "highlight"
	MethodLego            Method = "lego"
	MethodSubstitution    Method = "substitution"
	MethodVenn            Method = "venn"
	MethodFormula         Method = "formula"
	MethodAbstractMapping Method = "abstract_mapping"
	MethodParallelBridge  Method = "parallel_bridge"
	MethodDisputeLocate   Method = "dispute_locate"
	MethodArgumentChain   Method = "argument_chain"
	MethodNumberVisual    Method = "number_visual"
	MethodExtremeTest     Method = "extreme_test"
)

// Classification is the result of classifying a question stem.
type Classification struct {
	Type           QuestionType `json:"type"`
	Family         Family       `json:"family"`
	PrimaryMethods []Method     `json:"primaryMethods"`
}

var allQuestionTypes = []QuestionType{
	TypeWeaken, TypeStrengthen, TypeAssumptionNecessary, TypeAssumptionSufficient,
	TypeFlaw, TypePrincipleApply, TypePrincipleJustify, TypeEvaluate,
	TypeMustBeTrue, TypeMostSupported, TypeParallel, TypeParallelFlaw,
	TypePointAtIssue, TypeResolve, TypeMainConclusion, TypeRole,
	TypeMethodOfReasoning, TypeExcept, TypeUnknown,
}

var allFamilies = []Family{
	FamilyRiverCrossing, FamilyInference, FamilyStructureMatching,
	FamilyDualStructure, FamilyArgumentStructure,
}

var allMethods = []Method{
	MethodRiverCrossing, MethodRiverDualBridge, MethodRiverFork, MethodHighlight,
	MethodLego, MethodSubstitution, MethodVenn, MethodFormula,
	MethodAbstractMapping, MethodParallelBridge, MethodDisputeLocate,
	MethodArgumentChain, MethodNumberVisual, MethodExtremeTest,
}

// AllQuestionTypes returns every question type, unknown last.
func AllQuestionTypes() []QuestionType {
	return append([]QuestionType(nil), allQuestionTypes...)
}

// AllFamilies returns every question family.
func AllFamilies() []Family {
	return append([]Family(nil), allFamilies...)
}

// AllMethods returns every method in presentation order.
func AllMethods() []Method {
	return append([]Method(nil), allMethods...)
}

// IsValid reports whether m is one of the known methods.
func (m Method) IsValid() bool {
	for _, known := range allMethods {
		if m == known {
			return true
		}
	}
	return false
}
