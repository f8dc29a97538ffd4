// Package classify maps LSAT question text to a question type, a question
// family and the diagram methods used to explain it.
//
// Everything here is a pure function over immutable tables and is safe for
// concurrent use.
package classify

import "strings"

var typeToFamily = map[QuestionType]Family{
	TypeWeaken:               FamilyRiverCrossing,
	TypeStrengthen:           FamilyRiverCrossing,
	TypeAssumptionNecessary:  FamilyRiverCrossing,
	TypeAssumptionSufficient: FamilyRiverCrossing,
	TypeFlaw:                 FamilyRiverCrossing,
	TypePrincipleApply:       FamilyRiverCrossing,
	TypePrincipleJustify:     FamilyRiverCrossing,
	TypeEvaluate:             FamilyRiverCrossing,
	TypeMustBeTrue:           FamilyInference,
	TypeMostSupported:        FamilyInference,
	TypeParallel:             FamilyStructureMatching,
	TypeParallelFlaw:         FamilyStructureMatching,
	TypePointAtIssue:         FamilyDualStructure,
	TypeResolve:              FamilyDualStructure,
	TypeMainConclusion:       FamilyArgumentStructure,
	TypeRole:                 FamilyArgumentStructure,
	TypeMethodOfReasoning:    FamilyArgumentStructure,
	TypeExcept:               FamilyRiverCrossing,
	TypeUnknown:              FamilyRiverCrossing,
}

// familyMethods lists candidate methods per family, preferred first.
var familyMethods = map[Family][]Method{
	FamilyRiverCrossing:     {MethodRiverCrossing, MethodRiverDualBridge, MethodRiverFork},
	FamilyInference:         {MethodHighlight, MethodLego, MethodVenn, MethodSubstitution},
	FamilyStructureMatching: {MethodFormula, MethodAbstractMapping, MethodVenn},
	FamilyDualStructure:     {MethodParallelBridge, MethodDisputeLocate},
	FamilyArgumentStructure: {MethodArgumentChain},
}

var defaultMethods = []Method{MethodRiverCrossing}

// ClassifyType returns the type of the first default rule that matches the
// trimmed stem, or TypeUnknown.
func ClassifyType(stem string) QuestionType {
	text := strings.TrimSpace(stem)
	if text == "" {
		return TypeUnknown
	}
	return RunRules(defaultRules, text)
}

// FamilyOf returns the family for t. Unmapped types fall back to
// FamilyRiverCrossing.
func FamilyOf(t QuestionType) Family {
	if f, ok := typeToFamily[t]; ok {
		return f
	}
	return FamilyRiverCrossing
}

// CandidateMethods returns the ordered candidate methods for f.
// The returned slice is a copy.
func CandidateMethods(f Family) []Method {
	methods, ok := familyMethods[f]
	if !ok {
		methods = defaultMethods
	}
	return append([]Method(nil), methods...)
}

// ClassifyQuestion classifies a question stem.
func ClassifyQuestion(stem string) Classification {
	return classificationFor(ClassifyType(stem))
}

// ClassifyWithStimulus classifies the stem on its own and only consults the
// stimulus when the stem alone is unknown.
func ClassifyWithStimulus(stem, stimulus string) Classification {
	t := ClassifyType(stem)
	if t == TypeUnknown && strings.TrimSpace(stimulus) != "" {
		t = ClassifyType(stem + " " + stimulus)
	}
	return classificationFor(t)
}

func classificationFor(t QuestionType) Classification {
	f := FamilyOf(t)
	return Classification{
		Type:           t,
		Family:         f,
		PrimaryMethods: CandidateMethods(f),
	}
}
