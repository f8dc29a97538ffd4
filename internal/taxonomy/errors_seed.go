package taxonomy

// seedErrorTypes is the error taxonomy offered to the model.
// 13 types across 6 families.
var seedErrorTypes = []ErrorType{
	{
		Code:              "direction_reversed",
		Name:              "Direction Reversed",
		Trigger:           "Read A→B as if it also meant B→A",
		DiagnosisTemplate: `You flipped the arrow. "{from}" leads to "{to}", not the other way around.`,
		Example:           `"All dogs are mammals" does not mean "All mammals are dogs"`,
	},
	{
		Code:              "wrong_target",
		Name:              "Wrong Target",
		Trigger:           "Attacked or supported a different part of the argument than the one asked about",
		DiagnosisTemplate: "You're fixing the wrong bridge. The question targets {correct_target}, but you addressed {wrong_target}.",
		Example:           "The question asks about the conclusion, but the choice attacks a premise",
	},
	{
		Code:              "too_strong",
		Name:              "Too Strong",
		Trigger:           "Chose an answer that goes further than the argument needs",
		DiagnosisTemplate: `The argument doesn't need this much. It only requires "{needed}", not "{chosen}".`,
		Example:           `The argument needs "some X are Y" but the choice says "all X are Y"`,
	},
	{
		Code:              "too_weak",
		Name:              "Too Weak",
		Trigger:           "Chose an answer that does not fully close the gap",
		DiagnosisTemplate: `This doesn't go far enough. The gap requires "{needed}", but this only provides "{chosen}".`,
		Example:           "The gap needs a direct connection, the choice only suggests a possibility",
	},
	{
		Code:              "off_topic",
		Name:              "Off Topic",
		Trigger:           "Chose content unrelated to the core of the argument",
		DiagnosisTemplate: "This doesn't touch the argument's core issue. The argument is about {topic}, but this discusses {other_topic}.",
		Example:           "The argument is about cost, the choice is about quality",
	},
	{
		Code:              "scope_shift",
		Name:              "Scope Shift",
		Trigger:           "Mixed up scopes such as time, place or group",
		DiagnosisTemplate: "The conclusion talks about {scope_1}, but you're addressing {scope_2}.",
		Example:           `The conclusion covers "all employees", the choice covers "managers only"`,
	},
	{
		Code:              "necessary_vs_sufficient",
		Name:              "Necessary vs Sufficient",
		Trigger:           "Confused what is required with what is enough",
		DiagnosisTemplate: "Required ≠ Enough. {explanation}",
		Example:           "A license is needed to drive legally, but holding one does not mean you are driving",
	},
	{
		Code:              "part_vs_whole",
		Name:              "Part vs Whole",
		Trigger:           "Assumed what holds for the parts holds for the whole, or the reverse",
		DiagnosisTemplate: "True for some ≠ True for all. {part} having property X doesn't mean {whole} has property X.",
		Example:           "Each brick is light, so the wall is light",
	},
	{
		Code:              "correlation_causation",
		Name:              "Correlation vs Causation",
		Trigger:           "Treated things that happen together as cause and effect",
		DiagnosisTemplate: "Happening together ≠ Causing. {A} and {B} correlate, but that doesn't mean {A} causes {B}.",
		Example:           "Ice cream sales and drownings both rise in summer because of the heat",
	},
	{
		Code:              "missing_link",
		Name:              "Missing Link",
		Trigger:           "Missed the hidden assumption joining premise and conclusion",
		DiagnosisTemplate: "There's a gap you didn't see. The argument assumes {hidden_assumption} to connect {premise} to {conclusion}.",
		Example:           "Bob is a mechanic and the car is noisy, so I will owe Bob money (assumes Bob charges)",
	},
	{
		Code:              "keyword_match",
		Name:              "Keyword Match",
		Trigger:           "Matched surface words without checking the logic",
		DiagnosisTemplate: `Same word ≠ Same logic. "{keyword}" appears in both, but they're discussing different things.`,
		Example:           `Both the stimulus and the choice say "growth" but mean different things`,
	},
	{
		Code:              "extreme_language",
		Name:              "Extreme Language",
		Trigger:           `Missed qualifiers such as "only", "always", "never" or "all"`,
		DiagnosisTemplate: `Watch the extreme words. "{extreme_word}" makes this claim too absolute.`,
		Example:           `"The only way to succeed" versus "one way to succeed"`,
	},
	{
		Code:              "temporal_confusion",
		Name:              "Temporal Confusion",
		Trigger:           "Took an earlier event to be the cause of a later one",
		DiagnosisTemplate: "Before ≠ Because. {event_1} happened before {event_2}, but that doesn't mean it caused {event_2}.",
		Example:           "The rooster crows before sunrise but does not cause it",
	},
}
