package discussion

// Phase is one of the ten fixed discussion stages.
type Phase string

const (
	PhaseIntroduction           Phase = "introduction"
	PhaseProblemAnalysis        Phase = "problem_analysis"
	PhaseRootCause              Phase = "root_cause"
	PhaseStakeholderPerspective Phase = "stakeholder_perspective"
	PhaseSolutionGeneration     Phase = "solution_generation"
	PhaseCriticalEvaluation     Phase = "critical_evaluation"
	PhaseRiskAssessment         Phase = "risk_assessment"
	PhaseImplementationPlanning Phase = "implementation_planning"
	PhaseSuccessMetrics         Phase = "success_metrics"
	PhaseSynthesis              Phase = "synthesis"

	// PhaseUserIntervention tags out-of-band intervention turns; it is not
	// part of the ten-phase sequence and never consumes turn budget.
	PhaseUserIntervention Phase = "user_intervention"
)

var phaseOrder = [...]Phase{
	PhaseIntroduction,
	PhaseProblemAnalysis,
	PhaseRootCause,
	PhaseStakeholderPerspective,
	PhaseSolutionGeneration,
	PhaseCriticalEvaluation,
	PhaseRiskAssessment,
	PhaseImplementationPlanning,
	PhaseSuccessMetrics,
	PhaseSynthesis,
}

var phaseInstructions = map[Phase]string{
	PhaseIntroduction:           "Introduce yourself briefly and state your initial stance on the topic from your area of expertise.",
	PhaseProblemAnalysis:        "Analyze the problem. What exactly is going on, and which aspects matter most from your perspective?",
	PhaseRootCause:              "Dig into root causes. Keep asking why: what underlying mechanisms produce this problem?",
	PhaseStakeholderPerspective: "Consider the stakeholders. Who is affected, what do they need, and where do their interests conflict?",
	PhaseSolutionGeneration:     "Generate solutions. Propose concrete directions, even unconventional ones.",
	PhaseCriticalEvaluation:     "Critically evaluate the solutions on the table. Which hold up, which fall apart, and why?",
	PhaseRiskAssessment:         "Assess risks. Explore what-if scenarios: what could go wrong and how severe would it be?",
	PhaseImplementationPlanning: "Plan implementation. What are the first steps, the dependencies, and the owners?",
	PhaseSuccessMetrics:         "Define success metrics. How will we know this worked, and when do we measure?",
	PhaseSynthesis:              "Synthesize the discussion. Pull the threads together into a shared conclusion.",
}

// PhaseForTurn maps a 1-based turn number onto the fixed ten-phase
// sequence. Numbers beyond the sequence map to synthesis as a defensive
// fallback.
func PhaseForTurn(n int) Phase {
	if n < 1 {
		return PhaseIntroduction
	}
	if n > len(phaseOrder) {
		return PhaseSynthesis
	}
	return phaseOrder[n-1]
}

// Instruction returns the fixed natural-language intent of the phase.
func (p Phase) Instruction() string {
	if instr, ok := phaseInstructions[p]; ok {
		return instr
	}
	return phaseInstructions[PhaseSynthesis]
}
