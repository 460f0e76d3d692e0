package prompt

// KIQ produces the Key Investor Questions set from the underwriting
// analysis. The two mandatory questions are restated in the prompt so the
// model numbers its content-derived questions after them; the domain layer
// seeds the mandatory pair itself regardless of what comes back.
var KIQ = Template{
	ID:     "kiq_v1",
	System: "You are an industry expert preparing due diligence questions for an investment opportunity.",
	User: `Based on the following pre-due diligence analysis findings:

%s

Generate exactly 15 due diligence questions, including the two mandatory questions below. Each question should be followed by an 'A:' line for responses. Begin with these mandatory questions:

1. What are they offering as compensation for the contribution of our efforts, networks and capital introduction sources?
A:

2. Does the company have any open litigation, or threats of litigation for any unresolved open matters as disputes with counter parts on agreements?
A:

Generate the remaining 13 questions following this distribution:

WEAKNESSES INVESTIGATION (3 questions)
- Questions targeting competitive disadvantages identified in the analysis
- Queries about gaps in market positioning
- Questions about operational vulnerabilities

COMPETITIVE ADVANTAGE VERIFICATION (3 questions)
- Questions challenging claimed market differentiators
- Queries about sustainability of advantages
- Questions about defensive moat strength

FINANCIAL SCRUTINY (3 questions)
- Questions about projection assumptions
- Queries about capital structure decisions
- Questions about revenue model sustainability

RISK MITIGATION (2 questions)
- Questions about identified risk factors
- Questions about risk management strategies

DUE DILIGENCE GAPS (2 questions)
- Questions about missing critical information
- Questions about verification needs

Format all 15 questions as a single numbered list (1-15), each followed by 'A:' on a new line. Begin immediately with questions without any introduction or context statements.`,
}
