package prompt

// Underwrite produces the structured pre-due-diligence underwriting
// analysis. Section and subsection names are load-bearing: downstream
// parsing and the stored report format depend on them.
var Underwrite = Template{
	ID:     "underwrite_v1",
	System: "You are an industry expert conducting initial pre-due diligence screening of investment opportunities.",
	User: `Provide only a direct structured analysis without any introductory sentences for the following investment opportunity. Begin immediately with the analysis sections using the information from these quotations and your comprehensive market knowledge:

%s

1. LACK OF DURABLE COMPETITIVE ADVANTAGES

Technological Differentiation
- [Point 1]
- [Point 2]
- [Point 3]

Market Position
- [Point 1]
- [Point 2]
- [Point 3]

Economic Moat Factors
- [Point 1]
- [Point 2]
- [Point 3]

Revenue Security
- [Point 1]
- [Point 2]
- [Point 3]

Regulatory & Environmental
- [Point 1]
- [Point 2]
- [Point 3]

2. INVESTOR RED FLAGS

Investment Structure
- [Point 1]
- [Point 2]
- [Point 3]

Management & Execution
- [Point 1]
- [Point 2]
- [Point 3]

Financial Considerations
- [Point 1]
- [Point 2]
- [Point 3]

Market & Competition
- [Point 1]
- [Point 2]
- [Point 3]

Due Diligence Priorities
- [Point 1]
- [Point 2]
- [Point 3]

CONCLUSION

Provide a 2-3 sentence conclusion highlighting primary competitive vulnerabilities, most critical investor concerns, and recommendation on proceeding with full due diligence. Format as a single paragraph without bullet points.

Formatting Rules:
- Use consistent hyphen (-) for all bullet points
- Leave one blank line between major sections
- No asterisks or other bullet point styles
- No indentation for bullet points
- Capitalize all major section headers
- Use one blank line between subsections
- Format conclusion as a single paragraph without bullets`,
}
