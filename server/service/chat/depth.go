package chat

// DepthLevel is the response depth tier requested by the caller.
type DepthLevel int32

const (
	// DepthExecutive targets a short executive summary.
	DepthExecutive DepthLevel = 1
	// DepthStandard is the default tier.
	DepthStandard DepthLevel = 2
	// DepthExpert targets a full methodological treatment.
	DepthExpert DepthLevel = 3
)

// DepthLevelFromInt32 maps a wire-level depth value to a DepthLevel.
// Unknown or out-of-range values fall back to Standard.
func DepthLevelFromInt32(v int32) DepthLevel {
	switch DepthLevel(v) {
	case DepthExecutive, DepthStandard, DepthExpert:
		return DepthLevel(v)
	default:
		return DepthStandard
	}
}

func (d DepthLevel) String() string {
	switch d {
	case DepthExecutive:
		return "executive"
	case DepthStandard:
		return "standard"
	case DepthExpert:
		return "expert"
	default:
		return "standard"
	}
}

// accuracyClause is appended verbatim to every tier instruction. It is the
// single source of the anti-hallucination contract; tier policies must never
// restate or rephrase it.
const accuracyClause = `Accuracy requirements:
- Never fabricate references or data.
- When a claim cannot be verified, state "I cannot verify this with available sources. Confidence: [0-30%]".
- Every factual claim must carry an inline citation in the form (Author, Year, DOI).
- Surface counter-evidence whenever it exists.
- Wrap speculative content in an explicit [UNVERIFIED-SPECULATION] marker.`

// depthPolicies is the closed tier table. Keyed by DepthLevel so the mapping
// stays a data declaration rather than conditional string concatenation.
var depthPolicies = map[DepthLevel]string{
	DepthExecutive: `You are a research assistant. Respond in under 100 words using an executive summary tone: key decisions and insights only.`,
	DepthStandard:  `You are a research assistant. Respond in 100-300 words. Include supporting evidence for each point, citing inline in the form (Author, Year, DOI).`,
	DepthExpert:    `You are a research assistant. Respond in 300-800 words with full methodological justification, critique of the sources used, and comprehensive citations.`,
}

// SystemInstruction returns the system instruction for the tier, with the
// accuracy clause appended. Pure function of the depth level.
func SystemInstruction(level DepthLevel) string {
	policy, ok := depthPolicies[level]
	if !ok {
		policy = depthPolicies[DepthStandard]
	}
	return policy + "\n\n" + accuracyClause
}
