package model

import "strings"

// IntentType is the coarse category a user turn is routed under.
type IntentType string

const (
	IntentFlightSearch        IntentType = "FLIGHT_SEARCH"
	IntentVisaQuery           IntentType = "VISA_QUERY"
	IntentPolicyQuery         IntentType = "POLICY_QUERY"
	IntentGeneralTravel       IntentType = "GENERAL_TRAVEL"
	IntentClarificationNeeded IntentType = "CLARIFICATION_NEEDED"
)

// intentOrder is the enumeration order used for classification matching.
// Keep FLIGHT_SEARCH first: an ambiguous model response mentioning several
// labels resolves to the earliest one (first-enum-match tie-break).
var intentOrder = []IntentType{
	IntentFlightSearch,
	IntentVisaQuery,
	IntentPolicyQuery,
	IntentGeneralTravel,
	IntentClarificationNeeded,
}

// MatchIntent resolves a raw classifier response to an IntentType by substring
// match in enumeration order. Verbose model output is tolerated; anything
// without a recognizable label falls back to CLARIFICATION_NEEDED.
func MatchIntent(response string) IntentType {
	for _, it := range intentOrder {
		if strings.Contains(response, string(it)) {
			return it
		}
	}
	return IntentClarificationNeeded
}

// IsKnowledgeIntent reports whether the intent routes to the knowledge base.
func (i IntentType) IsKnowledgeIntent() bool {
	switch i {
	case IntentVisaQuery, IntentPolicyQuery, IntentGeneralTravel:
		return true
	}
	return false
}
