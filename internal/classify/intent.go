package classify

import (
	"regexp"
	"strings"
)

// Intent is the inferred business purpose of a document.
type Intent struct {
	PrimaryType string   `json:"primary_type"`
	Confidence  float64  `json:"confidence"`
	Subtype     string   `json:"subtype,omitempty"`
	Urgency     string   `json:"urgency"`
	KeyEntities []string `json:"key_entities"`
}

var (
	// productRe captures product identifiers mentioned as "product X-123".
	productRe = regexp.MustCompile(`product[s]?\s+([A-Za-z0-9-]+)`)

	// amountRe matches currency amounts with optional thousands separators
	// and a two-digit fraction.
	amountRe = regexp.MustCompile(`\$?\d+(?:,\d{3})*(?:\.\d{2})?`)
)

// severityWords escalate a complaint to the severe subtype.
var severityWords = []string{"urgent", "immediate", "serious", "critical"}

// policyDomains are the recognized regulation subtypes, checked in order.
var policyDomains = []string{"safety", "environmental", "financial", "data protection"}

// intentRule is one entry of the ordered classification rule list. Rules are
// evaluated in sequence and each matching rule overwrites the accumulator's
// primary type and confidence, so on multi-indicator content the last
// matching rule wins. That overwrite order is observed production behavior
// and must not be collapsed into a single-best-match pass.
type intentRule struct {
	primaryType string
	confidence  float64
	indicators  []string
	apply       func(content, lowered string, intent *Intent)
}

var intentRules = []intentRule{
	{
		primaryType: "RFQ",
		confidence:  0.9,
		indicators:  []string{"request for quote", "rfq", "price inquiry", "quotation request"},
		apply: func(content, _ string, intent *Intent) {
			for _, m := range productRe.FindAllStringSubmatch(content, -1) {
				intent.KeyEntities = append(intent.KeyEntities, m[1])
			}
		},
	},
	{
		primaryType: "Invoice",
		confidence:  0.9,
		indicators:  []string{"invoice", "bill", "payment", "amount due"},
		apply: func(content, _ string, intent *Intent) {
			intent.KeyEntities = append(intent.KeyEntities, amountRe.FindAllString(content, -1)...)
		},
	},
	{
		primaryType: "Complaint",
		confidence:  0.8,
		indicators:  []string{"complaint", "issue", "problem", "dissatisfied", "unhappy"},
		apply: func(_, lowered string, intent *Intent) {
			if containsAny(lowered, severityWords) {
				intent.Subtype = "severe"
				intent.Urgency = "high"
			}
		},
	},
	{
		primaryType: "Regulation",
		confidence:  0.85,
		indicators:  []string{"regulation", "policy", "compliance", "directive", "law"},
		apply: func(_, lowered string, intent *Intent) {
			for _, domain := range policyDomains {
				if strings.Contains(lowered, domain) {
					intent.Subtype = domain
					break
				}
			}
		},
	},
}

// ClassifyIntent runs the ordered rule list over the content and returns the
// accumulated intent. Content with no matching indicators yields primary
// type "unknown" with zero confidence. Classification never fails.
func ClassifyIntent(content string) Intent {
	lowered := strings.ToLower(content)

	intent := Intent{
		PrimaryType: "unknown",
		Confidence:  0.0,
		Urgency:     "normal",
		KeyEntities: []string{},
	}

	for _, rule := range intentRules {
		if !containsAny(lowered, rule.indicators) {
			continue
		}
		intent.PrimaryType = rule.primaryType
		intent.Confidence = rule.confidence
		if rule.apply != nil {
			rule.apply(content, lowered, &intent)
		}
	}

	return intent
}

// containsAny reports whether s contains any of the given substrings.
func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
