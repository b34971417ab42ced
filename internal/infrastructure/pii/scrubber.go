package pii

import "regexp"

// Replacement tokens
const (
	EmailToken      = "[EMAIL_REDACTED]"
	CreditCardToken = "[CREDIT_CARD_REDACTED]"
	PhoneToken      = "[PHONE_REDACTED]"
	AddressToken    = "[ADDRESS_REDACTED]"
)

var (
	emailPattern      = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	creditCardPattern = regexp.MustCompile(`\b(?:\d[ -]*?){13,16}\b`)
	phonePattern      = regexp.MustCompile(`(?:\+\d{1,3}[-. ]?|\b)\(?\d{3}\)?[-. ]?\d{3}[-. ]?\d{4}\b(?: ?x\d+)?`)
	addressPattern    = regexp.MustCompile(`(?i)\d+\s+(?:[a-z]+|[a-z]+\s[a-z]+)\s+(?:Street|St|Avenue|Ave|Road|Rd|Highway|Hwy|Square|Sq|Trail|Trl|Drive|Dr|Court|Ct|Parkway|Pkwy|Circle|Cir|Boulevard|Blvd)\b`)
)

// Scrubber masks emails, card numbers, phone numbers and street addresses
// Card numbers are matched before phones so a 16-digit run is not split into a phone.
type Scrubber struct {
	rules []rule
}

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// NewScrubber wire provider
func NewScrubber() *Scrubber {
	return &Scrubber{
		rules: []rule{
			{emailPattern, EmailToken},
			{creditCardPattern, CreditCardToken},
			{phonePattern, PhoneToken},
			{addressPattern, AddressToken},
		},
	}
}

// Scrub returns text with every match replaced by its token
func (s *Scrubber) Scrub(text string) string {
	if text == "" {
		return ""
	}
	for _, r := range s.rules {
		text = r.pattern.ReplaceAllString(text, r.replacement)
	}
	return text
}
