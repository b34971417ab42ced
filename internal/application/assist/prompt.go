package assist

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/supportbrain/backend/internal/domain/connector"
)

// UncertaintyMarker opens every draft produced from weak matches
const UncertaintyMarker = "UNCERTAIN: I found related info but check these sources first."

const systemPromptBase = `You are the reasoning engine of a customer support team.

Write a specific, accurate and policy-compliant reply draft for the current ticket.

Rules:
1. Never invent facts, policies or order details. Use only the supplied context and order data.
2. If the context is missing or insufficient, say so plainly.
3. Use a professional, empathetic tone.
4. Cite the sources you used by their label, e.g. "Ticket #123".
`

const systemPromptLowScore = `
The best match has a LOW similarity score (below %.2f).
The draft MUST start with exactly: "%s"
`

const systemPromptHighScore = `
The retrieved context is a good match. Use it to draft a clear answer.
`

const systemPromptFormat = `
Respond with ONLY a JSON object with these keys:
  "draft": string, the reply draft
  "confidence": number between 0 and 1
  "source_references": array of source labels you used
`

// buildSystemPrompt system instruction; lowScore requires the uncertainty marker
func buildSystemPrompt(lowScore bool, gate float64) string {
	var b strings.Builder
	b.WriteString(systemPromptBase)
	if lowScore {
		fmt.Fprintf(&b, systemPromptLowScore, gate, UncertaintyMarker)
	} else {
		b.WriteString(systemPromptHighScore)
	}
	b.WriteString(systemPromptFormat)
	return b.String()
}

// buildUserPrompt ticket, score, labelled context and order data
func buildUserPrompt(ticketText string, maxScore float64, contexts []string, orders []connector.Order) string {
	if contexts == nil {
		contexts = []string{}
	}
	if orders == nil {
		orders = []connector.Order{}
	}
	contextJSON, _ := json.MarshalIndent(contexts, "", "  ")
	ordersJSON, _ := json.MarshalIndent(orders, "", "  ")

	return fmt.Sprintf(`Current ticket:
%s

Top similarity score: %.4f

Retrieved context:
%s

Real-time order status:
%s
`, ticketText, maxScore, contextJSON, ordersJSON)
}
