package ingest

import (
	"fmt"
	"strings"

	"github.com/supportbrain/backend/internal/domain/connector"
	"github.com/supportbrain/backend/internal/infrastructure/config"
	"github.com/supportbrain/backend/internal/infrastructure/pii"
)

// ExtractionMode how a ticket was turned into a knowledge document
type ExtractionMode string

const (
	// ModePaired first customer message plus an agent resolution
	ModePaired ExtractionMode = "paired"
	// ModeQuestionOnly customer message without any agent reply
	ModeQuestionOnly ExtractionMode = "question_only"
	// ModeFallback no customer message; question taken from excerpt or subject
	ModeFallback ExtractionMode = "fallback"
	// ModeSkipped nothing left after scrubbing
	ModeSkipped ExtractionMode = "skipped"
)

const closedContext = "### CONTEXT: (Ticket Closed)"

// TicketExtractor builds question/resolution documents from closed tickets
// A single threshold decides what counts as a resolution: the last agent
// message longer than MinResolutionChars, else the last agent message.
type TicketExtractor struct {
	minResolutionChars int
	scrubber           *pii.Scrubber
}

// NewTicketExtractor creates an extractor
func NewTicketExtractor(cfg *config.IngestConfig, scrubber *pii.Scrubber) *TicketExtractor {
	return &TicketExtractor{
		minResolutionChars: cfg.MinResolutionChars,
		scrubber:           scrubber,
	}
}

// Extract returns the scrubbed document text and its mode
// full may be nil when the detailed fetch failed; summary fields are used then.
func (e *TicketExtractor) Extract(summary connector.Ticket, full *connector.Ticket) (string, ExtractionMode) {
	var messages []connector.Message
	if full != nil {
		messages = full.Messages
	}

	question := e.question(messages)
	resolution := e.resolution(messages)

	mode := ModePaired
	switch {
	case question == "":
		mode = ModeFallback
		question = firstNonBlank(summary.Excerpt, summary.Subject, "No content")
	case resolution == "":
		mode = ModeQuestionOnly
	}

	var b strings.Builder
	fmt.Fprintf(&b, "### QUESTION: %s\n%s\n\n", summary.Subject, strings.TrimSpace(question))
	if resolution != "" {
		b.WriteString("### RESOLUTION:\n")
		b.WriteString(resolution)
	} else {
		b.WriteString(closedContext)
	}

	text := e.scrubber.Scrub(b.String())
	if strings.TrimSpace(text) == "" {
		return "", ModeSkipped
	}
	return text, mode
}

// question first customer message
func (e *TicketExtractor) question(messages []connector.Message) string {
	for _, m := range messages {
		if m.IsCustomer() {
			return plainBody(m)
		}
	}
	return ""
}

// resolution last substantial agent message, falling back to the last one
func (e *TicketExtractor) resolution(messages []connector.Message) string {
	var last *connector.Message
	for i := len(messages) - 1; i >= 0; i-- {
		m := messages[i]
		if !m.IsAgent() {
			continue
		}
		if last == nil {
			last = &messages[i]
		}
		if body := strings.TrimSpace(plainBody(m)); len(body) > e.minResolutionChars {
			return body
		}
	}
	if last == nil {
		return ""
	}
	return strings.TrimSpace(plainBody(*last))
}

// plainBody text or stripped text; HTML bodies are not used for knowledge
func plainBody(m connector.Message) string {
	if m.BodyText != "" {
		return m.BodyText
	}
	return m.StrippedText
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
