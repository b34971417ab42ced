package assist

import (
	"fmt"
	"strings"

	"github.com/supportbrain/backend/internal/domain/knowledge"
	"github.com/supportbrain/backend/internal/infrastructure/config"
)

// Tier which response path produced a widget message
type Tier string

const (
	TierNoInput  Tier = "no_input"
	TierFull     Tier = "full"
	TierDegraded Tier = "degraded"
	TierNoResult Tier = "no_result"
	TierError    Tier = "error"
)

// Widget messages
const (
	NoInputMessage       = "⚠️ No ticket data received. Make sure the URL includes: &subject={{ticket.subject}}"
	NoResultMessage      = "🔍 No similar past tickets found."
	EmptyMatchesMessage  = "🔍 Found matches but they lacked content."
	noDescriptionMarker  = "(No description provided)"
	degradedHeader       = "**🟡 Smart Assist (Search Results)**\n\n"
	degradedEntrySep     = "\n\n---\n\n"
	widgetResponseFormat = "text"
)

// WidgetResponse short pre-formatted message for the ticketing sidebar
type WidgetResponse struct {
	Type string `json:"type"`
	Text string `json:"text"`
	Tier Tier   `json:"-"`
}

// Formatter renders widget messages per tier
type Formatter struct {
	high            float64
	gate            float64
	maxReferences   int
	previewChars    int
	minPreviewChars int
}

// NewFormatter creates a formatter
func NewFormatter(cfg *config.AssistConfig) *Formatter {
	return &Formatter{
		high:            cfg.HighConfidence,
		gate:            cfg.ConfidenceGate,
		maxReferences:   cfg.MaxReferences,
		previewChars:    cfg.PreviewChars,
		minPreviewChars: cfg.MinPreviewChars,
	}
}

// NoInput instructional message when no ticket text resolved
func (f *Formatter) NoInput() WidgetResponse {
	return newWidgetResponse(TierNoInput, NoInputMessage)
}

// NoResult retrieval produced nothing usable
func (f *Formatter) NoResult() WidgetResponse {
	return newWidgetResponse(TierNoResult, NoResultMessage)
}

// Error catch-all
func (f *Formatter) Error(detail string) WidgetResponse {
	return newWidgetResponse(TierError, "⚠️ Error: "+detail)
}

// Full synthesized draft with a confidence marker and references
func (f *Formatter) Full(result knowledge.SynthesisResult) WidgetResponse {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s Smart Assist** (%s)\n\n%s", f.confidenceMarker(result.Confidence), percent(result.Confidence), result.Draft)

	refs := knowledge.UniqueReferences(result.SourceReferences)
	if len(refs) > f.maxReferences {
		refs = refs[:f.maxReferences]
	}
	if len(refs) > 0 {
		short := make([]string, len(refs))
		for i, ref := range refs {
			short[i] = strings.Replace(ref, "Ticket #", "#", 1)
		}
		b.WriteString("\n\n**Refs:** ")
		b.WriteString(strings.Join(short, ", "))
	}
	return newWidgetResponse(TierFull, b.String())
}

// Degraded search-only answer built from retrieval matches
func (f *Formatter) Degraded(matches []knowledge.Match) WidgetResponse {
	if len(matches) == 0 {
		return f.NoResult()
	}

	entries := make([]string, 0, f.maxReferences)
	for _, m := range matches {
		preview, ok := f.preview(m.Chunk.Text)
		if !ok {
			continue
		}
		id := m.Chunk.Metadata.SourceID
		if id == "" {
			id = "?"
		}
		entries = append(entries, fmt.Sprintf("🎫 **#%s** (%s)\n%s", id, percent(m.Score), preview))
		if len(entries) >= f.maxReferences {
			break
		}
	}

	if len(entries) == 0 {
		return newWidgetResponse(TierDegraded, EmptyMatchesMessage)
	}
	return newWidgetResponse(TierDegraded, degradedHeader+strings.Join(entries, degradedEntrySep))
}

// preview emphasizes labels and truncates; false when the content is unusable
func (f *Formatter) preview(text string) (string, bool) {
	content := strings.TrimSpace(text)
	if strings.Contains(content, noDescriptionMarker) || len([]rune(content)) < f.minPreviewChars {
		return "", false
	}

	content = strings.ReplaceAll(content, "Subject:", "**Subject:**")
	content = strings.ReplaceAll(content, "Excerpt:", "\n**Excerpt:**")

	if runes := []rune(content); len(runes) > f.previewChars {
		content = string(runes[:f.previewChars]) + "..."
	}
	return content, true
}

func (f *Formatter) confidenceMarker(confidence float64) string {
	switch {
	case confidence >= f.high:
		return "🟢"
	case confidence >= f.gate:
		return "🟡"
	default:
		return "🔴"
	}
}

func percent(v float64) string {
	return fmt.Sprintf("%.0f%%", v*100)
}

func newWidgetResponse(tier Tier, text string) WidgetResponse {
	return WidgetResponse{Type: widgetResponseFormat, Text: text, Tier: tier}
}
