package assist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/supportbrain/backend/internal/domain/connector"
	"github.com/supportbrain/backend/internal/domain/knowledge"
	"github.com/supportbrain/backend/internal/infrastructure/config"
	"github.com/supportbrain/backend/internal/infrastructure/log"
	"github.com/supportbrain/backend/internal/infrastructure/tokens"
)

var errEmptyDraft = errors.New("model returned an empty draft")

// SynthesisInput everything the model is allowed to see
type SynthesisInput struct {
	TicketText    string
	CustomerEmail string
	Namespace     string
	Matches       []knowledge.Match
	Orders        []connector.Order
}

// modelOutput accepts both key spellings models tend to produce
type modelOutput struct {
	Draft            string   `json:"draft"`
	SuggestedDraft   string   `json:"suggested_draft"`
	Confidence       *float64 `json:"confidence"`
	ConfidenceScore  *float64 `json:"confidence_score"`
	SourceReferences []string `json:"source_references"`
}

// Synthesizer turns retrieval matches into a grounded draft
type Synthesizer struct {
	model            knowledge.ChatModel
	estimator        *tokens.Estimator
	gate             float64
	maxContextTokens int
	logger           *slog.Logger
}

// NewSynthesizer creates a synthesizer; estimator may be nil to skip truncation
func NewSynthesizer(model knowledge.ChatModel, estimator *tokens.Estimator, cfg *config.AssistConfig) *Synthesizer {
	return &Synthesizer{
		model:            model,
		estimator:        estimator,
		gate:             cfg.ConfidenceGate,
		maxContextTokens: cfg.MaxContextTokens,
		logger:           log.NewModuleLogger("assist", "synthesizer"),
	}
}

// Synthesize never fails: errors become a zero-confidence apology result
func (s *Synthesizer) Synthesize(ctx context.Context, in SynthesisInput) knowledge.SynthesisResult {
	maxScore := knowledge.MaxRawScore(in.Matches)
	lowScore := maxScore < s.gate

	contexts := make([]string, 0, len(in.Matches))
	refs := make([]string, 0, len(in.Matches))
	for _, m := range in.Matches {
		label := m.Reference()
		contexts = append(contexts, label+": "+s.truncate(m.Chunk.Text))
		refs = append(refs, label)
	}

	system := buildSystemPrompt(lowScore, s.gate)
	user := buildUserPrompt(in.TicketText, maxScore, contexts, in.Orders)

	raw, err := s.model.CompleteJSON(ctx, system, user)
	if err != nil {
		return s.failure(in.Namespace, err)
	}

	result, err := parseModelOutput(raw)
	if err != nil {
		return s.failure(in.Namespace, err)
	}

	if lowScore {
		if !strings.HasPrefix(result.Draft, UncertaintyMarker) {
			result.Draft = UncertaintyMarker + "\n\n" + result.Draft
		}
		if result.Confidence > s.gate {
			result.Confidence = s.gate
		}
	}

	result.SourceReferences = knowledge.UniqueReferences(result.SourceReferences)
	if len(result.SourceReferences) == 0 {
		result.SourceReferences = knowledge.UniqueReferences(refs)
	}

	s.logger.Info("Draft synthesized",
		"namespace", in.Namespace,
		"max_raw_score", maxScore,
		"confidence", result.Confidence,
		"references", len(result.SourceReferences),
	)
	return result
}

func (s *Synthesizer) truncate(text string) string {
	if s.estimator == nil || s.maxContextTokens <= 0 {
		return text
	}
	return s.estimator.Truncate(text, s.maxContextTokens)
}

func (s *Synthesizer) failure(namespace string, err error) knowledge.SynthesisResult {
	s.logger.Error("Synthesis failed", "namespace", namespace, "error", err)
	return apologyResult(err)
}

// apologyResult zero-confidence result carrying the error summary
func apologyResult(err error) knowledge.SynthesisResult {
	return knowledge.SynthesisResult{
		Draft:            fmt.Sprintf("Error generating response: %v", err),
		Confidence:       0,
		SourceReferences: []string{},
	}
}

// parseModelOutput decodes the model's JSON, tolerating a code fence
func parseModelOutput(raw string) (knowledge.SynthesisResult, error) {
	content := stripCodeFence(raw)

	var out modelOutput
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return knowledge.SynthesisResult{}, fmt.Errorf("failed to parse model output: %w", err)
	}

	draft := out.Draft
	if draft == "" {
		draft = out.SuggestedDraft
	}
	draft = strings.TrimSpace(draft)
	if draft == "" {
		return knowledge.SynthesisResult{}, errEmptyDraft
	}

	confidence := 0.0
	switch {
	case out.Confidence != nil:
		confidence = *out.Confidence
	case out.ConfidenceScore != nil:
		confidence = *out.ConfidenceScore
	}

	return knowledge.SynthesisResult{
		Draft:            draft,
		Confidence:       clamp01(confidence),
		SourceReferences: out.SourceReferences,
	}, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
