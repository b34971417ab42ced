package knowledge

// Match a retrieval hit, valid for one query only
type Match struct {
	Chunk        Chunk
	Score        float64 // raw cosine similarity
	BoostedScore float64 // after recency boost, used for ordering only
}

// Reference returns the citation label for the match
func (m Match) Reference() string {
	md := m.Chunk.Metadata
	switch {
	case md.SourceType == SourceTicket && md.SourceID != "":
		return "Ticket #" + md.SourceID
	case md.SourceURL != "":
		return md.SourceURL
	case md.SourceID != "":
		return md.SourceID
	default:
		return m.Chunk.ID
	}
}

// MaxRawScore returns the best unboosted score among matches
func MaxRawScore(matches []Match) float64 {
	maxScore := 0.0
	for _, m := range matches {
		if m.Score > maxScore {
			maxScore = m.Score
		}
	}
	return maxScore
}

// SynthesisResult structured draft produced by the language model
type SynthesisResult struct {
	Draft            string   `json:"draft"`
	Confidence       float64  `json:"confidence"`
	SourceReferences []string `json:"source_references"`
}

// UniqueReferences dedupes refs keeping first appearance order
func UniqueReferences(refs []string) []string {
	seen := make(map[string]struct{}, len(refs))
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		out = append(out, ref)
	}
	return out
}
