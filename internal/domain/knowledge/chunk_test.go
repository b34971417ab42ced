package knowledge

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetadataPayloadRoundTrip(t *testing.T) {
	md := Metadata{
		OrgID:          "7",
		SourceType:     SourceTicket,
		SourceID:       "1042",
		SourceURL:      "https://acme.gorgias.com/app/ticket/1042",
		Subject:        "Where is my order?",
		UnixTimestamp:  1700000000,
		ChunkIndex:     2,
		ExtractionMode: "paired",
	}

	payload := md.ToPayload("hello")
	assert.Equal(t, "hello", payload[TextKey])
	assert.Equal(t, int64(1700000000), payload[TimestampKey])

	chunk := ChunkFromPayload("abc", payload)
	assert.Equal(t, "abc", chunk.ID)
	assert.Equal(t, "hello", chunk.Text)
	assert.Equal(t, md, chunk.Metadata)
}

func TestChunkFromPayload_JSONNumbers(t *testing.T) {
	chunk := ChunkFromPayload("x", map[string]any{
		TimestampKey: float64(1700000000),
		"source_id":  float64(99),
	})
	assert.Equal(t, int64(1700000000), chunk.Metadata.UnixTimestamp)
	assert.Equal(t, "99", chunk.Metadata.SourceID)
	assert.Empty(t, chunk.Text)
}

func TestMatchReference(t *testing.T) {
	tests := []struct {
		name string
		md   Metadata
		want string
	}{
		{"ticket", Metadata{SourceType: SourceTicket, SourceID: "12", SourceURL: "https://x"}, "Ticket #12"},
		{"web page", Metadata{SourceType: SourceWebPage, SourceID: "https://x#0", SourceURL: "https://x"}, "https://x"},
		{"id only", Metadata{SourceType: SourceProduct, SourceID: "sku-1"}, "sku-1"},
		{"nothing", Metadata{}, "chunk-id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Match{Chunk: Chunk{ID: "chunk-id", Metadata: tt.md}}
			assert.Equal(t, tt.want, m.Reference())
		})
	}
}

func TestUniqueReferences(t *testing.T) {
	got := UniqueReferences([]string{"Ticket #1", "", "Ticket #2", "Ticket #1", "https://x"})
	assert.Equal(t, []string{"Ticket #1", "Ticket #2", "https://x"}, got)
}

func TestMaxRawScore(t *testing.T) {
	assert.Equal(t, 0.0, MaxRawScore(nil))
	assert.Equal(t, 0.8, MaxRawScore([]Match{{Score: 0.5, BoostedScore: 0.95}, {Score: 0.8, BoostedScore: 0.8}}))
}

func TestIsRateLimited(t *testing.T) {
	assert.True(t, IsRateLimited(fmt.Errorf("embed: %w", ErrRateLimited)))
	assert.False(t, IsRateLimited(fmt.Errorf("boom")))
}
