package knowledge

import (
	"fmt"
	"strconv"
	"strings"
)

// Reserved payload keys in the vector index
const (
	// TextKey holds the embedded text inside the metadata payload
	TextKey = "text"
	// TimestampKey holds the ingestion unix timestamp used for recency boosting
	TimestampKey = "unix_timestamp"
)

// SourceType knowledge source kind
type SourceType string

const (
	SourceTicket  SourceType = "ticket"
	SourceOrder   SourceType = "order"
	SourceProduct SourceType = "product"
	SourceWebPage SourceType = "web_page"
)

// Metadata chunk metadata stored alongside the vector
type Metadata struct {
	OrgID          string
	SourceType     SourceType
	SourceID       string
	SourceURL      string
	Subject        string
	UnixTimestamp  int64
	ChunkIndex     int
	ExtractionMode string
}

// Chunk a unit of knowledge
//
// ID is stable across re-ingestion of the same source item so that a
// re-upsert overwrites instead of duplicating.
type Chunk struct {
	ID       string
	Text     string
	Metadata Metadata
}

// ToPayload flattens metadata and text into the index payload shape
func (m Metadata) ToPayload(text string) map[string]any {
	payload := map[string]any{
		TextKey:       text,
		TimestampKey:  m.UnixTimestamp,
		"org_id":      m.OrgID,
		"source_type": string(m.SourceType),
		"source_id":   m.SourceID,
	}
	if m.SourceURL != "" {
		payload["source_url"] = m.SourceURL
	}
	if m.Subject != "" {
		payload["subject"] = m.Subject
	}
	if m.ChunkIndex > 0 {
		payload["chunk_index"] = int64(m.ChunkIndex)
	}
	if m.ExtractionMode != "" {
		payload["extraction_mode"] = m.ExtractionMode
	}
	return payload
}

// ChunkFromPayload rebuilds a chunk from an index record
func ChunkFromPayload(id string, payload map[string]any) Chunk {
	return Chunk{
		ID:   id,
		Text: payloadString(payload, TextKey),
		Metadata: Metadata{
			OrgID:          payloadString(payload, "org_id"),
			SourceType:     SourceType(payloadString(payload, "source_type")),
			SourceID:       payloadString(payload, "source_id"),
			SourceURL:      payloadString(payload, "source_url"),
			Subject:        payloadString(payload, "subject"),
			UnixTimestamp:  payloadInt(payload, TimestampKey),
			ChunkIndex:     int(payloadInt(payload, "chunk_index")),
			ExtractionMode: payloadString(payload, "extraction_mode"),
		},
	}
}

// payloadString reads a string field, tolerating numeric ids
func payloadString(payload map[string]any, key string) string {
	switch v := payload[key].(type) {
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// payloadInt reads an integer field; JSON round-trips deliver float64
func payloadInt(payload map[string]any, key string) int64 {
	switch v := payload[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case float64:
		return int64(v)
	case float32:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return n
	default:
		return 0
	}
}

// Namespace returns the index partition for an organization
func Namespace(orgID string) string {
	return "org_" + orgID
}
