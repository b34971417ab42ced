package tokens

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

// offline BPE files; no network at runtime
func init() {
	tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
}

// Encoding shared by the embedding and chat models
const Encoding = "cl100k_base"

// Estimator counts, truncates and splits text on cl100k_base token boundaries
type Estimator struct {
	encoding *tiktoken.Tiktoken
	mu       sync.RWMutex
}

var (
	instance    *Estimator
	instanceErr error
	once        sync.Once
)

// GetEstimator returns the process-wide estimator
// The encoding tables are loaded once.
func GetEstimator() (*Estimator, error) {
	once.Do(func() {
		enc, err := tiktoken.GetEncoding(Encoding)
		if err != nil {
			instanceErr = err
			return
		}
		instance = &Estimator{encoding: enc}
	})

	if instanceErr != nil {
		return nil, instanceErr
	}
	return instance, nil
}

// NewEstimator wire provider
func NewEstimator() (*Estimator, error) {
	return GetEstimator()
}

// CountTokens number of tokens in text
func (e *Estimator) CountTokens(text string) int {
	if text == "" {
		return 0
	}
	return len(e.encode(text))
}

// Truncate cuts text to at most maxTokens tokens
func (e *Estimator) Truncate(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return ""
	}
	toks := e.encode(text)
	if len(toks) <= maxTokens {
		return text
	}
	return e.decode(toks[:maxTokens])
}

// Split chunks text into pieces of at most maxTokens tokens
// Paragraph boundaries are kept where they fit; oversized paragraphs are cut on token boundaries.
func (e *Estimator) Split(text string, maxTokens int) []string {
	text = strings.TrimSpace(text)
	if text == "" || maxTokens <= 0 {
		return nil
	}

	var (
		chunks  []string
		current strings.Builder
		used    int
	)
	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
			used = 0
		}
	}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		toks := e.encode(para)

		if len(toks) > maxTokens {
			flush()
			for start := 0; start < len(toks); start += maxTokens {
				end := start + maxTokens
				if end > len(toks) {
					end = len(toks)
				}
				if piece := strings.TrimSpace(e.decode(toks[start:end])); piece != "" {
					chunks = append(chunks, piece)
				}
			}
			continue
		}

		// +2 for the paragraph separator
		if used > 0 && used+len(toks)+2 > maxTokens {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
			used += 2
		}
		current.WriteString(para)
		used += len(toks)
	}
	flush()

	return chunks
}

func (e *Estimator) encode(text string) []int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.encoding.Encode(text, nil, nil)
}

// decode drops bytes of multi-byte runes split across a token cut
func (e *Estimator) decode(toks []int) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return strings.ToValidUTF8(e.encoding.Decode(toks), "")
}
