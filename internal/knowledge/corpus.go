package knowledge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode"
)

// EvidenceReference points at one corpus entry supporting a claim.
type EvidenceReference struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Source string `json:"source"`
}

// Corpus looks up supporting references for a claim. Implementations may
// perform I/O and must honor context cancellation.
type Corpus interface {
	FindSupport(ctx context.Context, claim string) ([]EvidenceReference, error)
}

type corpusEntry struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Source   string   `json:"source"`
	Keywords []string `json:"keywords"`
}

// FileCorpus is a Corpus backed by a JSON file loaded at construction.
type FileCorpus struct {
	entries []corpusEntry
}

// LoadFile reads a JSON corpus from disk. A missing file yields an empty
// corpus rather than an error so fresh installations degrade gracefully.
func LoadFile(path string) (*FileCorpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &FileCorpus{}, nil
		}
		return nil, fmt.Errorf("read knowledge corpus: %w", err)
	}

	var entries []corpusEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse knowledge corpus: %w", err)
	}
	valid := entries[:0]
	for _, entry := range entries {
		if strings.TrimSpace(entry.ID) == "" || len(entry.Keywords) == 0 {
			continue
		}
		valid = append(valid, entry)
	}
	return &FileCorpus{entries: valid}, nil
}

// FindSupport returns the corpus entries whose keywords all occur in the claim.
func (c *FileCorpus) FindSupport(ctx context.Context, claim string) ([]EvidenceReference, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tokens := tokenSet(claim)
	if len(tokens) == 0 {
		return nil, nil
	}

	var refs []EvidenceReference
	for _, entry := range c.entries {
		if entryMatches(entry, tokens) {
			refs = append(refs, EvidenceReference{ID: entry.ID, Title: entry.Title, Source: entry.Source})
		}
	}
	return refs, nil
}

func entryMatches(entry corpusEntry, claimTokens map[string]struct{}) bool {
	for _, keyword := range entry.Keywords {
		keyword = normalizeToken(keyword)
		if keyword == "" {
			continue
		}
		if _, ok := claimTokens[keyword]; !ok {
			return false
		}
	}
	return true
}

func tokenSet(text string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, field := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if field != "" {
			tokens[field] = struct{}{}
		}
	}
	return tokens
}

func normalizeToken(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}
