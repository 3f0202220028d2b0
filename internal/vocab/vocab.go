// Package vocab holds the word pool the daily challenge draws from.
package vocab

import (
	"context"
	"strings"

	"github.com/abhisek/lexis/internal/store"
)

// PoolKey is the KV key an imported pool is saved under.
const PoolKey = "vocab:pool"

// Word is one pool entry.
type Word struct {
	Word        string `json:"word"`
	Definition  string `json:"definition"`
	Example     string `json:"example,omitempty"`
	Translation string `json:"translation,omitempty"`
}

// Dedupe drops entries without a word or definition and keeps the first
// occurrence of each word, compared case-insensitively.
func Dedupe(words []Word) []Word {
	seen := make(map[string]bool, len(words))
	out := make([]Word, 0, len(words))
	for _, w := range words {
		w.Word = strings.TrimSpace(w.Word)
		w.Definition = strings.TrimSpace(w.Definition)
		key := strings.ToLower(w.Word)
		if key == "" || w.Definition == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, w)
	}
	return out
}

// Load returns the saved pool, or the built-in pool when none was saved.
func Load(ctx context.Context, kv store.KV) ([]Word, error) {
	var words []Word
	ok, err := store.GetJSON(ctx, kv, PoolKey, &words)
	if err != nil {
		return nil, err
	}
	if !ok || len(words) == 0 {
		return Builtin(), nil
	}
	return words, nil
}

// Save replaces the saved pool.
func Save(ctx context.Context, kv store.KV, words []Word) error {
	return store.PutJSON(ctx, kv, PoolKey, Dedupe(words))
}
