package exercise

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// AnswerKind tags the shape of an AnswerValue.
type AnswerKind string

const (
	// KindText is a single free-form or selected string.
	KindText AnswerKind = "text"

	// KindBlanks maps blank index to the text typed into that blank.
	KindBlanks AnswerKind = "blanks"

	// KindMatching maps a left-hand position to the chosen right-hand item.
	KindMatching AnswerKind = "matching"
)

// AnswerValue is a learner's answer to one question. Exactly one of Text
// or Entries is meaningful, selected by Kind.
type AnswerValue struct {
	Kind    AnswerKind
	Text    string
	Entries map[int]string
}

// Text builds a scalar answer.
func Text(s string) AnswerValue {
	return AnswerValue{Kind: KindText, Text: s}
}

// Blanks builds a multi-blank fill-in answer.
func Blanks(entries map[int]string) AnswerValue {
	return AnswerValue{Kind: KindBlanks, Entries: copyEntries(entries)}
}

// Matching builds a matching answer.
func Matching(entries map[int]string) AnswerValue {
	return AnswerValue{Kind: KindMatching, Entries: copyEntries(entries)}
}

// Scalar returns the text of a scalar answer. ok is false for indexed shapes.
func (v AnswerValue) Scalar() (text string, ok bool) {
	if v.Kind == KindText {
		return v.Text, true
	}
	return "", false
}

// IsEmpty reports whether the answer carries no learner input.
func (v AnswerValue) IsEmpty() bool {
	if v.Kind == KindText {
		return strings.TrimSpace(v.Text) == ""
	}
	for _, e := range v.Entries {
		if strings.TrimSpace(e) != "" {
			return false
		}
	}
	return true
}

// Clone returns a copy that shares no map with v.
func (v AnswerValue) Clone() AnswerValue {
	v.Entries = copyEntries(v.Entries)
	return v
}

// String renders the answer for display, e.g. "0: went, 1: gone".
func (v AnswerValue) String() string {
	if v.Kind == KindText {
		return v.Text
	}
	keys := make([]int, 0, len(v.Entries))
	for k := range v.Entries {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%d: %s", k, v.Entries[k])
	}
	return strings.Join(parts, ", ")
}

type answerJSON struct {
	Type  AnswerKind      `json:"type"`
	Value json.RawMessage `json:"value"`
}

// MarshalJSON encodes the answer as {"type": ..., "value": ...}.
func (v AnswerValue) MarshalJSON() ([]byte, error) {
	var (
		raw []byte
		err error
	)
	kind := v.Kind
	if kind == "" {
		kind = KindText
	}
	if kind == KindText {
		raw, err = json.Marshal(v.Text)
	} else {
		entries := make(map[string]string, len(v.Entries))
		for k, e := range v.Entries {
			entries[strconv.Itoa(k)] = e
		}
		raw, err = json.Marshal(entries)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(answerJSON{Type: kind, Value: raw})
}

// UnmarshalJSON accepts the tagged form or, for convenience, a bare string.
func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	var bare string
	if err := json.Unmarshal(data, &bare); err == nil {
		*v = Text(bare)
		return nil
	}

	var aj answerJSON
	if err := json.Unmarshal(data, &aj); err != nil {
		return fmt.Errorf("decode answer: %w", err)
	}
	if aj.Type == "" {
		aj.Type = KindText
	}

	switch aj.Type {
	case KindText:
		var s string
		if len(aj.Value) > 0 {
			if err := json.Unmarshal(aj.Value, &s); err != nil {
				return fmt.Errorf("decode text answer: %w", err)
			}
		}
		*v = Text(s)
	case KindBlanks, KindMatching:
		var raw map[string]string
		if len(aj.Value) > 0 {
			if err := json.Unmarshal(aj.Value, &raw); err != nil {
				return fmt.Errorf("decode %s answer: %w", aj.Type, err)
			}
		}
		entries := make(map[int]string, len(raw))
		for k, e := range raw {
			idx, err := strconv.Atoi(k)
			if err != nil {
				return fmt.Errorf("decode %s answer: invalid index %q", aj.Type, k)
			}
			entries[idx] = e
		}
		*v = AnswerValue{Kind: aj.Type, Entries: entries}
	default:
		return fmt.Errorf("decode answer: unknown type %q", aj.Type)
	}
	return nil
}

func copyEntries(in map[int]string) map[int]string {
	if in == nil {
		return nil
	}
	out := make(map[int]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
