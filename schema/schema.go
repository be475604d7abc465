// Package schema has models and constants shared by all parts of scorebench.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ComponentScore is one component entry in the final report. Status travels
// with the entry in memory but stays off the wire; the JSON contract carries
// exactly score, weight and details per component.
type ComponentScore struct {
	Score   int     `json:"score"`
	Weight  float64 `json:"weight"`
	Details string  `json:"details"`

	Status CheckStatus `json:"-"`
}

// ComponentScores maps component names to their entries while preserving
// registry order for serialization. A plain map would marshal its keys
// alphabetically, which breaks the contract's registry-order guarantee.
type ComponentScores struct {
	names   []string
	entries map[string]ComponentScore
}

// Add appends an entry under the given name. Re-adding a name overwrites
// the entry but keeps its original position.
func (cs *ComponentScores) Add(name string, entry ComponentScore) {
	if cs.entries == nil {
		cs.entries = make(map[string]ComponentScore)
	}
	if _, ok := cs.entries[name]; !ok {
		cs.names = append(cs.names, name)
	}
	cs.entries[name] = entry
}

// Get returns the entry for a name.
func (cs *ComponentScores) Get(name string) (ComponentScore, bool) {
	entry, ok := cs.entries[name]
	return entry, ok
}

// Names returns the component names in insertion order.
func (cs *ComponentScores) Names() []string {
	out := make([]string, len(cs.names))
	copy(out, cs.names)
	return out
}

// Len returns the number of entries.
func (cs *ComponentScores) Len() int {
	return len(cs.names)
}

// MarshalJSON writes the entries as a JSON object in insertion order.
// Values go through an encoder with HTML escaping off so details strings
// keep characters like < and & readable.
func (cs ComponentScores) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range cs.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeValue(&buf, name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeValue(&buf, cs.entries[name]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object and preserves its key order.
func (cs *ComponentScores) UnmarshalJSON(data []byte) error {
	cs.names = nil
	cs.entries = nil

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("components must be a JSON object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("component key must be a string, got %v", keyTok)
		}
		var entry ComponentScore
		if err := dec.Decode(&entry); err != nil {
			return fmt.Errorf("component %q: %w", name, err)
		}
		cs.Add(name, entry)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// encodeValue appends the JSON encoding of v without HTML escaping and
// without the trailing newline json.Encoder emits.
func encodeValue(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	if b := buf.Bytes(); len(b) > 0 && b[len(b)-1] == '\n' {
		buf.Truncate(len(b) - 1)
	}
	return nil
}

// Penalties are the named fractional deductions applied after base scoring.
// All three keys are always present in the report, even at zero.
type Penalties struct {
	TimePenalty      float64 `json:"time_penalty"`
	IterationPenalty float64 `json:"iteration_penalty"`
	ErrorPenalty     float64 `json:"error_penalty"`
}

// Values returns the individual penalty fractions.
func (p Penalties) Values() []float64 {
	return []float64{p.TimePenalty, p.IterationPenalty, p.ErrorPenalty}
}

// Sum returns the total of all penalty fractions.
func (p Penalties) Sum() float64 {
	return p.TimePenalty + p.IterationPenalty + p.ErrorPenalty
}

// ScoreReport is the final aggregate for one verification run. Field order
// matches the external JSON contract; encoding/json preserves struct order.
type ScoreReport struct {
	Benchmark  string          `json:"benchmark"`
	Timestamp  string          `json:"timestamp"`
	Components ComponentScores `json:"components"`
	BaseScore  float64         `json:"base_score"`
	Penalties  Penalties       `json:"penalties"`
	FinalScore int             `json:"final_score"`
	Passed     bool            `json:"passed"`
}
