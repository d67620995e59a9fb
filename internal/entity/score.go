package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type Label string

const (
	LabelHot  Label = "Hot"
	LabelWarm Label = "Warm"
	LabelCold Label = "Cold"
)

// ParseLabel accepts "Hot", "warm" or legacy values with a trailing emoji ("Hot 🔥").
func ParseLabel(s string) (Label, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "", fmt.Errorf("empty score label")
	}
	switch strings.ToLower(fields[0]) {
	case "hot":
		return LabelHot, nil
	case "warm":
		return LabelWarm, nil
	case "cold":
		return LabelCold, nil
	}
	return "", fmt.Errorf("unknown score label %q", s)
}

type ScoreKind int

const (
	ScoreNumeric ScoreKind = iota
	ScoreLabel
	// ScoreText guarda um texto que não é número nem rótulo; é regravado como veio.
	ScoreText
)

// Score is either a legacy numeric score or a temperature label.
// The zero value is Numeric(0).
type Score struct {
	kind    ScoreKind
	numeric float64
	label   Label
	text    string
}

func NumericScore(v float64) Score {
	return Score{kind: ScoreNumeric, numeric: v}
}

func LabelScore(l Label) Score {
	return Score{kind: ScoreLabel, label: l}
}

func (s Score) Kind() ScoreKind { return s.kind }

func (s Score) Numeric() (float64, bool) {
	return s.numeric, s.kind == ScoreNumeric
}

func (s Score) Label() (Label, bool) {
	return s.label, s.kind == ScoreLabel
}

func (s Score) String() string {
	switch s.kind {
	case ScoreLabel:
		return string(s.label)
	case ScoreText:
		return s.text
	}
	return fmt.Sprintf("%g", s.numeric)
}

func (s Score) MarshalJSON() ([]byte, error) {
	switch s.kind {
	case ScoreLabel:
		return json.Marshal(string(s.label))
	case ScoreText:
		return json.Marshal(s.text)
	}
	return json.Marshal(s.numeric)
}

func (s *Score) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = NumericScore(0)
		return nil
	}

	if data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*s = scoreFromString(raw)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("score must be a number or a label: %w", err)
	}
	*s = NumericScore(v)
	return nil
}

// scoreFromString nunca falha: rótulo vira Label, "85" vira número, o resto fica como texto.
func scoreFromString(raw string) Score {
	if label, err := ParseLabel(raw); err == nil {
		return LabelScore(label)
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		return NumericScore(v)
	}
	return Score{kind: ScoreText, text: raw}
}
