package foodlens

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// envelopeField is the key whose string value holds the encoded analysis record.
const envelopeField = "analysis"

// Decode runs both decode stages over a response body.
func Decode(body []byte) (Analysis, error) {
	payload, err := DecodeEnvelope(body)
	if err != nil {
		return Analysis{}, err
	}
	return DecodeAnalysis(payload)
}

// DecodeEnvelope extracts the encoded analysis string from the outer JSON
// object. Failures are KindDecode errors with StageEnvelope.
func DecodeEnvelope(body []byte) (string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return "", newDecodeError(StageEnvelope, fmt.Errorf("parse envelope: %w", err))
	}
	raw, ok := fields[envelopeField]
	if !ok {
		return "", newDecodeError(StageEnvelope, errors.New("envelope has no analysis field"))
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", newDecodeError(StageEnvelope, fmt.Errorf("analysis field is not a string: %s", clip(string(raw), 40)))
	}
	var payload string
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", newDecodeError(StageEnvelope, fmt.Errorf("analysis field is not a string: %w", err))
	}
	return payload, nil
}

// DecodeAnalysis parses the inner record. The payload must be a JSON object;
// failures are KindDecode errors with StageRecord.
func DecodeAnalysis(payload string) (Analysis, error) {
	trimmed := strings.TrimSpace(payload)
	if !strings.HasPrefix(trimmed, "{") {
		return Analysis{}, newDecodeError(StageRecord, fmt.Errorf("analysis payload is not a JSON object: %q", clip(trimmed, 40)))
	}
	var analysis Analysis
	if err := json.Unmarshal([]byte(trimmed), &analysis); err != nil {
		return Analysis{}, newDecodeError(StageRecord, fmt.Errorf("parse analysis: %w", err))
	}
	return analysis, nil
}

func clip(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit]) + "..."
}
