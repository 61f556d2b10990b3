package foodlens

import (
	"errors"
	"fmt"
	"testing"
)

func TestDecode_PizzaEnvelope(t *testing.T) {
	analysis, err := Decode([]byte(pizzaEnvelope))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if analysis.FoodName != "Pizza" {
		t.Fatalf("FoodName = %q, want Pizza", analysis.FoodName)
	}
	if analysis.IsVeg {
		t.Fatalf("IsVeg = true, want false")
	}
	if analysis.QualityScore == nil || *analysis.QualityScore != 8 {
		t.Fatalf("QualityScore = %v, want 8", analysis.QualityScore)
	}
	if analysis.Macronutrients == nil || analysis.Macronutrients.Protein != "12g" {
		t.Fatalf("Macronutrients = %#v, want protein 12g", analysis.Macronutrients)
	}
	if got := analysis.DisplayCarbs(); got != NotAvailable {
		t.Fatalf("DisplayCarbs = %q, want %q", got, NotAvailable)
	}
}

func TestDecodeEnvelope_Failures(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"not json", "{not-json"},
		{"array", `["analysis"]`},
		{"missing field", `{"result": "{}"}`},
		{"object instead of string", `{"analysis": {"food_name": "Pizza"}}`},
		{"null field", `{"analysis": null}`},
		{"empty body", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeEnvelope([]byte(tc.body))
			var typed *Error
			if !errors.As(err, &typed) {
				t.Fatalf("DecodeEnvelope error = %v, want *Error", err)
			}
			if typed.Kind != KindDecode || typed.Stage != StageEnvelope {
				t.Fatalf("kind/stage = %q/%q, want decode/envelope", typed.Kind, typed.Stage)
			}
		})
	}
}

func TestDecodeAnalysis_Failures(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"not json", "not-json"},
		{"array", "[]"},
		{"number", "5"},
		{"null", "null"},
		{"truncated", `{"food_name": "Pizza"`},
		{"bad score", `{"quality_score": "great"}`},
		{"bad amount", `{"calories_estimation": true}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeAnalysis(tc.payload)
			var typed *Error
			if !errors.As(err, &typed) {
				t.Fatalf("DecodeAnalysis error = %v, want *Error", err)
			}
			if typed.Kind != KindDecode || typed.Stage != StageRecord {
				t.Fatalf("kind/stage = %q/%q, want decode/record", typed.Kind, typed.Stage)
			}
		})
	}
}

func TestDecodeAnalysis_FlexibleFields(t *testing.T) {
	analysis, err := DecodeAnalysis(`{
		"calories_estimation": 450,
		"quality_score": "7.5",
		"is_veg": true,
		"macronutrients": {"protein": 12, "carbs": null, "fat": 0}
	}`)
	if err != nil {
		t.Fatalf("DecodeAnalysis returned error: %v", err)
	}
	if got := analysis.DisplayCalories(); got != "450" {
		t.Fatalf("DisplayCalories = %q, want 450", got)
	}
	if got := analysis.DisplayQuality(); got != "7.5/10" {
		t.Fatalf("DisplayQuality = %q, want 7.5/10", got)
	}
	if got := analysis.DietLabel(); got != "Vegetarian" {
		t.Fatalf("DietLabel = %q, want Vegetarian", got)
	}
	if got := analysis.DisplayProtein(); got != "12" {
		t.Fatalf("DisplayProtein = %q, want 12", got)
	}
	if got := analysis.DisplayCarbs(); got != NotAvailable {
		t.Fatalf("DisplayCarbs = %q, want %q", got, NotAvailable)
	}
	if got := analysis.DisplayFat(); got != NotAvailable {
		t.Fatalf("DisplayFat = %q, want %q for zero", got, NotAvailable)
	}
}

func TestAnalysis_PlaceholdersForEmptyRecord(t *testing.T) {
	analysis, err := DecodeAnalysis("{}")
	if err != nil {
		t.Fatalf("DecodeAnalysis returned error: %v", err)
	}
	want := map[string]string{
		"name":        NotAvailable,
		"description": NoDescription,
		"diet":        "Non-Vegetarian",
		"calories":    NotAvailable,
		"quality":     NotAvailable,
		"protein":     NotAvailable,
		"carbs":       NotAvailable,
		"fat":         NotAvailable,
	}
	got := map[string]string{
		"name":        analysis.DisplayName(),
		"description": analysis.DisplayDescription(),
		"diet":        analysis.DietLabel(),
		"calories":    analysis.DisplayCalories(),
		"quality":     analysis.DisplayQuality(),
		"protein":     analysis.DisplayProtein(),
		"carbs":       analysis.DisplayCarbs(),
		"fat":         analysis.DisplayFat(),
	}
	for key, w := range want {
		if got[key] != w {
			t.Fatalf("%s = %q, want %q", key, got[key], w)
		}
	}
	if len(analysis.Fields()) != 6 {
		t.Fatalf("Fields() returned %d entries, want 6", len(analysis.Fields()))
	}
}

func TestErrorHelpers(t *testing.T) {
	if UserMessage(nil) != "" {
		t.Fatalf("UserMessage(nil) = %q, want empty", UserMessage(nil))
	}
	wrapped := fmt.Errorf("outer: %w", newServerError(503))
	if !IsKind(wrapped, KindServer) {
		t.Fatalf("IsKind through wrap = false, want true")
	}
	if KindOf(errors.New("plain")) != "" {
		t.Fatalf("KindOf(plain) should be empty")
	}
	if got := newServerError(503).Error(); got != "server: status 503" {
		t.Fatalf("Error() = %q, want server: status 503", got)
	}
	if !errors.Is(NewValidationError(nil), ErrNoImage) {
		t.Fatalf("validation error should wrap ErrNoImage")
	}
}
