package foodlens

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Placeholder values rendered for missing optional fields.
const (
	NotAvailable  = "N/A"
	NoDescription = "No description available."
)

// Analysis mirrors the record carried inside the analysis envelope.
type Analysis struct {
	FoodName           string          `json:"food_name,omitempty" yaml:"food_name,omitempty"`
	Description        string          `json:"description,omitempty" yaml:"description,omitempty"`
	IsVeg              bool            `json:"is_veg" yaml:"is_veg"`
	CaloriesEstimation Amount          `json:"calories_estimation,omitempty" yaml:"calories_estimation,omitempty"`
	QualityScore       *Score          `json:"quality_score,omitempty" yaml:"quality_score,omitempty"`
	Macronutrients     *Macronutrients `json:"macronutrients,omitempty" yaml:"macronutrients,omitempty"`
}

// Macronutrients holds the optional per-nutrient estimates.
type Macronutrients struct {
	Protein Amount `json:"protein,omitempty" yaml:"protein,omitempty"`
	Carbs   Amount `json:"carbs,omitempty" yaml:"carbs,omitempty"`
	Fat     Amount `json:"fat,omitempty" yaml:"fat,omitempty"`
}

// Amount is a free-form estimate such as "12g" or "450-500 kcal". The service
// sends either strings or bare numbers; both decode to text. A zero number is
// treated as absent.
type Amount string

// UnmarshalJSON accepts a JSON string, number or null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*a = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*a = Amount(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("amount must be a string or number, got %s", trimmed)
	}
	if f, err := n.Float64(); err == nil && f == 0 {
		*a = ""
		return nil
	}
	*a = Amount(n.String())
	return nil
}

// Display returns the amount or NotAvailable.
func (a Amount) Display() string {
	if strings.TrimSpace(string(a)) == "" {
		return NotAvailable
	}
	return string(a)
}

// Score is the 0-10 quality rating. The range is not enforced.
type Score float64

// UnmarshalJSON accepts a JSON number or a numeric string.
func (s *Score) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return fmt.Errorf("quality_score %q is not a number", raw)
		}
		*s = Score(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return fmt.Errorf("quality_score must be a number, got %s", trimmed)
	}
	*s = Score(v)
	return nil
}

func (s Score) String() string {
	return strconv.FormatFloat(float64(s), 'f', -1, 64)
}

// DisplayName returns the food name or NotAvailable.
func (a Analysis) DisplayName() string {
	return orPlaceholder(a.FoodName, NotAvailable)
}

// DisplayDescription returns the description or NoDescription.
func (a Analysis) DisplayDescription() string {
	return orPlaceholder(a.Description, NoDescription)
}

// DietLabel describes the vegetarian flag. A missing flag reads as non-vegetarian.
func (a Analysis) DietLabel() string {
	if a.IsVeg {
		return "Vegetarian"
	}
	return "Non-Vegetarian"
}

// DisplayCalories returns the calorie estimate or NotAvailable.
func (a Analysis) DisplayCalories() string {
	return a.CaloriesEstimation.Display()
}

// DisplayQuality renders the score as "n/10".
func (a Analysis) DisplayQuality() string {
	if a.QualityScore == nil {
		return NotAvailable
	}
	return a.QualityScore.String() + "/10"
}

func (a Analysis) DisplayProtein() string { return a.macros().Protein.Display() }
func (a Analysis) DisplayCarbs() string   { return a.macros().Carbs.Display() }
func (a Analysis) DisplayFat() string     { return a.macros().Fat.Display() }

func (a Analysis) macros() Macronutrients {
	if a.Macronutrients == nil {
		return Macronutrients{}
	}
	return *a.Macronutrients
}

// Field is a labelled value for the results grid.
type Field struct {
	Label string
	Value string
}

// Fields returns the results grid in display order.
func (a Analysis) Fields() []Field {
	return []Field{
		{Label: "Type", Value: a.DietLabel()},
		{Label: "Calories", Value: a.DisplayCalories()},
		{Label: "Quality", Value: a.DisplayQuality()},
		{Label: "Protein", Value: a.DisplayProtein()},
		{Label: "Carbs", Value: a.DisplayCarbs()},
		{Label: "Fat", Value: a.DisplayFat()},
	}
}

func orPlaceholder(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}
