package utils

import (
	"math"

	"github.com/strivetrack/strivetrack-api/internal/constants"
)

type WeightUnit string

const (
	UnitPounds    WeightUnit = "lbs"
	UnitKilograms WeightUnit = "kg"
)

// ParseWeightUnit accepts the common spellings of both units.
func ParseWeightUnit(s string) (WeightUnit, bool) {
	switch s {
	case "lb", "lbs", "pound", "pounds":
		return UnitPounds, true
	case "kg", "kgs", "kilogram", "kilograms":
		return UnitKilograms, true
	}
	return "", false
}

// NormalizeWeight returns the pounds and kilograms representation of value.
// Both are rounded to two decimals; kg is always derived from the rounded
// pounds value so that kg == lbs * KgPerLb holds within 0.01 on every row.
func NormalizeWeight(value float64, unit WeightUnit) (lbs, kg float64) {
	if unit == UnitKilograms {
		lbs = Round(value/constants.KgPerLb, 2)
	} else {
		lbs = Round(value, 2)
	}
	kg = Round(lbs*constants.KgPerLb, 2)
	return lbs, kg
}

// BMI computes body mass index from kilograms and centimetres. It returns
// nil when the height is unknown or not positive.
func BMI(weightKg float64, heightCM *float64) *float64 {
	if heightCM == nil || *heightCM <= 0 {
		return nil
	}
	m := *heightCM / 100
	bmi := Round(weightKg/(m*m), 1)
	return &bmi
}

// Round rounds x to the given number of decimal places.
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
