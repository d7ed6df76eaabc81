package models

import (
	"fmt"
	"strings"

	dErrors "mealcare/pkg/domain-errors"
)

type DietType string

const (
	DietRegular    DietType = "regular"
	DietDiabetic   DietType = "diabetic"
	DietRenal      DietType = "renal"
	DietLowSodium  DietType = "low_sodium"
	DietHalal      DietType = "halal"
	DietKosher     DietType = "kosher"
	DietVegetarian DietType = "vegetarian"
	DietVegan      DietType = "vegan"
)

func (d DietType) IsValid() bool {
	switch d {
	case DietRegular, DietDiabetic, DietRenal, DietLowSodium, DietHalal, DietKosher, DietVegetarian, DietVegan:
		return true
	}
	return false
}

// IDDSILevel is a texture level on the International Dysphagia Diet
// Standardisation Initiative scale, level_0 (thin liquid) to level_7 (regular).
type IDDSILevel string

const (
	IDDSILevel0 IDDSILevel = "level_0"
	IDDSILevel1 IDDSILevel = "level_1"
	IDDSILevel2 IDDSILevel = "level_2"
	IDDSILevel3 IDDSILevel = "level_3"
	IDDSILevel4 IDDSILevel = "level_4"
	IDDSILevel5 IDDSILevel = "level_5"
	IDDSILevel6 IDDSILevel = "level_6"
	IDDSILevel7 IDDSILevel = "level_7"
)

func (l IDDSILevel) IsValid() bool {
	switch l {
	case IDDSILevel0, IDDSILevel1, IDDSILevel2, IDDSILevel3, IDDSILevel4, IDDSILevel5, IDDSILevel6, IDDSILevel7:
		return true
	}
	return false
}

type MealSize string

const (
	MealSizeSmall  MealSize = "small"
	MealSizeMedium MealSize = "medium"
	MealSizeLarge  MealSize = "large"
)

const DefaultMealSize = MealSizeMedium

func (m MealSize) IsValid() bool {
	switch m {
	case MealSizeSmall, MealSizeMedium, MealSizeLarge:
		return true
	}
	return false
}

type Severity string

const (
	SeverityMild        Severity = "mild"
	SeverityModerate    Severity = "moderate"
	SeveritySevere      Severity = "severe"
	SeverityAnaphylaxis Severity = "anaphylaxis"
)

func (s Severity) IsValid() bool {
	switch s {
	case SeverityMild, SeverityModerate, SeveritySevere, SeverityAnaphylaxis:
		return true
	}
	return false
}

// ParseDietType accepts an empty string as "not set".
func ParseDietType(s string) (DietType, error) {
	return parseEnum("diet type", s, DietType.IsValid)
}

func ParseIDDSILevel(s string) (IDDSILevel, error) {
	return parseEnum("IDDSI level", s, IDDSILevel.IsValid)
}

func ParseMealSize(s string) (MealSize, error) {
	m, err := parseEnum("meal size", s, MealSize.IsValid)
	if err == nil && m == "" {
		m = DefaultMealSize
	}
	return m, err
}

func ParseSeverity(s string) (Severity, error) {
	return parseEnum("severity", s, Severity.IsValid)
}

func parseEnum[T ~string](kind, s string, valid func(T) bool) (T, error) {
	v := T(strings.ToLower(strings.TrimSpace(s)))
	if v == "" {
		return "", nil
	}
	if !valid(v) {
		return "", dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown %s %q", kind, s))
	}
	return v, nil
}
