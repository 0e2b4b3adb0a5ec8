package models

import (
	"errors"
	"strings"
)

// DiseaseType is the category a prediction was made for.
type DiseaseType string

const (
	DiseaseDiabetes   DiseaseType = "DIABETES"
	DiseaseHeart      DiseaseType = "HEART"
	DiseaseStroke     DiseaseType = "STROKE"
	DiseaseParkinsons DiseaseType = "PARKINSONS"
)

var ErrInvalidDisease = errors.New("invalid disease type")

// AllDiseases lists every supported category in a stable order.
var AllDiseases = []DiseaseType{DiseaseDiabetes, DiseaseHeart, DiseaseStroke, DiseaseParkinsons}

func ParseDisease(s string) (DiseaseType, error) {
	d := DiseaseType(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllDiseases {
		if d == known {
			return d, nil
		}
	}
	return "", ErrInvalidDisease
}

// Slug is the lower-case name used in URL paths and user-facing messages.
func (d DiseaseType) Slug() string {
	return strings.ToLower(string(d))
}
