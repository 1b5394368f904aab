package schema

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Severity self-reported by the user alongside the symptom list
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// ParseSeverity maps a raw severity to the enum, defaulting to mild the same
// way the symptom form does when the field is left out
func ParseSeverity(value string) Severity {
	switch Severity(value) {
	case SeverityModerate, SeveritySevere:
		return Severity(value)
	}
	return SeverityMild
}

// SymptomAnalysis stores one symptom-checker run together with the generated
// analysis text
type SymptomAnalysis struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID         string             `json:"userId" bson:"userId"`
	Symptoms       []string           `json:"symptoms" bson:"symptoms"`
	AdditionalInfo string             `json:"additionalInfo,omitempty" bson:"additionalInfo,omitempty"`
	Severity       Severity           `json:"severity" bson:"severity"`
	Analysis       string             `json:"analysis" bson:"analysis"`
	Timestamp      time.Time          `json:"timestamp" bson:"timestamp"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
}
