package schema

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecordType is the closed set of health record discriminators accepted by
// the write and delete routes. Anything else is rejected upfront, there is no
// default collection fallthrough.
type RecordType string

const (
	RecordTypeBloodPressure RecordType = "blood-pressure"
	RecordTypeBloodSugar    RecordType = "blood-sugar"
	RecordTypeWeight        RecordType = "weight"
	RecordTypeMedication    RecordType = "medication"
	RecordTypeMedicationLog RecordType = "medication-log"
)

// ParseRecordType validates a raw type discriminator against the closed enum
func ParseRecordType(value string) (RecordType, error) {
	switch RecordType(value) {
	case RecordTypeBloodPressure, RecordTypeBloodSugar, RecordTypeWeight, RecordTypeMedication, RecordTypeMedicationLog:
		return RecordType(value), nil
	}
	return "", fmt.Errorf("unknown record type %q", value)
}

// BloodSugarSubtype qualifies a blood sugar reading. The classification rules
// only special-case fasting and post-meal, other values share one band set.
type BloodSugarSubtype string

const (
	BloodSugarFasting  BloodSugarSubtype = "fasting"
	BloodSugarPostMeal BloodSugarSubtype = "post-meal"
	BloodSugarRandom   BloodSugarSubtype = "random"
	BloodSugarHbA1c    BloodSugarSubtype = "hba1c"
)

// BloodPressureReading is a single systolic/diastolic measurement.
//
// Timestamp is the user supplied "when measured" instant, CreatedAt is the
// server assigned "when recorded" instant. They are independent.
type BloodPressureReading struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    string             `json:"userId" bson:"userId"`
	Systolic  int                `json:"systolic" bson:"systolic"`
	Diastolic int                `json:"diastolic" bson:"diastolic"`
	Timestamp time.Time          `json:"timestamp" bson:"timestamp"`
	Notes     string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// BloodSugarReading is a single glycemia measurement in mg/dL
type BloodSugarReading struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    string             `json:"userId" bson:"userId"`
	Value     float64            `json:"value" bson:"value"`
	Subtype   BloodSugarSubtype  `json:"type" bson:"type"`
	Timestamp time.Time          `json:"timestamp" bson:"timestamp"`
	Notes     string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// WeightReading is a single weight measurement in lbs
type WeightReading struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    string             `json:"userId" bson:"userId"`
	Value     float64            `json:"value" bson:"value"`
	Timestamp time.Time          `json:"timestamp" bson:"timestamp"`
	Notes     string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// Reminder is a scheduled intake time for a medication
type Reminder struct {
	Time string   `json:"time" bson:"time"`
	Days []string `json:"days" bson:"days"`
}

// Medication as registered by the user.
//
// EndDate is not checked against StartDate, the upstream product never
// enforced the ordering.
type Medication struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    string             `json:"userId" bson:"userId"`
	Name      string             `json:"name" bson:"name"`
	Dosage    string             `json:"dosage" bson:"dosage"`
	Frequency string             `json:"frequency" bson:"frequency"`
	StartDate time.Time          `json:"startDate" bson:"startDate"`
	EndDate   *time.Time         `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Reminders []Reminder         `json:"reminders" bson:"reminders"`
	Notes     string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// MedicationLog records one intake (or skip) event. MedicationID is a weak
// reference, no existence check is performed against the medications
// collection.
type MedicationLog struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID       string             `json:"userId" bson:"userId"`
	MedicationID string             `json:"medicationId" bson:"medicationId"`
	Taken        bool               `json:"taken" bson:"taken"`
	Timestamp    time.Time          `json:"timestamp" bson:"timestamp"`
	Notes        string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
}
