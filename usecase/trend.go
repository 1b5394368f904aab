package usecase

import (
	"math"
	"time"

	"github.com/healthmate-org/healthmate-api/schema"
)

const stableWeightDelta = 0.5

// WeightTrendResult is the verdict over the two most recent readings
type WeightTrendResult struct {
	Trend string `json:"trend"`
	Color string `json:"color"`
}

// Adherence is the medication adherence summary for one day
type Adherence struct {
	Percentage int    `json:"percentage"`
	Status     string `json:"status"`
	Color      string `json:"color"`
}

// WeightTrend compares the two most recent readings of a recency-ordered
// list. Older history never changes the verdict. A delta under half a pound
// counts as stable.
func WeightTrend(readings []schema.WeightReading) WeightTrendResult {
	if len(readings) < 2 {
		return WeightTrendResult{Trend: "No trend", Color: "text-gray-400"}
	}
	diff := readings[0].Value - readings[1].Value
	if math.Abs(diff) < stableWeightDelta {
		return WeightTrendResult{Trend: "Stable", Color: "text-gray-400"}
	}
	if diff > 0 {
		return WeightTrendResult{Trend: "Gaining", Color: "text-red-400"}
	}
	return WeightTrendResult{Trend: "Losing", Color: "text-green-400"}
}

// MedicationAdherence computes the taken-versus-scheduled percentage for the
// given reference day.
//
// The denominator sums the reminders of every registered medication, even
// ones that are expired or not scheduled on that weekday. The numerator only
// counts logs stamped on the reference day with taken set.
func MedicationAdherence(medications []schema.Medication, logs []schema.MedicationLog, referenceDay time.Time) Adherence {
	totalReminders := 0
	for _, med := range medications {
		totalReminders += len(med.Reminders)
	}
	if totalReminders == 0 {
		return Adherence{Percentage: 0, Status: "No medications", Color: "text-gray-400"}
	}

	takenToday := 0
	for _, log := range logs {
		if log.Taken && sameDay(log.Timestamp, referenceDay) {
			takenToday++
		}
	}

	percentage := int(math.Round(float64(takenToday) / float64(totalReminders) * 100))
	switch {
	case percentage >= 80:
		return Adherence{Percentage: percentage, Status: "Excellent", Color: "text-green-400"}
	case percentage >= 60:
		return Adherence{Percentage: percentage, Status: "Good", Color: "text-yellow-400"}
	default:
		return Adherence{Percentage: percentage, Status: "Needs improvement", Color: "text-red-400"}
	}
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
