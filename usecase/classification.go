package usecase

import (
	"github.com/healthmate-org/healthmate-api/schema"
)

// Category is a health-status band plus the display classes the web client
// attaches to it. Assigning the classes is a pure lookup.
type Category struct {
	Status string `json:"status"`
	Color  string `json:"color"`
	Bg     string `json:"bg"`
	Border string `json:"border"`
}

var (
	categoryGreen  = Category{Color: "text-green-400", Bg: "bg-green-500/20", Border: "border-green-500/30"}
	categoryYellow = Category{Color: "text-yellow-400", Bg: "bg-yellow-500/20", Border: "border-yellow-500/30"}
	categoryRed    = Category{Color: "text-red-400", Bg: "bg-red-500/20", Border: "border-red-500/30"}
)

func green(status string) Category {
	c := categoryGreen
	c.Status = status
	return c
}

func yellow(status string) Category {
	c := categoryYellow
	c.Status = status
	return c
}

func red(status string) Category {
	c := categoryRed
	c.Status = status
	return c
}

// ClassifyBloodPressure maps a systolic/diastolic pair to its ACC/AHA band.
// Bands are checked in descending severity so the worst matching one wins,
// e.g. 180/70 is a crisis even though the diastolic alone is normal.
func ClassifyBloodPressure(systolic, diastolic int) Category {
	switch {
	case systolic >= 180 || diastolic >= 120:
		return red("Hypertensive Crisis")
	case systolic >= 140 || diastolic >= 90:
		return red("High BP (Stage 2)")
	case systolic >= 130 || diastolic >= 80:
		return yellow("High BP (Stage 1)")
	case systolic >= 120 && diastolic < 80:
		return yellow("Elevated")
	default:
		return green("Normal")
	}
}

// ClassifyBloodSugar maps a mg/dL value to its band. Fasting and post-meal
// readings use the diabetes thresholds, every other subtype (random, hba1c)
// shares the generic Normal/Elevated/High bands.
//
// Values are taken as-is, bounds validation belongs to the form layer.
func ClassifyBloodSugar(value float64, subtype schema.BloodSugarSubtype) Category {
	switch subtype {
	case schema.BloodSugarFasting:
		switch {
		case value < 100:
			return green("Normal")
		case value <= 125:
			return yellow("Prediabetes")
		default:
			return red("Diabetes")
		}
	case schema.BloodSugarPostMeal:
		switch {
		case value < 140:
			return green("Normal")
		case value <= 199:
			return yellow("Prediabetes")
		default:
			return red("Diabetes")
		}
	}
	switch {
	case value < 140:
		return green("Normal")
	case value < 200:
		return yellow("Elevated")
	default:
		return red("High")
	}
}
