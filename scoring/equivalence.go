package scoring

import (
	"fmt"
	"math"
)

// Reference emissions used to express carbon in everyday terms (kg CO2e).
const (
	carbonPerTreeYear      = 21.0
	carbonPerKmCar         = 0.21
	carbonPerFlightHour    = 255.0
	carbonPerBurger        = 0.5
	carbonPerPhoneCharge   = 0.008
	carbonPerPlasticBottle = 0.082

	maxEquivalences = 3
)

// Equivalence expresses an amount of carbon as a relatable quantity.
type Equivalence struct {
	Icon        string `json:"icon"`
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Equivalences returns up to three comparisons for carbon. Negative carbon is
// phrased as something saved, positive as something emitted.
func Equivalences(carbon float64) []Equivalence {
	abs := math.Abs(carbon)
	saved := carbon < 0
	out := []Equivalence{}

	pick := func(savedText, emittedText string) string {
		if saved {
			return savedText
		}
		return emittedText
	}

	if trees := abs / carbonPerTreeYear; trees >= 0.01 {
		value, label, phrase := fmt.Sprintf("%.1f", trees), "trees for a year", fmt.Sprintf("%.1f trees", trees)
		if trees < 1 {
			months := fmt.Sprintf("%.0f", trees*12)
			value, label, phrase = months, "tree-months", months+" tree-months"
		}
		out = append(out, Equivalence{
			Icon:  "🌳",
			Value: value,
			Label: label,
			Description: pick(
				fmt.Sprintf("You've planted the equivalent of %s!", phrase),
				fmt.Sprintf("This equals %s of emissions", phrase),
			),
		})
	}

	if km := abs / carbonPerKmCar; km >= 1 {
		out = append(out, Equivalence{
			Icon:  "🚗",
			Value: fmt.Sprintf("%.0f", km),
			Label: pick("km NOT driven", "km driven"),
			Description: pick(
				fmt.Sprintf("Same as keeping a car parked for %.0f km!", km),
				fmt.Sprintf("Same as driving %.0f km by car", km),
			),
		})
	}

	if burgers := abs / carbonPerBurger; burgers >= 1 && abs < 50 {
		out = append(out, Equivalence{
			Icon:  "🍔",
			Value: fmt.Sprintf("%.0f", burgers),
			Label: pick("burgers saved", "burgers"),
			Description: pick(
				fmt.Sprintf("Equivalent to skipping %.0f beef burgers!", burgers),
				fmt.Sprintf("Same carbon as %.0f beef burgers", burgers),
			),
		})
	}

	if charges := abs / carbonPerPhoneCharge; abs < 1 && charges >= 1 {
		out = append(out, Equivalence{
			Icon:  "📱",
			Value: fmt.Sprintf("%.0f", charges),
			Label: "phone charges",
			Description: pick(
				fmt.Sprintf("Like %.0f phone charges saved!", charges),
				fmt.Sprintf("Same as charging your phone %.0f times", charges),
			),
		})
	}

	if bottles := abs / carbonPerPlasticBottle; bottles >= 5 {
		out = append(out, Equivalence{
			Icon:  "🧴",
			Value: fmt.Sprintf("%.0f", bottles),
			Label: "plastic bottles",
			Description: pick(
				fmt.Sprintf("Equal to %.0f plastic bottles avoided!", bottles),
				fmt.Sprintf("Same footprint as %.0f plastic bottles", bottles),
			),
		})
	}

	if hours := abs / carbonPerFlightHour; hours >= 0.5 {
		value, label, phrase := fmt.Sprintf("%.1f", hours), "flight hours", fmt.Sprintf("%.1f hours", hours)
		if hours < 1 {
			mins := fmt.Sprintf("%.0f", hours*60)
			value, label, phrase = mins, "flight minutes", mins+" mins"
		}
		out = append(out, Equivalence{
			Icon:  "✈️",
			Value: value,
			Label: label,
			Description: pick(
				fmt.Sprintf("Like skipping %s of flying!", phrase),
				fmt.Sprintf("Equivalent to %s of flight", phrase),
			),
		})
	}

	if len(out) > maxEquivalences {
		out = out[:maxEquivalences]
	}
	return out
}

// ImpactMessage returns a short motivational line for a logged impact.
func ImpactMessage(carbon float64) string {
	abs := math.Abs(carbon)

	if carbon >= 0 {
		switch {
		case abs < 5:
			return "Small step, but every bit counts! 💪"
		case abs < 20:
			return "Good awareness - try alternatives next time! 🌱"
		default:
			return "High impact activity - consider greener options! 🌍"
		}
	}

	switch {
	case abs < 1:
		return "Every small action matters! 🌱"
	case abs < 5:
		return "Nice work, eco warrior! 💚"
	case abs < 20:
		return "Fantastic impact! You're making a difference! 🌟"
	case abs < 50:
		return "Incredible! You're a planet hero! 🦸"
	default:
		return "LEGENDARY impact! The Earth thanks you! 🌍✨"
	}
}
