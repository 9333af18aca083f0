package scoring

import "strings"

// Classification places an activity in the emitted or avoided bucket, or neither.
type Classification struct {
	IsEmission bool `json:"is_emission"`
	IsAvoided  bool `json:"is_avoided"`
}

// Neutral reports whether the activity counts toward neither bucket.
func (c Classification) Neutral() bool {
	return !c.IsEmission && !c.IsAvoided
}

var lowCarbonTransport = map[string]bool{
	"bicycle":          true,
	"walk":             true,
	"public_transport": true,
	"bus":              true,
	"train":            true,
}

var (
	meatKeywords      = []string{"chicken", "beef", "pork", "meat"}
	plantKeywords     = []string{"vegetarian", "vegan"}
	fossilKeywords    = []string{"grid", "gas"}
	renewableKeywords = []string{"solar", "wind", "renewable"}
)

// Classify decides which aggregate bucket an activity feeds. The buckets are
// independent of the sign of its carbon impact. When an action matches both
// an avoidance and an emission keyword (e.g. "vegan_meatballs"), avoidance wins
// so the two flags stay mutually exclusive.
func Classify(activityType, action string) Classification {
	t := strings.ToLower(strings.TrimSpace(activityType))
	a := strings.ToLower(strings.TrimSpace(action))

	var avoided, emission bool
	switch t {
	case "transport":
		avoided = lowCarbonTransport[a]
		emission = !avoided
	case "food":
		avoided = containsAny(a, plantKeywords)
		emission = containsAny(a, meatKeywords)
	case "energy":
		avoided = containsAny(a, renewableKeywords)
		emission = containsAny(a, fossilKeywords)
	}

	if avoided {
		return Classification{IsAvoided: true}
	}
	return Classification{IsEmission: emission}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
