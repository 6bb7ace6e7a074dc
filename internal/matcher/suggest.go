package matcher

import (
	"sort"

	"github.com/agnivade/levenshtein"
	"github.com/xrash/smetrics"

	"github.com/str-zone/app/models"
	"github.com/str-zone/internal/normalizer"
)

// Jaro-Winkler floor for a jurisdiction name to count as a near miss
const suggestThreshold = 0.84

// Suggestion is a near-miss jurisdiction name. Suggestions are advisory:
// they never feed back into matching, which stays exact.
type Suggestion struct {
	JurisdictionName string  `json:"jurisdiction_name"`
	Score            float64 `json:"score"`
}

// Suggest ranks jurisdictions whose folded names are close to the query.
// Jaro-Winkler orders candidates, Levenshtein distance breaks ties. Exact
// matches are excluded since those are already handled by FilterByCity.
func Suggest(records []models.RuleRecord, city string, max int) []Suggestion {
	key := normalizer.Fold(city)
	if key == "" || max <= 0 {
		return nil
	}

	seen := make(map[string]bool)
	var out []Suggestion
	for _, r := range records {
		name := normalizer.Fold(r.JurisdictionName)
		if name == "" || name == key || seen[name] {
			continue
		}
		seen[name] = true

		score := smetrics.JaroWinkler(key, name, 0.7, 4)
		if score < suggestThreshold {
			continue
		}
		out = append(out, Suggestion{JurisdictionName: r.JurisdictionName, Score: score})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		di := levenshtein.ComputeDistance(key, normalizer.Fold(out[i].JurisdictionName))
		dj := levenshtein.ComputeDistance(key, normalizer.Fold(out[j].JurisdictionName))
		return di < dj
	})

	if len(out) > max {
		out = out[:max]
	}
	return out
}
