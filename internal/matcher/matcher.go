package matcher

import (
	"strings"

	"github.com/str-zone/app/models"
	"github.com/str-zone/internal/normalizer"
)

// FilterByCity returns the records whose normalized jurisdiction name equals
// the normalized query. An empty query (after normalization) means "full
// inventory": all records back, order untouched. Exact match only; ambiguous
// input is the geocoder's problem, not ours.
func FilterByCity(records []models.RuleRecord, city string) []models.RuleRecord {
	key := normalizer.Normalize(city)
	if key == "" {
		return records
	}

	out := make([]models.RuleRecord, 0)
	for _, r := range records {
		if normalizer.Normalize(r.JurisdictionName) == key {
			out = append(out, r)
		}
	}
	return out
}

// FindMatch returns the first record matching the normalized city, in row
// order. Nil when the key is empty or nothing matches.
func FindMatch(records []models.RuleRecord, city string) *models.RuleRecord {
	key := normalizer.Normalize(city)
	if key == "" {
		return nil
	}
	for i := range records {
		if normalizer.Normalize(records[i].JurisdictionName) == key {
			return &records[i]
		}
	}
	return nil
}

// ClassifyStatus derives the display label from the free-text str_status.
// Precedence matters: prohibition words win, then "permit", then
// "license"/"allowed" — so a status mentioning both permit and allowed
// classifies as allowed-with-permit.
func ClassifyStatus(status string) string {
	s := normalizer.Normalize(status)
	if s == "" {
		return models.StatusUnknown
	}
	if strings.Contains(s, "not") || strings.Contains(s, "prohibit") || strings.Contains(s, "ban") {
		return models.StatusNotAllowed
	}
	if strings.Contains(s, "permit") {
		return models.StatusAllowedWithPermit
	}
	if strings.Contains(s, "license") || strings.Contains(s, "allowed") {
		return models.StatusAllowed
	}
	return models.StatusConditional
}
