package sheet

import (
	"errors"
	"strings"

	"github.com/str-zone/app/models"
	"github.com/str-zone/internal/normalizer"
)

// ErrMalformedSheet means the parsed grid has no header row or no data rows.
// Distinct from a filter matching zero records, which is a valid empty result.
var ErrMalformedSheet = errors.New("sheet has no header or data rows")

// Expected header names, matched case- and whitespace-insensitively. Any of
// them may be absent from the sheet; an absent header maps to an empty field
// on every record.
const (
	colJurisdictionName = "jurisdiction_name"
	colJurisdictionType = "jurisdiction_type"
	colSTRStatus        = "str_status"
	colPermitRequired   = "permit_required"
	colMinStayNights    = "min_stay_nights"
	colPrimaryResidence = "primary_residence_required"
	colCapOrLimit       = "cap_or_limit"
	colTaxes            = "taxes"
	colNotes            = "notes"
	colPermitChecklist  = "permit_checklist"
	colSourceURL        = "source_url"
	colLastVerified     = "last_verified"
)

// MapRecords treats grid row 0 as the header and maps each data row into a
// RuleRecord by header-name lookup. Column order in the sheet does not
// matter; the schema is bound at read time, not by position.
func MapRecords(grid [][]string) ([]models.RuleRecord, error) {
	if len(grid) < 2 {
		return nil, ErrMalformedSheet
	}

	header := make([]string, len(grid[0]))
	for i, h := range grid[0] {
		header[i] = normalizer.Normalize(h)
	}

	idx := func(name string) int {
		want := normalizer.Normalize(name)
		for i, h := range header {
			if h == want {
				return i
			}
		}
		return -1
	}

	get := func(row []string, name string) string {
		i := idx(name)
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	records := make([]models.RuleRecord, 0, len(grid)-1)
	for _, row := range grid[1:] {
		records = append(records, models.RuleRecord{
			JurisdictionName:         get(row, colJurisdictionName),
			JurisdictionType:         get(row, colJurisdictionType),
			STRStatus:                get(row, colSTRStatus),
			PermitRequired:           get(row, colPermitRequired),
			MinStayNights:            get(row, colMinStayNights),
			PrimaryResidenceRequired: get(row, colPrimaryResidence),
			CapOrLimit:               get(row, colCapOrLimit),
			Taxes:                    get(row, colTaxes),
			Notes:                    get(row, colNotes),
			PermitChecklist:          get(row, colPermitChecklist),
			SourceURL:                get(row, colSourceURL),
			LastVerified:             get(row, colLastVerified),
		})
	}

	return records, nil
}

// HeaderRow returns the canonical column order used when re-serializing
// records, e.g. for the CSV export endpoint.
func HeaderRow() []string {
	return []string{
		colJurisdictionName, colJurisdictionType, colSTRStatus,
		colPermitRequired, colMinStayNights, colPrimaryResidence,
		colCapOrLimit, colTaxes, colNotes, colPermitChecklist,
		colSourceURL, colLastVerified,
	}
}

// RecordRow renders a record in HeaderRow order
func RecordRow(r models.RuleRecord) []string {
	return []string{
		r.JurisdictionName, r.JurisdictionType, r.STRStatus,
		r.PermitRequired, r.MinStayNights, r.PrimaryResidenceRequired,
		r.CapOrLimit, r.Taxes, r.Notes, r.PermitChecklist,
		r.SourceURL, r.LastVerified,
	}
}
