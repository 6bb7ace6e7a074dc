package models

// RuleRecord is one row of STR regulation data for a jurisdiction, re-derived
// from the published sheet on every request. All fields are free text; the
// sheet is the source of truth and may change between requests.
type RuleRecord struct {
	JurisdictionName         string `json:"jurisdiction_name"` // natural key, unique after normalization within one snapshot
	JurisdictionType         string `json:"jurisdiction_type,omitempty"`
	STRStatus                string `json:"str_status,omitempty"`
	PermitRequired           string `json:"permit_required,omitempty"`
	MinStayNights            string `json:"min_stay_nights,omitempty"` // kept as text, may be non-numeric in source data
	PrimaryResidenceRequired string `json:"primary_residence_required,omitempty"`
	CapOrLimit               string `json:"cap_or_limit,omitempty"`
	Taxes                    string `json:"taxes,omitempty"`
	Notes                    string `json:"notes,omitempty"`
	PermitChecklist          string `json:"permit_checklist,omitempty"` // multi-line
	SourceURL                string `json:"source_url,omitempty"`
	LastVerified             string `json:"last_verified,omitempty"`
}

// Status labels derived from STRStatus, never stored
const (
	StatusNotAllowed        = "Not Allowed"
	StatusAllowedWithPermit = "Allowed with Permit"
	StatusAllowed           = "Allowed"
	StatusUnknown           = "Unknown"
	StatusConditional       = "Conditional / Check details"
)
