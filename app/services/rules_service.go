package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/str-zone/app/config"
	"github.com/str-zone/app/models"
	"github.com/str-zone/internal/geocode"
	"github.com/str-zone/internal/matcher"
	"github.com/str-zone/internal/sheet"
)

// Pipeline errors, mapped to HTTP statuses in the controller
var (
	ErrMissingConfig = errors.New("sheet id not configured")
	ErrUpstreamSheet = errors.New("sheet upstream failure")
)

// CheckResult is the output of one full resolution: resolve the query to a
// city, fetch and map the current sheet snapshot, filter, classify.
type CheckResult struct {
	Records      []models.RuleRecord
	Matched      *models.RuleRecord
	ResolvedCity string
	StatusLabel  string // empty when Matched is nil
	Suggestions  []matcher.Suggestion
}

// RulesService runs the rules resolution pipeline. It holds no per-request
// state: every call fetches a fresh sheet snapshot, so concurrent callers
// never share anything mutable.
type RulesService struct {
	resolver   geocode.Resolver
	client     *http.Client
	logger     *zap.Logger
	sheetID    string
	sheetTab   string
	sheetBase  string
	maxSuggest int
}

// NewRulesService creates the pipeline service. sheetBase is overridable for
// tests; pass "" for the Google Sheets export endpoint.
func NewRulesService(resolver geocode.Resolver, sheetID, sheetTab, sheetBase string, maxSuggest int, logger *zap.Logger) *RulesService {
	if sheetBase == "" {
		sheetBase = "https://docs.google.com/spreadsheets/d"
	}
	return &RulesService{
		resolver:   resolver,
		client:     &http.Client{Timeout: config.RequestTimeout()},
		logger:     logger,
		sheetID:    sheetID,
		sheetTab:   sheetTab,
		sheetBase:  sheetBase,
		maxSuggest: maxSuggest,
	}
}

// fetchRecords pulls the current sheet snapshot, uncached, and maps it.
// The sheet is mutable upstream and this system defines no staleness
// window, so every call is a fresh fetch.
func (rs *RulesService) fetchRecords(ctx context.Context) ([]models.RuleRecord, error) {
	if rs.sheetID == "" {
		return nil, ErrMissingConfig
	}

	// Published-sheet CSV export; the sheet must be link-viewable
	csvURL := fmt.Sprintf("%s/%s/gviz/tq?tqx=out:csv&sheet=%s",
		rs.sheetBase, rs.sheetID, url.QueryEscape(rs.sheetTab))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, csvURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := rs.client.Do(req)
	if err != nil {
		rs.logger.Error("sheet fetch failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUpstreamSheet, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		rs.logger.Warn("sheet non-success status", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", ErrUpstreamSheet, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamSheet, err)
	}

	records, err := sheet.MapRecords(sheet.Parse(string(body)))
	if err != nil {
		return nil, err
	}

	rs.logger.Debug("sheet snapshot mapped", zap.Int("records", len(records)))
	return records, nil
}

// Lookup filters the current snapshot by city. Empty city means full
// inventory. Zero matches is a valid empty result, not an error.
func (rs *RulesService) Lookup(ctx context.Context, city string) ([]models.RuleRecord, error) {
	records, err := rs.fetchRecords(ctx)
	if err != nil {
		return nil, err
	}
	return matcher.FilterByCity(records, city), nil
}

// Geocode resolves a free-text query to a city. A nil result with nil error
// means the geocoder found nothing.
func (rs *RulesService) Geocode(ctx context.Context, query string) (*geocode.Result, error) {
	return rs.resolver.ResolveCity(ctx, query)
}

// Check runs the whole pipeline for a free-text query: geocode, fall back
// to a usable city string, fetch+map the sheet, filter, classify. The two
// upstream calls are sequential by necessity - filtering needs the
// resolved city. One attempt each, no retries.
func (rs *RulesService) Check(ctx context.Context, query string) (*CheckResult, error) {
	resolved, err := rs.resolver.ResolveCity(ctx, query)
	if err != nil {
		return nil, err
	}

	city := geocode.FallbackCity(resolved, query)
	rs.logger.Info("resolved query to city",
		zap.String("query", query), zap.String("city", city))

	records, err := rs.fetchRecords(ctx)
	if err != nil {
		return nil, err
	}

	result := &CheckResult{
		Records:      matcher.FilterByCity(records, city),
		ResolvedCity: city,
	}

	// A single match gets classified; duplicates or misses return the
	// filtered list as-is so the caller can present the ambiguity.
	if len(result.Records) == 1 {
		if m := matcher.FindMatch(result.Records, city); m != nil {
			result.Matched = m
			result.StatusLabel = matcher.ClassifyStatus(m.STRStatus)
		}
	}
	if result.Matched == nil {
		// advisory near-misses over the full snapshot
		result.Suggestions = matcher.Suggest(records, city, rs.maxSuggest)
	}

	return result, nil
}

// Export re-serializes the full current inventory as CSV text
func (rs *RulesService) Export(ctx context.Context) (string, error) {
	records, err := rs.fetchRecords(ctx)
	if err != nil {
		return "", err
	}

	grid := make([][]string, 0, len(records)+1)
	grid = append(grid, sheet.HeaderRow())
	for _, r := range records {
		grid = append(grid, sheet.RecordRow(r))
	}
	return sheet.Serialize(grid), nil
}
