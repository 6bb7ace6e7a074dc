package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/str-zone/app/models"
	"github.com/str-zone/internal/geocode"
	"github.com/str-zone/internal/sheet"
)

const testCSV = `"jurisdiction_name","jurisdiction_type","str_status","permit_required","min_stay_nights","notes"
"San Diego","City","Allowed with permit, business license required","Yes","2","Tier system"
"Irvine","City","Not allowed in residential zones","No","",""
"Saint Louis","City","Allowed","Yes","1",""
`

// fakeResolver implements geocode.Resolver with canned answers
type fakeResolver struct {
	result *geocode.Result
	err    error
}

func (f *fakeResolver) ResolveCity(ctx context.Context, query string) (*geocode.Result, error) {
	return f.result, f.err
}

func newSheetServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func newTestService(t *testing.T, resolver geocode.Resolver, sheetBase string) *RulesService {
	t.Helper()
	return NewRulesService(resolver, "sheet123", "Sheet1", sheetBase, 3, zap.NewNop())
}

func TestLookup_FullInventory(t *testing.T) {
	srv := newSheetServer(t, http.StatusOK, testCSV)
	defer srv.Close()

	rs := newTestService(t, &fakeResolver{}, srv.URL)

	rows, err := rs.Lookup(context.Background(), "")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("Expected 3 rows, got %d", len(rows))
	}
}

func TestLookup_CityFilter(t *testing.T) {
	srv := newSheetServer(t, http.StatusOK, testCSV)
	defer srv.Close()

	rs := newTestService(t, &fakeResolver{}, srv.URL)

	rows, err := rs.Lookup(context.Background(), "  SAN DIEGO  ")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	if rows[0].JurisdictionName != "San Diego" {
		t.Errorf("Wrong row: %+v", rows[0])
	}
}

func TestLookup_UnknownCityIsEmptyNotError(t *testing.T) {
	srv := newSheetServer(t, http.StatusOK, testCSV)
	defer srv.Close()

	rs := newTestService(t, &fakeResolver{}, srv.URL)

	rows, err := rs.Lookup(context.Background(), "Atlantis")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("Expected empty result, got %d rows", len(rows))
	}
}

func TestLookup_MissingSheetID(t *testing.T) {
	rs := NewRulesService(&fakeResolver{}, "", "Sheet1", "", 3, zap.NewNop())

	_, err := rs.Lookup(context.Background(), "")
	if !errors.Is(err, ErrMissingConfig) {
		t.Errorf("Expected ErrMissingConfig, got %v", err)
	}
}

func TestLookup_HeaderOnlySheetIsMalformed(t *testing.T) {
	srv := newSheetServer(t, http.StatusOK, `"jurisdiction_name","str_status"`+"\n")
	defer srv.Close()

	rs := newTestService(t, &fakeResolver{}, srv.URL)

	_, err := rs.Lookup(context.Background(), "")
	if !errors.Is(err, sheet.ErrMalformedSheet) {
		t.Errorf("Expected ErrMalformedSheet, got %v", err)
	}
}

func TestLookup_SheetServerError(t *testing.T) {
	srv := newSheetServer(t, http.StatusInternalServerError, "boom")
	defer srv.Close()

	rs := newTestService(t, &fakeResolver{}, srv.URL)

	_, err := rs.Lookup(context.Background(), "")
	if !errors.Is(err, ErrUpstreamSheet) {
		t.Errorf("Expected ErrUpstreamSheet, got %v", err)
	}
}

func TestCheck_PermitCityClassified(t *testing.T) {
	srv := newSheetServer(t, http.StatusOK, testCSV)
	defer srv.Close()

	resolver := &fakeResolver{result: &geocode.Result{
		City:          "San Diego",
		FullPlaceName: "San Diego, California, United States",
	}}
	rs := newTestService(t, resolver, srv.URL)

	result, err := rs.Check(context.Background(), "san diego")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if result.ResolvedCity != "San Diego" {
		t.Errorf("Expected resolved city San Diego, got %q", result.ResolvedCity)
	}
	if result.Matched == nil {
		t.Fatal("Expected a matched record")
	}
	if result.StatusLabel != models.StatusAllowedWithPermit {
		t.Errorf("Expected %q, got %q", models.StatusAllowedWithPermit, result.StatusLabel)
	}
	if len(result.Suggestions) != 0 {
		t.Errorf("No suggestions expected on a hit, got %v", result.Suggestions)
	}
}

func TestCheck_ZipFallsBackToPlaceNameSegment(t *testing.T) {
	srv := newSheetServer(t, http.StatusOK, testCSV)
	defer srv.Close()

	// Geocoder found the place but no city field, typical for a bare zip
	resolver := &fakeResolver{result: &geocode.Result{
		FullPlaceName: "San Diego, California, United States",
	}}
	rs := newTestService(t, resolver, srv.URL)

	result, err := rs.Check(context.Background(), "92101")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if result.ResolvedCity != "San Diego" {
		t.Errorf("Expected San Diego from place name segment, got %q", result.ResolvedCity)
	}
	if result.Matched == nil {
		t.Error("Expected a matched record")
	}
}

func TestCheck_MissReturnsSuggestions(t *testing.T) {
	srv := newSheetServer(t, http.StatusOK, testCSV)
	defer srv.Close()

	resolver := &fakeResolver{result: &geocode.Result{City: "St Louis"}}
	rs := newTestService(t, resolver, srv.URL)

	result, err := rs.Check(context.Background(), "St Louis")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if result.Matched != nil {
		t.Fatalf("Expected no match, got %+v", result.Matched)
	}
	if len(result.Suggestions) == 0 {
		t.Fatal("Expected suggestions for a near-miss")
	}
	if result.Suggestions[0].JurisdictionName != "Saint Louis" {
		t.Errorf("Expected Saint Louis as top suggestion, got %q", result.Suggestions[0].JurisdictionName)
	}
	t.Logf("suggestions: %+v", result.Suggestions)
}

func TestCheck_GeocoderFailurePropagates(t *testing.T) {
	srv := newSheetServer(t, http.StatusOK, testCSV)
	defer srv.Close()

	resolver := &fakeResolver{err: geocode.ErrUpstream}
	rs := newTestService(t, resolver, srv.URL)

	_, err := rs.Check(context.Background(), "anywhere")
	if !errors.Is(err, geocode.ErrUpstream) {
		t.Errorf("Expected geocode.ErrUpstream, got %v", err)
	}
}

func TestCheck_NoFeaturesFallsBackToRawQuery(t *testing.T) {
	srv := newSheetServer(t, http.StatusOK, testCSV)
	defer srv.Close()

	// nil result means the geocoder found nothing at all
	resolver := &fakeResolver{result: nil}
	rs := newTestService(t, resolver, srv.URL)

	result, err := rs.Check(context.Background(), "  Irvine  ")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if result.ResolvedCity != "Irvine" {
		t.Errorf("Expected raw query fallback Irvine, got %q", result.ResolvedCity)
	}
	if result.StatusLabel != models.StatusNotAllowed {
		t.Errorf("Expected %q, got %q", models.StatusNotAllowed, result.StatusLabel)
	}
}

func TestExport_RoundTrips(t *testing.T) {
	srv := newSheetServer(t, http.StatusOK, testCSV)
	defer srv.Close()

	rs := newTestService(t, &fakeResolver{}, srv.URL)

	csv, err := rs.Export(context.Background())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	records, err := sheet.MapRecords(sheet.Parse(csv))
	if err != nil {
		t.Fatalf("Exported CSV did not map back: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records after round trip, got %d", len(records))
	}
	if records[0].STRStatus != "Allowed with permit, business license required" {
		t.Errorf("Status with comma did not survive round trip: %q", records[0].STRStatus)
	}
}
