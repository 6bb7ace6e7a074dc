package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func newTestResolver(t *testing.T, handler http.HandlerFunc) (*MapboxResolver, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewMapboxResolver("test-token", srv.URL, zap.NewNop()), srv
}

func TestResolveCity_FeatureIsPlace(t *testing.T) {
	resolver, _ := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features":[{
			"text":"San Diego",
			"place_name":"San Diego, California, United States",
			"place_type":["place"],
			"context":[{"id":"region.123","text":"California"}]
		}]}`))
	})

	got, err := resolver.ResolveCity(context.Background(), "San Diego")
	if err != nil {
		t.Fatalf("ResolveCity: %v", err)
	}
	if got.City != "San Diego" {
		t.Errorf("City = %q, want San Diego", got.City)
	}
	if got.FullPlaceName != "San Diego, California, United States" {
		t.Errorf("FullPlaceName = %q", got.FullPlaceName)
	}
}

func TestResolveCity_CityFromContext(t *testing.T) {
	resolver, _ := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features":[{
			"text":"1600 Pacific Hwy",
			"place_name":"1600 Pacific Hwy, San Diego, California 92101, United States",
			"place_type":["address"],
			"context":[
				{"id":"neighborhood.9","text":"Columbia"},
				{"id":"place.456","text":"San Diego"},
				{"id":"region.123","text":"California"}
			]
		}]}`))
	})

	got, err := resolver.ResolveCity(context.Background(), "1600 Pacific Hwy")
	if err != nil {
		t.Fatalf("ResolveCity: %v", err)
	}
	if got.City != "San Diego" {
		t.Errorf("City = %q, want San Diego (from place. context)", got.City)
	}
}

func TestResolveCity_NoFeatures(t *testing.T) {
	resolver, _ := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features":[]}`))
	})

	got, err := resolver.ResolveCity(context.Background(), "zzzz")
	if err != nil {
		t.Fatalf("ResolveCity: %v", err)
	}
	if got.City != "" || got.FullPlaceName != "" {
		t.Errorf("expected empty result, got %+v", got)
	}
}

func TestResolveCity_UpstreamError(t *testing.T) {
	resolver, _ := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := resolver.ResolveCity(context.Background(), "San Diego")
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
}

func TestResolveCity_MissingToken(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	resolver := NewMapboxResolver("", srv.URL, zap.NewNop())

	_, err := resolver.ResolveCity(context.Background(), "San Diego")
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
	if called {
		t.Error("request went upstream despite missing token")
	}
}

func TestFallbackCity(t *testing.T) {
	testCases := []struct {
		name     string
		result   *Result
		rawQuery string
		expected string
	}{
		{
			name:     "Resolved_City_Wins",
			result:   &Result{City: "San Diego", FullPlaceName: "San Diego, California"},
			rawQuery: "some address",
			expected: "San Diego",
		},
		{
			name:     "Zip_Falls_Back_To_Place_Name_Segment",
			result:   &Result{FullPlaceName: "San Diego, California, United States"},
			rawQuery: "92101",
			expected: "San Diego",
		},
		{
			name:     "No_Geocode_Data_Uses_Raw_Query",
			result:   &Result{},
			rawQuery: "Austin",
			expected: "Austin",
		},
		{
			name:     "Nil_Result_Uses_Raw_Query",
			result:   nil,
			rawQuery: " Austin ",
			expected: "Austin",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FallbackCity(tc.result, tc.rawQuery); got != tc.expected {
				t.Errorf("FallbackCity = %q, want %q", got, tc.expected)
			}
		})
	}
}
