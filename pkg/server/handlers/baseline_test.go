package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"indra/pkg/tracks"
)

func TestBaselineHandler(t *testing.T) {
	baseline := tracks.NewCollection([]tracks.Track{
		{SID: "A", Name: "ALPHA", Season: 2013, Coordinates: [][2]float64{{90, 12}, {89, 13}}, MaxIntensity: 140},
		{SID: "B", Name: "BETA", Season: 2019, Coordinates: [][2]float64{{88, 10}, {87, 12}}, MaxIntensity: 135},
	})
	h := NewBaselineHandler(baseline)

	t.Run("serves GeoJSON", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/baseline", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}

		var fc tracks.FeatureCollection
		if err := json.Unmarshal(w.Body.Bytes(), &fc); err != nil {
			t.Fatalf("Response is not GeoJSON: %v", err)
		}
		if fc.Type != "FeatureCollection" || len(fc.Features) != 2 {
			t.Errorf("Unexpected collection: type=%q features=%d", fc.Type, len(fc.Features))
		}
	})

	t.Run("rejects non-GET", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/baseline", nil))

		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("Expected 405, got %d", w.Code)
		}
	})

	t.Run("empty collection still serves", func(t *testing.T) {
		empty := NewBaselineHandler(tracks.NewCollection(nil))
		w := httptest.NewRecorder()
		empty.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/baseline", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}

		var fc tracks.FeatureCollection
		if err := json.Unmarshal(w.Body.Bytes(), &fc); err != nil {
			t.Fatal(err)
		}
		if fc.Features == nil {
			t.Error("Expected empty features array, not null")
		}
	})
}
