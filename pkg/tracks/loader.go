package tracks

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// Parse decodes a GeoJSON FeatureCollection into a Collection. Features with
// fewer than two vertices carry no usable geometry and are excluded; the
// second return value reports how many were dropped.
func Parse(data []byte) (*Collection, int, error) {
	var fc FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, 0, fmt.Errorf("failed to parse baseline GeoJSON: %w", err)
	}

	ts := make([]Track, 0, len(fc.Features))
	dropped := 0
	for _, f := range fc.Features {
		if len(f.Geometry.Coordinates) < 2 {
			dropped++
			continue
		}
		ts = append(ts, Track{
			SID:          f.Properties.SID,
			Name:         f.Properties.Name,
			Season:       f.Properties.Year,
			Coordinates:  f.Geometry.Coordinates,
			MaxIntensity: f.Properties.Wind,
			Mitigated:    f.Properties.Mitigated,
		})
	}
	return &Collection{tracks: ts}, dropped, nil
}

// ReadFile loads a baseline collection from a GeoJSON file.
func ReadFile(path string) (*Collection, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read baseline file %q: %w", path, err)
	}
	return Parse(data)
}

// Load reads the baseline collection at path. A missing or unparsable file
// degrades to an empty collection: the simulator stays up and every analysis
// simply mitigates nothing. The failure is logged, not returned.
func Load(path string, logger *slog.Logger) *Collection {
	if logger == nil {
		logger = slog.Default()
	}

	c, dropped, err := ReadFile(path)
	if err != nil {
		logger.Error("baseline tracks unavailable, serving empty collection",
			"path", path,
			"error", err,
		)
		return &Collection{}
	}

	logger.Info("baseline tracks loaded",
		"path", path,
		"tracks", c.Len(),
		"dropped_short_features", dropped,
	)
	return c
}
