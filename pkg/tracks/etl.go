package tracks

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ETLOptions configures the IBTrACS conversion.
type ETLOptions struct {
	// StartYear drops storms from earlier seasons. Zero keeps everything.
	StartYear int
}

// ProcessIBTrACS converts an IBTrACS CSV export into the baseline GeoJSON
// consumed by Load. One LineString feature is produced per storm, vertices
// in record order, wind set to the storm's maximum observed value. Storms
// with fewer than two usable points are skipped.
//
// Returns the number of features written.
func ProcessIBTrACS(r io.Reader, w io.Writer, opts ETLOptions) (int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read IBTrACS header: %w", err)
	}
	// Second row carries units, not data.
	if _, err := cr.Read(); err != nil {
		return 0, fmt.Errorf("failed to read IBTrACS units row: %w", err)
	}

	col := func(name string) (int, error) {
		for i, h := range header {
			if h == name {
				return i, nil
			}
		}
		return 0, fmt.Errorf("IBTrACS column %q not found", name)
	}

	var cols struct{ sid, season, name, lat, lon, wind int }
	for _, c := range []struct {
		name string
		dst  *int
	}{
		{"SID", &cols.sid},
		{"SEASON", &cols.season},
		{"NAME", &cols.name},
		{"LAT", &cols.lat},
		{"LON", &cols.lon},
		{"USA_WIND", &cols.wind},
	} {
		idx, err := col(c.name)
		if err != nil {
			return 0, err
		}
		*c.dst = idx
	}
	maxCol := cols.sid
	for _, idx := range []int{cols.season, cols.name, cols.lat, cols.lon, cols.wind} {
		if idx > maxCol {
			maxCol = idx
		}
	}

	type storm struct {
		name   string
		season int
		coords [][2]float64
		wind   float64
	}
	storms := make(map[string]*storm)
	order := []string{} // first-seen order keeps output deterministic

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read IBTrACS row: %w", err)
		}

		// FieldsPerRecord is disabled, so the export may contain
		// truncated rows. Skip anything too short to index.
		if len(row) <= maxCol {
			continue
		}
		season, err := strconv.Atoi(strings.TrimSpace(row[cols.season]))
		if err != nil || (opts.StartYear > 0 && season < opts.StartYear) {
			continue
		}
		lat, latErr := strconv.ParseFloat(strings.TrimSpace(row[cols.lat]), 64)
		lon, lonErr := strconv.ParseFloat(strings.TrimSpace(row[cols.lon]), 64)
		if latErr != nil || lonErr != nil {
			continue
		}
		wind := 0.0
		if v := strings.TrimSpace(row[cols.wind]); v != "" {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				wind = parsed
			}
		}

		sid := row[cols.sid]
		s, ok := storms[sid]
		if !ok {
			s = &storm{name: strings.TrimSpace(row[cols.name]), season: season}
			storms[sid] = s
			order = append(order, sid)
		}
		s.coords = append(s.coords, [2]float64{lon, lat})
		if wind > s.wind {
			s.wind = wind
		}
	}

	features := make([]Feature, 0, len(order))
	for _, sid := range order {
		s := storms[sid]
		if len(s.coords) < 2 {
			continue
		}
		features = append(features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "LineString",
				Coordinates: s.coords,
			},
			Properties: TrackProperties{
				SID:  sid,
				Name: s.name,
				Year: s.season,
				Wind: s.wind,
			},
		})
	}

	fc := FeatureCollection{Type: "FeatureCollection", Features: features}
	if err := json.NewEncoder(w).Encode(&fc); err != nil {
		return 0, fmt.Errorf("failed to write baseline GeoJSON: %w", err)
	}
	return len(features), nil
}

// ProcessIBTrACSFile is the file-path convenience wrapper around
// ProcessIBTrACS.
func ProcessIBTrACSFile(inputPath, outputPath string, opts ETLOptions) (int, error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open IBTrACS input %q: %w", inputPath, err)
	}
	defer in.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create baseline output %q: %w", outputPath, err)
	}
	defer out.Close()

	return ProcessIBTrACS(in, out, opts)
}
