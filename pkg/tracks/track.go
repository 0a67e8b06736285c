package tracks

// Track is one hazard track: an ordered polyline of at least two vertices
// plus a scalar intensity (peak wind, kt).
type Track struct {
	SID          string
	Name         string
	Season       int
	Coordinates  [][2]float64 // lon, lat vertex order as loaded
	MaxIntensity float64
	Mitigated    bool
}

// Collection is an ordered set of tracks. The baseline collection is shared
// process-wide and must be treated as read-only; Mitigate returns fresh
// collections.
type Collection struct {
	tracks []Track
}

// NewCollection builds a collection from tracks, in the given order.
func NewCollection(ts []Track) *Collection {
	return &Collection{tracks: ts}
}

// Len returns the number of tracks.
func (c *Collection) Len() int {
	return len(c.tracks)
}

// Tracks returns the underlying track slice. Callers must not modify it.
func (c *Collection) Tracks() []Track {
	return c.tracks
}

// TrackProperties is the GeoJSON properties object for one track feature.
type TrackProperties struct {
	SID       string  `json:"sid"`
	Name      string  `json:"name"`
	Year      int     `json:"year"`
	Wind      float64 `json:"wind"`
	Mitigated bool    `json:"is_mitigated,omitempty"`
}

// Geometry is a GeoJSON LineString geometry.
type Geometry struct {
	Type        string       `json:"type"`
	Coordinates [][2]float64 `json:"coordinates"`
}

// Feature is one GeoJSON track feature.
type Feature struct {
	Type       string          `json:"type"`
	Geometry   Geometry        `json:"geometry"`
	Properties TrackProperties `json:"properties"`
}

// FeatureCollection is the GeoJSON document shape for a track collection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// GeoJSON renders the collection as a GeoJSON FeatureCollection, one
// LineString feature per track, preserving order.
func (c *Collection) GeoJSON() *FeatureCollection {
	features := make([]Feature, 0, len(c.tracks))
	for _, t := range c.tracks {
		features = append(features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "LineString",
				Coordinates: t.Coordinates,
			},
			Properties: TrackProperties{
				SID:       t.SID,
				Name:      t.Name,
				Year:      t.Season,
				Wind:      t.MaxIntensity,
				Mitigated: t.Mitigated,
			},
		})
	}
	return &FeatureCollection{Type: "FeatureCollection", Features: features}
}
