// Indra is a climate intervention analysis service for the Indian monsoon.
//
// It serves an HTTP API that:
//   - Classifies free-text intervention proposals against a mechanism catalog
//   - Scores feasibility from policy alignment and investment scale
//   - Streams staged analysis results as newline-delimited JSON
//   - Applies intensity mitigation to a baseline cyclone track dataset
//   - Monitors monsoon scenario data and raises hazard alerts
//
// Usage:
//
//	# Start server with default configuration
//	indra run
//
//	# Start with custom configuration file
//	indra run --config /path/to/config.yaml
//
//	# Convert an IBTrACS CSV export into the baseline dataset
//	indra tracks process --input ibtracs.csv --output baseline_tracks.geojson
//
//	# Show version information
//	indra version
package main

func main() {
	Execute()
}
