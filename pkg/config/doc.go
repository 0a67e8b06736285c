// Package config defines the service configuration and its lifecycle.
//
// Configuration is loaded from a YAML file, filled in with defaults,
// overridden by INDRA_* environment variables and then validated as a
// whole. Validation collects every field error instead of stopping at the
// first, so a bad deployment surfaces all its problems in one pass.
//
// A process-wide singleton is available through Initialize/GetConfig for
// the CLI entry point; library code receives explicit Config values.
package config
