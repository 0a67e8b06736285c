// Package research defines the citation-lookup contract used by the analysis
// pipeline and its arXiv implementation.
//
// Fetch failures never fail an analysis: callers substitute an empty paper
// list and continue. There is no retry or backoff anywhere in this package.
package research
