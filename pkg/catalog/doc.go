// Package catalog holds the static catalogue of climate-intervention
// mechanisms, their governance context, and the keyword classifier that maps
// free-text strategy descriptions onto the catalogue.
//
// The mechanism set is a closed enumeration: every Mechanism value carries
// its ground-truth record and trigger set as data, selected by exhaustive
// switch. The catalogue is immutable and safe for unlimited concurrent
// readers.
package catalog
