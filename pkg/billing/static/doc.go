// Package static implements billing.Provider on top of a YAML catalog.
//
// It serves fixed placements, grants premium access on purchase and pushes
// entitlement changes to listeners, which makes it suitable for local runs,
// demos and end-to-end tests of the premium coordinator without a live
// billing backend.
package static
