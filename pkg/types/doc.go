// Package types defines the core types shared across dotlink packages.
//
// This includes the ConfigUnit model, the closed LinkState enumeration used
// for link-state classification, per-unit reconciliation results, and the FS
// interface that all filesystem-touching packages accept so tests can
// substitute implementations.
package types
