// Package reconciler brings the target filesystem state into agreement with
// the desired symlink state.
//
// It orchestrates unit enumeration, link-state inspection, and the backup
// store to perform the link, unlink, and status operations. All failures are
// per-unit: one bad unit never aborts the rest of the run. The link
// operation is idempotent, so re-running it is the recovery mechanism for an
// interrupted run.
package reconciler
