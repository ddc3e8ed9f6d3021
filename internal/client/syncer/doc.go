// Package syncer keeps the local copy and the optional remote copy of the
// case snapshot in step.
//
// Every store change is written to local storage at once. In cloud mode the
// change also schedules a debounced push of the whole snapshot; a burst of
// edits produces one push carrying the latest state. Any remote failure
// drops the session back to local-only mode and tells the user; local data
// is never lost because of a remote error.
//
// Pushes already in flight are not cancelled, so two overlapping pushes may
// reach the server out of order. The debounce window keeps that rare.
package syncer
