// Package gift holds the GiftBox domain model shared by the composer, the
// reveal sequencer, the client stores and the hosted backend.
//
// # Overview
//
// A Gift is the only persisted entity. It is built from a validated Draft,
// receives its ID from a Store at the moment of persistence and is never
// mutated afterwards except for the write-once OpenedAt marker.
//
// Key Types
//
//   - type Gift       : persisted record
//   - type Draft      : unvalidated user input (names, message, optional media)
//   - type ValidDraft : validated input with resolved media references
//   - type Store      : persistence/storage collaborator (local or hosted)
//   - type Reference  : what a share link points at (an id or the preview)
//
// # Error Handling
//
// Domain failures are typed (ValidationError, MediaError, PersistenceError,
// NotFoundError) and unwrap to sentinel errors, so callers can match them with
// errors.Is / errors.As.
package gift
