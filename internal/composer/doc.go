// Package composer turns a gift draft into a stored gift and a share link.
//
// A Composer owns exactly one draft. Submit drives it through
// Idle → Validating → Persisting → Succeeded; a failed attempt returns to
// Idle with the draft intact and the error kept in Status. Nothing is
// retried automatically.
package composer
