// Package reveal drives the staged disclosure of a stored gift.
//
// A Sequencer loads one gift, waits for the box to be opened and then walks
// a step plan derived from the gift content. Advancing is gated on an
// entrance-complete signal from the renderer, so step N+1 never shows before
// step N has finished entering.
package reveal
