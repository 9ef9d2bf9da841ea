// Package media captures voice recordings and reads local media files for a
// gift draft.
//
// Recording is a two-phase resource: RequestMicrophone acquires a stream,
// StartRecording begins capture on it and StopRecording returns the bytes.
// Record wraps the three calls and always releases the stream.
package media
