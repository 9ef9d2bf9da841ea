package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/giftbox/internal/gift"
)

// Stream is an acquired audio input. Close releases the device and must be
// safe to call more than once.
type Stream interface {
	Close() error
}

// Recorder is a running capture on a Stream.
type Recorder interface {
	ContentType() string
}

// StopSignal fires when the user ends a recording.
type StopSignal <-chan struct{}

// Arm is called once the recorder is running and returns the signal that
// ends the recording. It is never called when the microphone or the
// recorder cannot be started.
type Arm func() StopSignal

// Capture is the device side of media handling.
type Capture interface {
	// RequestMicrophone fails with gift.ErrPermissionDenied or
	// gift.ErrUnsupported when no input can be acquired.
	RequestMicrophone(ctx context.Context) (Stream, error)
	StartRecording(ctx context.Context, s Stream) (Recorder, error)
	StopRecording(r Recorder) ([]byte, error)
	ReadLocalFile(path string) (*gift.MediaFile, error)
}

// VoiceFileName is the name given to recorded voice messages.
const VoiceFileName = "voice-message"

// Record runs one recording until stop fires or ctx is done. The stream is
// closed on every exit path. On cancellation the recorder is still stopped
// and ctx.Err() is returned.
func Record(ctx context.Context, c Capture, stop StopSignal) (*gift.MediaFile, error) {
	return RecordArmed(ctx, c, func() StopSignal { return stop })
}

// RecordArmed is Record with the stop signal created only after recording
// has started.
func RecordArmed(ctx context.Context, c Capture, arm Arm) (_ *gift.MediaFile, err error) {
	stream, err := c.RequestMicrophone(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := stream.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("release microphone: %w", cerr)
		}
	}()

	rec, err := c.StartRecording(ctx, stream)
	if err != nil {
		return nil, fmt.Errorf("start recording: %w", err)
	}

	select {
	case <-arm():
	case <-ctx.Done():
	}

	data, stopErr := c.StopRecording(rec)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if stopErr != nil {
		return nil, fmt.Errorf("stop recording: %w", stopErr)
	}
	if len(data) == 0 {
		return nil, errors.New("stop recording: no audio captured")
	}

	return &gift.MediaFile{
		Name:        VoiceFileName + extensionFor(rec.ContentType()),
		ContentType: rec.ContentType(),
		Data:        data,
	}, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "audio/wav", "audio/x-wav", "audio/wave":
		return ".wav"
	case "audio/webm":
		return ".webm"
	case "audio/ogg":
		return ".ogg"
	case "audio/mpeg":
		return ".mp3"
	default:
		return ""
	}
}
