package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/giftbox/internal/filex"
	"github.com/dmitrijs2005/giftbox/internal/gift"
	"github.com/dmitrijs2005/giftbox/internal/logging"
)

// DefaultRecorderCommand records CD-quality WAV to stdout with ALSA.
const DefaultRecorderCommand = "arecord -q -f cd -t wav -"

const defaultStopGrace = 3 * time.Second

var lookPath = exec.LookPath

// CommandCapture records through an external program that writes audio to
// stdout until it is interrupted.
type CommandCapture struct {
	Program     string
	Args        []string
	ContentType string
	// StopGrace bounds how long StopRecording waits after the interrupt
	// before killing the recorder.
	StopGrace time.Duration

	log logging.Logger
}

// NewCommandCapture splits command on whitespace into program and args.
func NewCommandCapture(command string, log logging.Logger) (*CommandCapture, error) {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return nil, fmt.Errorf("recorder command is empty: %w", gift.ErrUnsupported)
	}
	return &CommandCapture{
		Program:     parts[0],
		Args:        parts[1:],
		ContentType: "audio/wav",
		StopGrace:   defaultStopGrace,
		log:         log,
	}, nil
}

type commandStream struct {
	path string

	mu     sync.Mutex
	active *commandRecorder
}

// Close stops any recorder still running on the stream.
func (s *commandStream) Close() error {
	s.mu.Lock()
	rec := s.active
	s.active = nil
	s.mu.Unlock()

	if rec != nil {
		rec.kill()
	}
	return nil
}

type commandRecorder struct {
	cmd         *exec.Cmd
	stdout      bytes.Buffer
	stderr      bytes.Buffer
	done        chan struct{}
	waitErr     error
	contentType string
	stream      *commandStream
}

func (r *commandRecorder) ContentType() string { return r.contentType }

func (r *commandRecorder) exited() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

func (r *commandRecorder) kill() {
	if r.exited() {
		return
	}
	_ = r.cmd.Process.Kill()
	<-r.done
}

func (c *CommandCapture) RequestMicrophone(ctx context.Context) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := lookPath(c.Program)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: %s", gift.ErrPermissionDenied, c.Program)
		}
		return nil, fmt.Errorf("%w: recorder %q not available", gift.ErrUnsupported, c.Program)
	}
	return &commandStream{path: path}, nil
}

func (c *CommandCapture) StartRecording(ctx context.Context, s Stream) (Recorder, error) {
	stream, ok := s.(*commandStream)
	if !ok {
		return nil, fmt.Errorf("unexpected stream type %T", s)
	}

	stream.mu.Lock()
	defer stream.mu.Unlock()
	if stream.active != nil {
		return nil, errors.New("stream is already recording")
	}

	rec := &commandRecorder{
		done:        make(chan struct{}),
		contentType: c.ContentType,
		stream:      stream,
	}
	rec.cmd = exec.Command(stream.path, c.Args...)
	rec.cmd.Stdout = &rec.stdout
	rec.cmd.Stderr = &rec.stderr

	if err := rec.cmd.Start(); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: %v", gift.ErrPermissionDenied, err)
		}
		return nil, err
	}
	go func() {
		rec.waitErr = rec.cmd.Wait()
		close(rec.done)
	}()

	stream.active = rec
	if c.log != nil {
		c.log.Debug(ctx, "recording started", "program", filepath.Base(stream.path), "pid", rec.cmd.Process.Pid)
	}
	return rec, nil
}

func (c *CommandCapture) StopRecording(r Recorder) ([]byte, error) {
	rec, ok := r.(*commandRecorder)
	if !ok {
		return nil, fmt.Errorf("unexpected recorder type %T", r)
	}

	interrupted := false
	if !rec.exited() {
		interrupted = true
		_ = rec.cmd.Process.Signal(os.Interrupt)

		grace := c.StopGrace
		if grace <= 0 {
			grace = defaultStopGrace
		}
		timer := time.NewTimer(grace)
		select {
		case <-rec.done:
			timer.Stop()
		case <-timer.C:
			rec.kill()
		}
	}

	rec.stream.mu.Lock()
	if rec.stream.active == rec {
		rec.stream.active = nil
	}
	rec.stream.mu.Unlock()

	if rec.waitErr != nil && (!interrupted || rec.stdout.Len() == 0) {
		return nil, classifyRecorderError(rec.waitErr, rec.stderr.String())
	}
	return rec.stdout.Bytes(), nil
}

func (c *CommandCapture) ReadLocalFile(path string) (*gift.MediaFile, error) {
	data, ct, err := filex.ReadWithType(path)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: %v", gift.ErrPermissionDenied, err)
		}
		return nil, err
	}
	return &gift.MediaFile{Name: filepath.Base(path), ContentType: ct, Data: data}, nil
}

func classifyRecorderError(err error, stderr string) error {
	msg := strings.TrimSpace(stderr)
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "permission denied"), strings.Contains(lower, "access denied"):
		return fmt.Errorf("%w: %s", gift.ErrPermissionDenied, msg)
	case strings.Contains(lower, "no such device"), strings.Contains(lower, "no such file"):
		return fmt.Errorf("%w: %s", gift.ErrUnsupported, msg)
	case msg != "":
		return fmt.Errorf("recorder exited: %w: %s", err, msg)
	default:
		return fmt.Errorf("recorder exited: %w", err)
	}
}
