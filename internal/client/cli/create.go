package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/giftbox/internal/composer"
	"github.com/dmitrijs2005/giftbox/internal/gift"
	"github.com/dmitrijs2005/giftbox/internal/media"
)

// CreateOptions are the values given on the command line. Blank text fields
// are prompted for when stdin is a terminal.
type CreateOptions struct {
	To      string
	From    string
	Message string
	Photo   string
	Voice   string
	Record  bool
}

// Create composes and submits one gift, then prints its share link.
func (a *App) Create(ctx context.Context, opts CreateOptions) error {
	store, err := a.Store(ctx)
	if err != nil {
		return err
	}

	c := composer.New(store, a.links(), a.log)
	c.SetText(opts.To, opts.From, opts.Message)

	interactive := stdinIsTerminal()
	if interactive {
		if err := a.promptText(c); err != nil {
			return err
		}
	}

	if err := a.attachMedia(ctx, c, opts); err != nil {
		return err
	}

	for {
		res, err := c.Submit(ctx)
		if res != nil {
			a.printResult(res)
			if err != nil {
				return a.retryPhotos(ctx, c, res, err, interactive)
			}
			return nil
		}

		var ve *gift.ValidationError
		if interactive && errors.As(err, &ve) {
			a.printf("%s is required.\n", fieldLabel(ve.Field))
			if perr := a.promptField(c, ve.Field); perr != nil {
				return perr
			}
			continue
		}
		return err
	}
}

func (a *App) promptText(c *composer.Composer) error {
	d := c.Draft()
	for _, f := range []string{gift.FieldRecipientName, gift.FieldSenderName, gift.FieldMessage} {
		if strings.TrimSpace(draftField(d, f)) != "" {
			continue
		}
		if err := a.promptField(c, f); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) promptField(c *composer.Composer, field string) error {
	var (
		v   string
		err error
	)
	if field == gift.FieldMessage {
		v, err = GetMultiline(a.in, "Your message", a.out)
	} else {
		v, err = GetSimpleText(a.in, fieldLabel(field)+"?", a.out)
	}
	if err != nil {
		return err
	}
	return c.SetField(field, v)
}

func draftField(d *gift.Draft, field string) string {
	switch field {
	case gift.FieldRecipientName:
		return d.RecipientName
	case gift.FieldSenderName:
		return d.SenderName
	default:
		return d.Message
	}
}

func fieldLabel(field string) string {
	switch field {
	case gift.FieldRecipientName:
		return "Recipient name"
	case gift.FieldSenderName:
		return "Your name"
	default:
		return "Message"
	}
}

func (a *App) attachMedia(ctx context.Context, c *composer.Composer, opts CreateOptions) error {
	if opts.Photo != "" {
		f, err := a.readFile(opts.Photo)
		if err != nil {
			return &gift.MediaError{Asset: composer.AssetPhoto, Err: err}
		}
		if err := c.AttachPhoto(f); err != nil {
			return err
		}
	}

	switch {
	case opts.Voice != "":
		f, err := a.readFile(opts.Voice)
		if err != nil {
			return &gift.MediaError{Asset: composer.AssetVoice, Err: err}
		}
		c.AttachVoice(f)
	case opts.Record:
		if a.capture == nil {
			return &gift.MediaError{Asset: composer.AssetVoice, Err: gift.ErrUnsupported}
		}
		if err := a.recordVoice(ctx, c); err != nil {
			return err
		}
		if c.Draft().Voice == nil {
			a.println("Voice recording is unavailable; the gift will be sent without a voice message.")
			return nil
		}
		a.println("Voice message recorded.")
	}
	return nil
}

// recordVoice records until Enter. The wait for Enter starts only once the
// recorder runs and ends with the recording, so later prompts get every line.
func (a *App) recordVoice(ctx context.Context, c *composer.Composer) error {
	done := make(chan struct{})
	defer close(done)

	return c.RecordVoiceArmed(ctx, a.capture, func() media.StopSignal {
		a.println("Recording... press Enter to stop.")
		stop := make(chan struct{})
		go func() {
			defer close(stop)
			a.in.WaitLine(done)
		}()
		return stop
	})
}

func (a *App) readFile(path string) (*gift.MediaFile, error) {
	if a.capture != nil {
		return a.capture.ReadLocalFile(path)
	}
	return (&media.CommandCapture{}).ReadLocalFile(path)
}

func (a *App) printResult(res *composer.Result) {
	a.println("Your gift is ready!")
	a.printf("Share this link with %s:\n  %s\n", res.Gift.RecipientName, res.Link)
}

// retryPhotos offers to repeat the photo association after a partial
// failure. The gift itself already exists.
func (a *App) retryPhotos(ctx context.Context, c *composer.Composer, res *composer.Result, cause error, interactive bool) error {
	var pe *gift.PersistenceError
	if !errors.As(cause, &pe) || !pe.Partial {
		return cause
	}
	a.printf("Warning: photos were not attached: %v\n", pe.Err)

	refs := c.PendingPhotoRefs()
	for interactive && len(refs) > 0 && Confirm(a.in, "Retry attaching photos?", a.out) {
		if err := c.RetryMediaAssociation(ctx, res.Gift, refs); err != nil {
			a.printf("Retry failed: %v\n", err)
			continue
		}
		a.println("Photos attached.")
		return nil
	}
	return fmt.Errorf("gift %s created without photos: %w", res.Gift.ID, cause)
}
