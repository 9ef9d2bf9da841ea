package composer

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/giftbox/internal/gift"
	"github.com/dmitrijs2005/giftbox/internal/logging"
	"github.com/dmitrijs2005/giftbox/internal/media"
)

// Asset names used in MediaError and upload paths.
const (
	AssetPhoto = "photo"
	AssetVoice = "voice"
)

var newMediaID = uuid.NewString

type Composer struct {
	store gift.Store
	links LinkBuilder
	log   logging.Logger

	mu      sync.Mutex
	draft   *gift.Draft
	state   State
	result  *Result
	lastErr error
	pending []string
}

func New(store gift.Store, links LinkBuilder, log logging.Logger) *Composer {
	return &Composer{
		store: store,
		links: links,
		log:   log.With("module", "composer"),
		draft: &gift.Draft{},
	}
}

// Draft returns a copy of the draft owned by this composition flow. Edits go
// through SetText, SetField, AttachPhoto and AttachVoice.
func (c *Composer) Draft() *gift.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := *c.draft
	return &d
}

// SetText replaces the three text fields of the draft.
func (c *Composer) SetText(recipient, sender, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.RecipientName = recipient
	c.draft.SenderName = sender
	c.draft.Message = message
}

// SetField sets one text field by its validation name (gift.FieldRecipientName,
// gift.FieldSenderName or gift.FieldMessage).
func (c *Composer) SetField(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch field {
	case gift.FieldRecipientName:
		c.draft.RecipientName = value
	case gift.FieldSenderName:
		c.draft.SenderName = value
	case gift.FieldMessage:
		c.draft.Message = value
	default:
		return fmt.Errorf("unknown draft field %q", field)
	}
	return nil
}

// AttachPhoto sets the draft photo. A nil file clears it.
func (c *Composer) AttachPhoto(f *gift.MediaFile) error {
	if f != nil && !media.IsImage(f) {
		return &gift.MediaError{Asset: AssetPhoto, Err: fmt.Errorf("%w: %s", gift.ErrNotAnImage, f.ContentType)}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Photo = f
	return nil
}

// AttachVoice sets the draft voice message. A nil file clears it.
func (c *Composer) AttachVoice(f *gift.MediaFile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Voice = f
}

// RecordVoice records until stop fires and attaches the result. A denied or
// missing microphone leaves the draft without voice and is not an error.
func (c *Composer) RecordVoice(ctx context.Context, capture media.Capture, stop media.StopSignal) error {
	return c.RecordVoiceArmed(ctx, capture, func() media.StopSignal { return stop })
}

// RecordVoiceArmed is RecordVoice with the stop signal created by arm once
// the recorder is running.
func (c *Composer) RecordVoiceArmed(ctx context.Context, capture media.Capture, arm media.Arm) error {
	f, err := media.RecordArmed(ctx, capture, arm)
	if err != nil {
		if errors.Is(err, gift.ErrPermissionDenied) || errors.Is(err, gift.ErrUnsupported) {
			c.log.Warn(ctx, "voice recording unavailable, continuing without voice", "error", err)
			return nil
		}
		return &gift.MediaError{Asset: AssetVoice, Err: err}
	}

	c.AttachVoice(f)
	c.log.Debug(ctx, "voice recorded", "bytes", len(f.Data), "content_type", f.ContentType)
	return nil
}

// ValidateDraft validates a snapshot of the current draft.
func (c *Composer) ValidateDraft() (gift.ValidDraft, error) {
	c.mu.Lock()
	d := *c.draft
	c.mu.Unlock()
	return gift.ValidateDraft(d)
}

// AttachMedia uploads the supplied photo and voice through the store and
// records the returned refs on vd. Either file may be nil.
func (c *Composer) AttachMedia(ctx context.Context, vd gift.ValidDraft, photo, voice *gift.MediaFile) (gift.ValidDraft, error) {
	if photo != nil {
		ref, err := c.upload(ctx, AssetPhoto, photo)
		if err != nil {
			return vd, err
		}
		vd.PhotoRefs = append(append([]string(nil), vd.PhotoRefs...), ref)
	}
	if voice != nil {
		ref, err := c.upload(ctx, AssetVoice, voice)
		if err != nil {
			return vd, err
		}
		vd.VoiceRef = ref
	}
	return vd, nil
}

func (c *Composer) upload(ctx context.Context, asset string, f *gift.MediaFile) (string, error) {
	p := uploadPath(asset, f.Name)
	ref, err := c.store.UploadFile(ctx, f.Data, p, f.ContentType)
	if err != nil {
		c.log.Error(ctx, "media upload failed", "asset", asset, "path", p, "error", err)
		return "", &gift.MediaError{Asset: asset, Err: fmt.Errorf("%w: %v", gift.ErrMediaUploadFailed, err)}
	}
	c.log.Debug(ctx, "media uploaded", "asset", asset, "path", p)
	return ref, nil
}

func uploadPath(asset, name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		name = asset
	}
	return asset + "s/" + newMediaID() + "_" + name
}

// CreateGift writes the gift record, then associates its photos. When only
// the association fails, the created gift is returned together with a
// partial PersistenceError so the caller can RetryMediaAssociation.
func (c *Composer) CreateGift(ctx context.Context, vd gift.ValidDraft) (*gift.Gift, error) {
	g, err := c.store.CreateGift(ctx, vd.Fields())
	if err != nil {
		c.log.Error(ctx, "create gift failed", "error", err)
		return nil, &gift.PersistenceError{Op: "create_gift", Err: err}
	}
	c.log.Info(ctx, "gift created", "id", g.ID)

	if len(vd.PhotoRefs) == 0 {
		return g, nil
	}

	refs := append([]string(nil), vd.PhotoRefs...)
	if err := c.store.AddPhotos(ctx, g.ID, refs); err != nil {
		c.log.Error(ctx, "photo association failed", "id", g.ID, "photos", len(refs), "error", err)
		return g, &gift.PersistenceError{Op: "add_photos", Partial: true, Err: err}
	}
	g.PhotoRefs = refs
	return g, nil
}

// RetryMediaAssociation repeats only the photo association write.
func (c *Composer) RetryMediaAssociation(ctx context.Context, g *gift.Gift, refs []string) error {
	if len(refs) == 0 {
		return nil
	}
	if err := c.store.AddPhotos(ctx, g.ID, refs); err != nil {
		return &gift.PersistenceError{Op: "add_photos", Partial: true, Err: err}
	}
	g.PhotoRefs = append(g.PhotoRefs, refs...)

	c.mu.Lock()
	if c.result != nil && c.result.Gift != nil && c.result.Gift.ID == g.ID {
		c.result.Gift = g.Clone()
		c.pending = nil
		c.lastErr = nil
	}
	c.mu.Unlock()
	return nil
}

// PendingPhotoRefs returns the uploaded photo refs of the last submission
// that never got associated with its gift.
func (c *Composer) PendingPhotoRefs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.pending...)
}

func (c *Composer) BuildShareLink(g *gift.Gift) string {
	return c.links.ShareLink(g.ID)
}

// Submit runs validate, upload, create and link as one attempt. While an
// attempt is in flight further calls fail with ErrSubmissionPending.
//
// A partial failure (gift stored, photos not associated) still succeeds: the
// gift is reachable, so the result is returned together with the
// PersistenceError.
func (c *Composer) Submit(ctx context.Context) (*Result, error) {
	c.mu.Lock()
	switch c.state {
	case StateValidating, StatePersisting:
		c.mu.Unlock()
		return nil, ErrSubmissionPending
	case StateSucceeded:
		c.mu.Unlock()
		return nil, ErrAlreadySucceeded
	}
	c.state = StateValidating
	c.lastErr = nil
	d := *c.draft
	c.mu.Unlock()

	vd, err := gift.ValidateDraft(d)
	if err != nil {
		return nil, c.fail(ctx, err)
	}

	c.setState(StatePersisting)

	vd, err = c.AttachMedia(ctx, vd, d.Photo, d.Voice)
	if err != nil {
		return nil, c.fail(ctx, err)
	}

	g, err := c.CreateGift(ctx, vd)
	if g == nil {
		return nil, c.fail(ctx, err)
	}

	res := &Result{Gift: g, Link: c.BuildShareLink(g)}

	c.mu.Lock()
	c.state = StateSucceeded
	c.result = res
	c.lastErr = err
	c.pending = nil
	if len(g.PhotoRefs) < len(vd.PhotoRefs) {
		c.pending = append([]string(nil), vd.PhotoRefs...)
	}
	c.draft = &gift.Draft{}
	c.mu.Unlock()

	c.log.Info(ctx, "gift ready", "id", g.ID, "link", res.Link)
	return res, err
}

func (c *Composer) fail(ctx context.Context, err error) error {
	c.mu.Lock()
	c.state = StateIdle
	c.lastErr = err
	c.mu.Unlock()

	c.log.Debug(ctx, "submission failed", "error", err)
	return err
}

func (c *Composer) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *Composer) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := Status{
		State:     c.state,
		Err:       c.lastErr,
		CanSubmit: c.state == StateIdle,
	}
	if c.result != nil {
		st.Gift = c.result.Gift.Clone()
		st.Link = c.result.Link
	}
	return st
}

// Reset discards the draft and any previous result.
func (c *Composer) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateValidating || c.state == StatePersisting {
		return
	}
	c.draft = &gift.Draft{}
	c.state = StateIdle
	c.result = nil
	c.lastErr = nil
	c.pending = nil
}
