package api

import (
	"time"

	"github.com/dmitrijs2005/giftbox/internal/gift"
)

type CreateGiftRequest struct {
	SenderName    string `json:"sender_name" validate:"max=200"`
	RecipientName string `json:"recipient_name" validate:"max=200"`
	Message       string `json:"message" validate:"max=10000"`
	VoiceRef      string `json:"voice_ref,omitempty" validate:"omitempty,max=4096"`
}

// Fields converts the request into a store payload.
func (r *CreateGiftRequest) Fields() gift.Fields {
	return gift.Fields{
		SenderName:    r.SenderName,
		RecipientName: r.RecipientName,
		Message:       r.Message,
		VoiceRef:      r.VoiceRef,
	}
}

type GiftResponse struct {
	Gift *gift.Gift `json:"gift"`
}

type AddPhotosRequest struct {
	GiftID    string   `json:"gift_id" validate:"required"`
	PhotoRefs []string `json:"photo_refs" validate:"required,min=1,max=20,dive,required,max=4096"`
}

type GetGiftRequest struct {
	ID string `json:"id" validate:"required"`
}

type MarkOpenedRequest struct {
	ID string `json:"id" validate:"required"`
}

// MarkOpenedResponse reports whether the marker was written. Written is
// false when the access policy turned the call into a no-op.
type MarkOpenedResponse struct {
	Written bool `json:"written"`
}

type PresignUploadRequest struct {
	Path        string `json:"path" validate:"required,max=512"`
	ContentType string `json:"content_type" validate:"required"`
}

type PresignUploadResponse struct {
	Key       string    `json:"key"`
	UploadURL string    `json:"upload_url"`
	PublicURL string    `json:"public_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Empty struct{}
