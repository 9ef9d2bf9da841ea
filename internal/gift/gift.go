package gift

import "time"

// Gift is the persisted greeting: who sent it, to whom, the message and the
// optional media references.
type Gift struct {
	ID            string     `json:"id"`
	SenderName    string     `json:"sender_name"`
	RecipientName string     `json:"recipient_name"`
	Message       string     `json:"message"`
	PhotoRefs     []string   `json:"photo_refs"`
	VoiceRef      string     `json:"voice_ref,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	OpenedAt      *time.Time `json:"opened_at,omitempty"`
}

// HasPhotos reports whether the gift carries at least one photo reference.
func (g *Gift) HasPhotos() bool {
	return len(g.PhotoRefs) > 0
}

// HasVoice reports whether the gift carries a voice recording reference.
func (g *Gift) HasVoice() bool {
	return g.VoiceRef != ""
}

// Clone returns a deep copy, so readers can filter media without touching
// the stored record.
func (g *Gift) Clone() *Gift {
	if g == nil {
		return nil
	}
	c := *g
	if g.PhotoRefs != nil {
		c.PhotoRefs = append([]string(nil), g.PhotoRefs...)
	}
	if g.OpenedAt != nil {
		t := *g.OpenedAt
		c.OpenedAt = &t
	}
	return &c
}

// Fields is the subset of a Gift a Store needs to create the record.
type Fields struct {
	SenderName    string `json:"sender_name"`
	RecipientName string `json:"recipient_name"`
	Message       string `json:"message"`
	VoiceRef      string `json:"voice_ref,omitempty"`
}

// MediaFile is a photo or a voice recording in memory.
type MediaFile struct {
	Name        string
	ContentType string
	Data        []byte
}
