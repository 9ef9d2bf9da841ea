package gift

import "strings"

// Draft is unvalidated input for a prospective gift.
type Draft struct {
	RecipientName string
	SenderName    string
	Message       string
	Photo         *MediaFile
	Voice         *MediaFile
}

// ValidDraft is a draft that passed ValidateDraft. PhotoRefs and VoiceRef are
// filled once the media has been uploaded.
type ValidDraft struct {
	RecipientName string
	SenderName    string
	Message       string
	PhotoRefs     []string
	VoiceRef      string
}

// Fields returns the create payload for a Store.
func (v ValidDraft) Fields() Fields {
	return Fields{
		SenderName:    v.SenderName,
		RecipientName: v.RecipientName,
		Message:       v.Message,
		VoiceRef:      v.VoiceRef,
	}
}

// Names of the required fields as reported by ValidationError.
const (
	FieldRecipientName = "recipientName"
	FieldSenderName    = "senderName"
	FieldMessage       = "message"
)

// ValidateDraft checks recipient, sender and message in that order and fails
// on the first one that is blank after trimming whitespace.
func ValidateDraft(d Draft) (ValidDraft, error) {
	if err := validateRequired(d.RecipientName, d.SenderName, d.Message); err != nil {
		return ValidDraft{}, err
	}
	return ValidDraft{
		RecipientName: strings.TrimSpace(d.RecipientName),
		SenderName:    strings.TrimSpace(d.SenderName),
		Message:       strings.TrimSpace(d.Message),
	}, nil
}

// ValidateFields applies the draft rules to a create payload received by a
// store.
func ValidateFields(f Fields) error {
	return validateRequired(f.RecipientName, f.SenderName, f.Message)
}

func validateRequired(recipient, sender, message string) error {
	checks := []struct {
		field string
		value string
	}{
		{FieldRecipientName, recipient},
		{FieldSenderName, sender},
		{FieldMessage, message},
	}
	for _, c := range checks {
		if strings.TrimSpace(c.value) == "" {
			return &ValidationError{Field: c.field}
		}
	}
	return nil
}
