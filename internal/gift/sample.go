package gift

import "time"

// SamplePhotoRef is the bundled photo shown by the preview gift.
const SamplePhotoRef = "assets/images/photo.jpg"

// SampleGift returns the fixed synthetic gift used by preview links. Each call
// returns a fresh copy.
func SampleGift() *Gift {
	return &Gift{
		ID:            "",
		RecipientName: "Friend",
		SenderName:    "Santa",
		Message:       "Merry Christmas! Wishing you joy and happiness this holiday season.",
		PhotoRefs:     []string{SamplePhotoRef},
		CreatedAt:     time.Date(2025, time.December, 24, 0, 0, 0, 0, time.UTC),
	}
}
