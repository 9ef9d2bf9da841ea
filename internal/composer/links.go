package composer

import "github.com/dmitrijs2005/giftbox/internal/gift"

// LinkBuilder turns a gift id into a share link.
type LinkBuilder interface {
	ShareLink(id string) string
}

// Links builds links for a fixed public origin and reveal path.
type Links struct {
	Origin     string
	RevealPath string
}

func (l Links) ShareLink(id string) string {
	return gift.BuildShareLink(l.Origin, l.RevealPath, id)
}

// PreviewLink is the link for the synthetic preview gift.
func (l Links) PreviewLink() string {
	return gift.PreviewLink(l.RevealPath)
}
