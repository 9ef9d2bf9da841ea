package cli

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/giftbox/internal/filex"
	"github.com/dmitrijs2005/giftbox/internal/media"
	"github.com/dmitrijs2005/giftbox/internal/reveal"
)

const rule = "----------------------------------------"

// renderer prints reveal views as plain text. Embedded media is written to
// mediaDir so the user can open it with a regular viewer.
type renderer struct {
	w        io.Writer
	mediaDir string
	now      func() time.Time
}

func (r *renderer) indicator(v reveal.View) string {
	labels := make([]string, len(v.Plan))
	for i, s := range v.Plan {
		switch {
		case v.Phase != reveal.PhaseOpened && v.Phase != reveal.PhaseCompleted:
			labels[i] = s.Label()
		case i == v.Index:
			labels[i] = "[" + s.Label() + "]"
		default:
			labels[i] = s.Label()
		}
	}
	return strings.Join(labels, " > ")
}

func (r *renderer) render(v reveal.View) {
	switch v.Phase {
	case reveal.PhaseLoading:
		fmt.Fprintln(r.w, "Loading your gift...")
	case reveal.PhaseNotFound:
		fmt.Fprintln(r.w, "Gift not found.")
		fmt.Fprintln(r.w, "The link may be wrong or the gift may have been removed.")
	case reveal.PhaseClosed:
		fmt.Fprintln(r.w, rule)
		fmt.Fprintln(r.w, reveal.Greeting(v.Gift))
		fmt.Fprintln(r.w, "        [ gift box ]   type 'open' to unwrap")
		fmt.Fprintln(r.w, rule)
	case reveal.PhaseOpened, reveal.PhaseCompleted:
		fmt.Fprintln(r.w, rule)
		fmt.Fprintln(r.w, r.indicator(v))
		fmt.Fprintln(r.w, rule)
		r.step(v)
	}
}

func (r *renderer) step(v reveal.View) {
	g := v.Gift
	switch v.Step {
	case reveal.StepPhoto:
		for i, ref := range g.PhotoRefs {
			fmt.Fprintf(r.w, "Photo %d: %s\n", i+1, r.media(g.ID, fmt.Sprintf("photo-%d", i+1), ref))
		}
	case reveal.StepLetter:
		l := reveal.BuildLetter(g, r.now())
		fmt.Fprintln(r.w, l.Date)
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, l.Salutation)
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, l.Body)
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, l.Closing)
		fmt.Fprintln(r.w, l.Signature)
	case reveal.StepVoice:
		if !g.HasVoice() {
			fmt.Fprintln(r.w, reveal.NoVoiceText)
			return
		}
		fmt.Fprintf(r.w, "Voice message from %s: %s\n", g.SenderName, r.media(g.ID, "voice", g.VoiceRef))
	case reveal.StepCompletion:
		for _, line := range reveal.CompletionLines(g) {
			fmt.Fprintln(r.w, line)
		}
	}
}

// media returns something the user can open for ref: the URL itself, or the
// path of the file an embedded data URI was written to.
func (r *renderer) media(giftID, name, ref string) string {
	if !strings.HasPrefix(ref, "data:") {
		return ref
	}
	ct, data, err := media.DecodeDataURI(ref)
	if err != nil {
		return "(unreadable embedded media)"
	}
	if r.mediaDir == "" {
		return fmt.Sprintf("embedded %s, %d bytes", ct, len(data))
	}

	dir, err := filex.EnsureDir(r.mediaDir)
	if err != nil {
		return fmt.Sprintf("embedded %s, %d bytes", ct, len(data))
	}
	if giftID == "" {
		giftID = "preview"
	}
	path := filepath.Join(dir, giftID+"-"+name+extension(ct))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Sprintf("embedded %s, %d bytes", ct, len(data))
	}
	return path
}

func extension(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "audio/wav", "audio/x-wav":
		return ".wav"
	}
	exts, err := mime.ExtensionsByType(contentType)
	if err != nil || len(exts) == 0 {
		return ".bin"
	}
	return exts[0]
}
