package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/giftbox/internal/gift"
	"github.com/dmitrijs2005/giftbox/internal/reveal"
)

// session drives one reveal in the terminal.
type session struct {
	app *App
	seq *reveal.Sequencer
	r   *renderer
}

func (a *App) newSession(loader reveal.Loader) *session {
	return &session{
		app: a,
		seq: reveal.New(loader, a.checker, a.log),
		r:   &renderer{w: a.out, mediaDir: filepath.Join(a.config.DataDir, "media"), now: a.now},
	}
}

// Reveal loads ref and runs the interactive reveal until exit or EOF.
// Preview and auto references open the box straight away.
func (a *App) Reveal(ctx context.Context, ref gift.Reference) error {
	var loader reveal.Loader = previewLoader{}
	if !ref.Preview {
		store, err := a.Store(ctx)
		if err != nil {
			return err
		}
		loader = store
	}

	s := a.newSession(loader)
	if _, err := s.seq.LoadGift(ctx, ref); err != nil {
		s.show()
		return err
	}
	s.show()

	if ref.OpensAutomatically() {
		s.open(ctx)
	}
	return s.repl(ctx)
}

func (s *session) show() {
	s.r.render(s.seq.View())
}

// entered marks the visible step as entered once the entrance delay ran.
func (s *session) entered() {
	if s.app.config.EntranceDelay <= 0 {
		s.seq.EntranceComplete()
		return
	}
	s.app.after(s.app.config.EntranceDelay, s.seq.EntranceComplete)
}

func (s *session) open(ctx context.Context) {
	if !s.seq.OpenBox(ctx) {
		s.app.println("The box is already open.")
		return
	}
	s.show()
	s.entered()
}

func (s *session) move(fn func() error) {
	if err := fn(); err != nil {
		switch {
		case errors.Is(err, reveal.ErrEntrancePending):
			s.app.println("Just a moment...")
		case errors.Is(err, reveal.ErrNotOpened):
			s.app.println("Open the box first.")
		case errors.Is(err, reveal.ErrCompleted):
			s.app.println("That was everything. Type 'replay' to watch again.")
		default:
			s.app.println("Error:", err)
		}
		return
	}
	s.show()
	s.entered()
}

// share prints the link to the gift being revealed once the reveal is done.
func (s *session) share() {
	v := s.seq.View()
	if v.Phase != reveal.PhaseCompleted {
		s.app.println("Finish unwrapping the gift to share it.")
		return
	}

	links := s.app.links()
	link := strings.TrimRight(links.Origin, "/") + links.PreviewLink()
	if !v.Ref.Preview {
		link = links.ShareLink(v.Gift.ID)
	}
	s.app.printf("Share this gift:\n  %s\n", link)
}

const revealHelp = `Commands:
  open           unwrap the gift box
  next | n       next step (an empty line works too)
  prev | p       previous step
  replay | r     close the box and start over
  show           print the current step again
  share          print the link to this gift (after the last step)
  help           this help
  exit | quit    leave`

// repl reads commands until exit or EOF.
func (s *session) repl(ctx context.Context) error {
	for {
		fmt.Fprint(s.app.out, "gift> ")
		line, err := s.app.in.ReadString('\n')
		cmd := strings.ToLower(strings.TrimSpace(line))
		if err != nil && cmd == "" {
			s.app.println()
			return nil
		}

		switch cmd {
		case "open", "o":
			s.open(ctx)
		case "", "next", "n":
			if s.seq.View().CanOpen {
				s.open(ctx)
				continue
			}
			s.move(s.seq.AdvanceStep)
		case "prev", "p":
			s.move(s.seq.RetreatStep)
		case "replay", "r":
			if err := s.seq.Replay(); err != nil {
				s.app.println("Error:", err)
				continue
			}
			s.show()
		case "show", "s":
			s.show()
		case "share":
			s.share()
		case "help", "h", "?":
			s.app.println(revealHelp)
		case "exit", "quit", "q":
			s.app.println("Bye!")
			return nil
		default:
			s.app.println("Unknown command:", cmd)
		}

		if err != nil {
			return nil
		}
	}
}

// previewLoader serves only the synthetic preview gift, which the sequencer
// builds itself.
type previewLoader struct{}

func (previewLoader) GetGift(ctx context.Context, id string) (*gift.Gift, error) {
	return nil, gift.ErrNotFound
}

func (previewLoader) MarkOpened(ctx context.Context, id string) error {
	return nil
}
