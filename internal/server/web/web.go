// Package web serves the public side of share links: a JSON reveal
// payload for a gift reference and a health probe.
package web

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/dmitrijs2005/giftbox/internal/gift"
	"github.com/dmitrijs2005/giftbox/internal/logging"
	"github.com/dmitrijs2005/giftbox/internal/reveal"
)

// GiftReader is the part of the gift service the public endpoint uses.
type GiftReader interface {
	Get(ctx context.Context, id string) (*gift.Gift, error)
	MarkOpened(ctx context.Context, id string) (bool, error)
}

// loader adapts GiftReader to reveal.Loader.
type loader struct {
	gifts GiftReader
}

func (l loader) GetGift(ctx context.Context, id string) (*gift.Gift, error) {
	return l.gifts.Get(ctx, id)
}

func (l loader) MarkOpened(ctx context.Context, id string) error {
	_, err := l.gifts.MarkOpened(ctx, id)
	return err
}

// RevealPayload is what a reveal page needs to render the closed box.
type RevealPayload struct {
	Phase      reveal.Phase  `json:"phase"`
	Preview    bool          `json:"preview"`
	AutoOpen   bool          `json:"auto_open"`
	Greeting   string        `json:"greeting"`
	Plan       []reveal.Step `json:"plan"`
	Labels     []string      `json:"labels"`
	Letter     reveal.Letter `json:"letter"`
	VoiceText  string        `json:"voice_text,omitempty"`
	Completion []string      `json:"completion"`
	Gift       *gift.Gift    `json:"gift"`
}

type Server struct {
	app        *fiber.App
	address    string
	revealPath string
	gifts      GiftReader
	logger     logging.Logger
	now        func() time.Time
}

func NewServer(address, revealPath string, gifts GiftReader, l logging.Logger) *Server {
	s := &Server{
		address:    address,
		revealPath: revealPath,
		gifts:      gifts,
		logger:     l.With("module", "web"),
		now:        time.Now,
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          s.errorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/healthz", s.health)
	app.Get(revealPath, s.reveal)
	app.Post(revealPath+"/opened", s.opened)

	s.app = app
	return s
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		errCh <- s.app.Listen(s.address)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.app.ShutdownWithContext(shutdownCtx)
	}
}

func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "internal error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	} else {
		s.logger.Error(c.UserContext(), "request failed", "path", c.Path(), "error", err)
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func queryValues(c *fiber.Ctx) url.Values {
	q, err := url.ParseQuery(string(c.Context().URI().QueryString()))
	if err != nil {
		return url.Values{}
	}
	return q
}

func (s *Server) reveal(c *fiber.Ctx) error {
	ctx := c.UserContext()

	ref, err := gift.ParseReference(queryValues(c))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"phase": reveal.PhaseNotFound})
	}

	seq := reveal.New(loader{gifts: s.gifts}, nil, s.logger)
	g, err := seq.LoadGift(ctx, ref)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"phase": reveal.PhaseNotFound})
	}

	view := seq.View()
	labels := make([]string, len(view.Plan))
	for i, st := range view.Plan {
		labels[i] = st.Label()
	}

	payload := RevealPayload{
		Phase:      view.Phase,
		Preview:    ref.Preview,
		AutoOpen:   ref.OpensAutomatically(),
		Greeting:   reveal.Greeting(g),
		Plan:       view.Plan,
		Labels:     labels,
		Letter:     reveal.BuildLetter(g, s.now()),
		Completion: reveal.CompletionLines(g),
		Gift:       g,
	}
	if !g.HasVoice() {
		payload.VoiceText = reveal.NoVoiceText
	}
	return c.JSON(payload)
}

// opened records the first open of a gift. The gift service applies the
// access policy, so anonymous calls may succeed without writing.
func (s *Server) opened(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing id")
	}

	written, err := s.gifts.MarkOpened(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, gift.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, gift.ErrNotFound.Error())
		}
		return err
	}
	return c.JSON(fiber.Map{"written": written})
}
