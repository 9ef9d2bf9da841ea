package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/giftbox/internal/client/client"
	"github.com/dmitrijs2005/giftbox/internal/client/config"
	"github.com/dmitrijs2005/giftbox/internal/composer"
	"github.com/dmitrijs2005/giftbox/internal/filex"
	"github.com/dmitrijs2005/giftbox/internal/logging"
	"github.com/dmitrijs2005/giftbox/internal/media"
	"github.com/dmitrijs2005/giftbox/internal/netx"
	"github.com/dmitrijs2005/giftbox/internal/reveal"
)

// Store constructors, swapped in tests.
var (
	openLocalStore = func(ctx context.Context, cfg *config.Config, log logging.Logger) (client.Client, error) {
		if _, err := filex.EnsureDir(cfg.DataDir); err != nil {
			return nil, fmt.Errorf("data dir: %w", err)
		}
		return client.OpenLocalStore(ctx, cfg.DSN(), log)
	}

	openHostedStore = func(ctx context.Context, cfg *config.Config, log logging.Logger) (client.Client, error) {
		return client.NewGRPCClient(cfg.ServerEndpointAddr, cfg.APIKey)
	}
)

// App carries what every command needs. The store is opened on first use so
// commands that never touch it (preview) work without a backend.
type App struct {
	config *config.Config
	log    logging.Logger
	in     *lineSource
	out    io.Writer

	store   client.Client
	capture media.Capture
	checker reveal.RefChecker

	now   func() time.Time
	after func(d time.Duration, f func()) *time.Timer
}

func NewApp(cfg *config.Config, in io.Reader, out io.Writer, errOut io.Writer) (*App, error) {
	log, err := logging.New(cfg.LogBackend, cfg.LogLevel, errOut)
	if err != nil {
		return nil, err
	}

	a := &App{
		config:  cfg,
		log:     log,
		in:      newLineSource(in),
		out:     out,
		checker: &netx.ImageChecker{Client: &http.Client{Timeout: 10 * time.Second}},
		now:     time.Now,
		after:   time.AfterFunc,
	}

	command := cfg.RecorderCommand
	if command == "" {
		command = media.DefaultRecorderCommand
	}
	if c, err := media.NewCommandCapture(command, log.With("module", "recorder")); err == nil {
		a.capture = c
	}
	return a, nil
}

// Store opens the configured gift store once.
func (a *App) Store(ctx context.Context) (client.Client, error) {
	if a.store != nil {
		return a.store, nil
	}

	open := openLocalStore
	if a.config.Mode == config.ModeHosted {
		open = openHostedStore
	}
	s, err := open(ctx, a.config, a.log)
	if err != nil {
		return nil, err
	}
	a.store = s
	a.log.Debug(ctx, "store opened", "mode", a.config.Mode)
	return s, nil
}

func (a *App) links() composer.Links {
	return composer.Links{Origin: a.config.PublicOrigin, RevealPath: a.config.RevealPath}
}

func (a *App) Close() error {
	a.in.Close()
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
