package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/giftbox/internal/client/config"
	"github.com/dmitrijs2005/giftbox/internal/gift"
)

// NewRootCmd builds the giftbox command tree over an already loaded config.
// Flags override cfg in place before any command runs.
func NewRootCmd(cfg *config.Config, in io.Reader, out, errOut io.Writer) *cobra.Command {
	var app *App

	root := &cobra.Command{
		Use:   "giftbox",
		Short: "Compose virtual gifts and unwrap them step by step",
		Long: `giftbox composes a greeting with an optional photo and voice message,
stores it locally or on a giftbox server and prints a share link.
The recipient opens the link to unwrap the gift one step at a time.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Mode == config.ModeHosted && cfg.APIKey == "" && stdinIsTerminal() {
				key, err := GetSecret("API key", out)
				if err != nil {
					return err
				}
				cfg.APIKey = key
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			a, err := NewApp(cfg, in, out, errOut)
			if err != nil {
				return err
			}
			app = a
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app == nil {
				return nil
			}
			return app.Close()
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	config.BindFlags(root.PersistentFlags(), cfg)

	root.AddCommand(
		newCreateCmd(func() *App { return app }),
		newOpenCmd(func() *App { return app }),
		newPreviewCmd(func() *App { return app }),
		newLinkCmd(cfg),
	)
	return root
}

func newCreateCmd(app func() *App) *cobra.Command {
	var opts CreateOptions

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Compose a gift and print its share link",
		Example: `  giftbox create --to Alice --from Bob --message "Merry Christmas!" --photo tree.jpg
  giftbox create --record`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().Create(cmd.Context(), opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.To, "to", "", "recipient name")
	f.StringVar(&opts.From, "from", "", "your name")
	f.StringVar(&opts.Message, "message", "", "the greeting")
	f.StringVar(&opts.Photo, "photo", "", "image file to include")
	f.StringVar(&opts.Voice, "voice", "", "audio file to include as the voice message")
	f.BoolVar(&opts.Record, "record", false, "record a voice message from the microphone")
	cmd.MarkFlagsMutuallyExclusive("voice", "record")
	return cmd
}

func newOpenCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open <link|id>",
		Short: "Unwrap a gift from its share link or id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := gift.ParseLink(args[0])
			if err != nil {
				return fmt.Errorf("%q is not a gift link: %w", args[0], err)
			}
			return app().Reveal(cmd.Context(), ref)
		},
	}
}

func newPreviewCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Unwrap the sample gift",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().Reveal(cmd.Context(), gift.Reference{Preview: true})
		},
	}
}

func newLinkCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "link <id>",
		Short: "Print the share link of a gift id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), gift.BuildShareLink(cfg.PublicOrigin, cfg.RevealPath, args[0]))
			return nil
		},
	}
}

// Execute runs the command tree with ctx.
func Execute(ctx context.Context, cmd *cobra.Command, args []string) error {
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}
