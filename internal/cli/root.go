package cli

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ytget/yt-grabber/internal/config"
	"github.com/ytget/yt-grabber/internal/download"
	"github.com/ytget/yt-grabber/internal/logging"
	"github.com/ytget/yt-grabber/internal/ui"
)

const (
	AppID   = "com.ytget.yt-grabber"
	AppName = "YT Grabber"

	WindowWidth  = 560
	WindowHeight = 300
)

type rootOptions struct {
	debug      bool
	configPath string
}

// NewRootCmd builds the command tree. Without a subcommand the desktop
// window is opened.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "yt-grabber",
		Short:         "Download YouTube videos or their audio track",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(opts.debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(opts, version)
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default <home>/Documents/.config.json)")

	cmd.AddCommand(newGetCmd(opts), newConfigCmd(opts))
	return cmd
}

// Execute runs the CLI and exits with status 1 on error
func Execute(version string) {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openStore(opts *rootOptions) (*config.Store, error) {
	if opts.configPath != "" {
		return config.NewStore(opts.configPath, config.DefaultDirectory()), nil
	}
	return config.NewDefaultStore()
}

func runGUI(opts *rootOptions, version string) error {
	store, err := openStore(opts)
	if err != nil {
		return fmt.Errorf("failed to locate config: %w", err)
	}

	log.Info().Str("op", "cli/gui").Str("version", version).Str("config", store.Path()).Msg("starting")

	a := app.NewWithID(AppID)
	a.Settings().SetTheme(ui.NewCompactTheme())

	window := a.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	window.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	settings := config.NewSettings(a)
	engine := download.NewYTDLPEngine(settings.GetFFmpegLocation())
	ui.NewRootUI(window, a, download.NewService(engine), store)

	window.ShowAndRun()
	return nil
}
