package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ytget/yt-grabber/internal/download"
	"github.com/ytget/yt-grabber/internal/platform"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the default download directory",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show current configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := openStore(root)
				if err != nil {
					return err
				}
				dir, loadErr := store.Load()

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "Current configuration:")
				fmt.Fprintf(out, "  Directory: %s\n", dir)
				fmt.Fprintf(out, "  Config:    %s\n", store.Path())
				if loadErr != nil {
					fmt.Fprintf(out, "  Warning:   %v\n", loadErr)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Show config file path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := openStore(root)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), store.Path())
				return nil
			},
		},
		&cobra.Command{
			Use:   "set-dir DIR",
			Short: "Set the default download directory",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				dir, err := filepath.Abs(args[0])
				if err != nil {
					return err
				}
				if !platform.IsDirectory(dir) {
					return fmt.Errorf("%w: %s", download.ErrInvalidDirectory, dir)
				}

				store, err := openStore(root)
				if err != nil {
					return err
				}
				// prime the last saved value so an unchanged directory is not rewritten
				_, _ = store.Load()

				saved, err := store.SaveDefaultDirectory(dir)
				if err != nil {
					return err
				}
				if saved {
					fmt.Fprintf(cmd.OutOrStdout(), "Default directory set to %s\n", dir)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Default directory unchanged (%s)\n", dir)
				}
				return nil
			},
		},
	)
	return cmd
}
