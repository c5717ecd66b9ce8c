package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"redline/internal/game"
	"redline/internal/netviz"
	"redline/internal/session"
	"redline/internal/theme"
)

func newNetmapCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "netmap",
		Short: "Render an agent's network map",
	}
	cmd.AddCommand(newNetmapExportCommand(opts), newNetmapShowCommand(opts))
	return cmd
}

func graphOptions() netviz.Options {
	return netviz.Options{Style: theme.GraphStyle(theme.Current()), Origin: session.EntryIP}
}

func (o *options) networkMap(cmd *cobra.Command, username string) (*game.NetworkMap, error) {
	e, err := o.open(cmd.Context())
	if err != nil {
		return nil, err
	}
	defer e.Close()

	sess, _, err := e.resume(cmd.Context(), username)
	if err != nil {
		return nil, fmt.Errorf("failed to load save for %s: %w", username, err)
	}
	return sess.State().NetworkMap(), nil
}

func newNetmapExportCommand(opts *options) *cobra.Command {
	var (
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "export <agent>",
		Short: "Write the network map as DOT, SVG or PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := netviz.ParseFormat(format)
			if err != nil {
				return err
			}
			m, err := opts.networkMap(cmd, args[0])
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer file.Close()
				w = file
			}
			if err := netviz.Render(cmd.Context(), m, f, graphOptions(), w); err != nil {
				return err
			}
			if output != "" && output != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d hosts to %s\n", m.Len(), output)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot, svg or png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func newNetmapShowCommand(opts *options) *cobra.Command {
	var (
		mode  string
		width int
	)
	cmd := &cobra.Command{
		Use:   "show <agent>",
		Short: "Draw the network map in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			md, err := netviz.ParseMode(mode)
			if err != nil {
				return err
			}
			m, err := opts.networkMap(cmd, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if md == netviz.ModeAuto {
				md = netviz.ModeText
				if f, ok := out.(*os.File); ok {
					md = netviz.Detect(f)
				}
			}
			if md != netviz.ModeText {
				var png bytes.Buffer
				if err := netviz.Render(cmd.Context(), m, netviz.FormatPNG, graphOptions(), &png); err != nil {
					return err
				}
				err := netviz.Inline(out, png.Bytes(), md, width)
				if !errors.Is(err, netviz.ErrNoGraphics) {
					return err
				}
			}
			_, err = io.WriteString(out, netviz.Text(m))
			return err
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", "auto", "image protocol: auto, kitty, iterm, sixel or text")
	cmd.Flags().IntVar(&width, "width", netviz.DefaultMaxWidth, "maximum image width in pixels")
	return cmd
}
