package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"redline/internal/ansi"
	"redline/internal/save"
	"redline/internal/session"
	"redline/internal/theme"
)

func newSaveCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Inspect and delete saved sessions",
	}
	cmd.AddCommand(newSaveListCommand(opts), newSaveShowCommand(opts), newSaveDeleteCommand(opts))
	return cmd
}

func newSaveListCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			slots, err := e.saves.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(slots) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved sessions.")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "AGENT\tSAVED\tVERSION\tBYTES")
			for _, s := range slots {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", s.Username, s.SavedAt.Local().Format(time.DateTime), s.Version, s.Size)
			}
			return tw.Flush()
		},
	}
}

// saveSummary is the --yaml view of a save.
type saveSummary struct {
	Agent       string    `yaml:"agent"`
	SavedAt     time.Time `yaml:"saved_at"`
	Version     string    `yaml:"version"`
	Level       int       `yaml:"level"`
	Title       string    `yaml:"title"`
	Reputation  int       `yaml:"reputation"`
	Tier        string    `yaml:"tier"`
	Credits     int       `yaml:"credits"`
	Heat        float64   `yaml:"heat"`
	Missions    int       `yaml:"missions_completed"`
	Hosts       int       `yaml:"hosts_known"`
	Compromised int       `yaml:"systems_compromised"`
	Active      []string  `yaml:"active_missions,omitempty"`
}

func summarize(s *session.Session, sg save.SaveGame) saveSummary {
	st := s.State()
	sum := saveSummary{
		Agent:       s.Player().Username,
		SavedAt:     sg.Timestamp.UTC(),
		Version:     sg.Version,
		Level:       int(st.Level()),
		Title:       st.LevelTitle(),
		Reputation:  st.Reputation(),
		Tier:        s.Reputation().Level().DisplayName(),
		Credits:     st.Credits(),
		Heat:        st.Heat(),
		Missions:    st.MissionsCompleted(),
		Hosts:       st.NetworkMap().Len(),
		Compromised: st.SystemsCompromised(),
	}
	for _, m := range s.Missions().Active() {
		sum.Active = append(sum.Active, m.ID)
	}
	return sum
}

func newSaveShowCommand(opts *options) *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "show <agent>",
		Short: "Print the status of an agent's saved session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			sess, sg, err := e.resume(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to load save for %s: %w", args[0], err)
			}
			out := cmd.OutOrStdout()
			if asYAML {
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(summarize(sess, sg)); err != nil {
					return fmt.Errorf("failed to encode summary: %w", err)
				}
				return enc.Close()
			}

			res, err := sess.Execute(cmd.Context(), "status")
			if err != nil {
				return err
			}
			t := theme.Current()
			p := ansi.NewPainter(out, isTerminal(out))
			for _, l := range res.Lines {
				if err := p.Println(t.StyleColor(l.Style), l.Text); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print a YAML summary instead")
	return cmd
}

func newSaveDeleteCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <agent>",
		Short: "Delete an agent's saved session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.saves.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to delete save for %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted save for %s.\n", args[0])
			return nil
		},
	}
}
