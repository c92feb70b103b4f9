package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yildizm/bookrec/internal/config"
	"github.com/yildizm/bookrec/internal/emoji"
	"github.com/yildizm/bookrec/internal/session"
)

var historyLimit int

func newHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently visited locations",
		Long: `Show the locations the interactive browser visited, newest first, along
with the saved location and model the next browse session starts from.`,
		Example: `  bookrec history
  bookrec history --limit 5`,
		Args: cobra.NoArgs,
		RunE: runHistory,
	}

	cmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of visits to show")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Session.Enabled {
		return errors.New("sessions are disabled in the configuration")
	}

	sess, err := session.Open(config.ExpandPath(cfg.Session.Path))
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close() }()

	out := cmd.OutOrStdout()
	if loc, err := sess.LastLocation(); err == nil {
		fmt.Fprintf(out, "%s Last location: %s\n", emoji.GetEmoji("target"), loc)
	}
	if model, err := sess.LastModel(); err == nil {
		fmt.Fprintf(out, "%s Last model: %s\n", emoji.GetEmoji("model"), model.Label())
	}

	visits, err := sess.Visits(historyLimit)
	if err != nil {
		return err
	}
	if len(visits) == 0 {
		fmt.Fprintln(out, "No visits recorded yet")
		return nil
	}

	fmt.Fprintln(out)
	for _, v := range visits {
		fmt.Fprintf(out, "%4d  %s  %s\n", v.Seq, v.At.Local().Format("2006-01-02 15:04:05"), v.Location)
	}
	return nil
}
