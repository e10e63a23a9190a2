package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lazyvibe/failbell/internal/store"
	"github.com/lazyvibe/failbell/internal/ui"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history [id]",
	Short: "List recent alerts",
	Long: `List the alerts fired by previous sessions, newest first. Pass an
alert id (or a unique prefix of one) to show a single alert.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

var (
	historyLimit int
	historyJSON  bool
	historyClear bool
)

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of alerts to show (0 for all)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "print as JSON")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "delete the alert history")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	dir, err := dataDir()
	if err != nil {
		return err
	}
	st, err := store.NewJSONStore(dir)
	if err != nil {
		return fmt.Errorf("failed to open alert history: %w", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if historyClear {
		if err := st.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear alert history: %w", err)
		}
		fmt.Fprintln(out, "Alert history cleared")
		return nil
	}

	if len(args) == 1 {
		rec, err := st.Get(ctx, args[0])
		if err != nil {
			return fmt.Errorf("alert %s: %w", args[0], err)
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}

	records, err := st.List(ctx, historyLimit)
	if err != nil {
		return err
	}
	if historyJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	fmt.Fprint(out, ui.RenderHistory(records, time.Now()))
	return nil
}
