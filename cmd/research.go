package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/startup-research/internal/model"
)

var researchCmd = &cobra.Command{
	Use:   "research <name>...",
	Short: "Research one or more startups and save the records",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		records := env.Service.ResearchMany(ctx, args)

		zap.L().Info("research complete", zap.Int("entities", len(records)))

		return printJSON(records)
	},
}

func init() {
	rootCmd.AddCommand(researchCmd)
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// displayName favors the record's name for compact table output.
func displayName(rec *model.EntityRecord) string {
	if len(rec.Name) > 30 {
		return rec.Name[:27] + "..."
	}
	return rec.Name
}
