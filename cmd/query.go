package main

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/startup-research/internal/query"
)

var queryCmd = &cobra.Command{
	Use:   "query <question>...",
	Short: "Ask a question about the saved records",
	Long:  "Classifies the question (industry, funding, founders, locations, or plain search) and answers it from the saved records.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		question := strings.Join(args, " ")
		res, err := query.NewEngine(st).Answer(ctx, question)
		if err != nil {
			return eris.Wrap(err, "query")
		}

		return printJSON(res)
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
}
