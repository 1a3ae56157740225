package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/startup-research/internal/model"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Inspect saved entity records",
	Long:  "Commands for listing, viewing, and searching saved entity records.",
}

// -- records list --

var recordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved records",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		records, err := st.ListAll(ctx)
		if err != nil {
			return eris.Wrap(err, "records list")
		}

		if len(records) == 0 {
			fmt.Fprintln(os.Stderr, "No records found.")
			return nil
		}

		formatRecordsList(os.Stdout, records)
		return nil
	},
}

// -- records get --

var recordsGetCmd = &cobra.Command{
	Use:   "get <id-or-name>",
	Short: "Show a record by id or exact name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		rec, err := st.Get(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "records get")
		}
		if rec == nil {
			return eris.Errorf("no record for %q", args[0])
		}

		return printJSON(rec)
	},
}

// -- records search --

var recordsSearchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search records by text match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		records, err := st.Search(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "records search")
		}

		if len(records) == 0 {
			fmt.Fprintln(os.Stderr, "No matches.")
			return nil
		}

		formatRecordsList(os.Stdout, records)
		return nil
	},
}

func init() {
	recordsCmd.AddCommand(recordsListCmd)
	recordsCmd.AddCommand(recordsGetCmd)
	recordsCmd.AddCommand(recordsSearchCmd)
	rootCmd.AddCommand(recordsCmd)
}

// formatRecordsList writes a tabular record list to w.
func formatRecordsList(out io.Writer, records []model.EntityRecord) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tWEBSITE\tINDUSTRIES\tUPDATED")
	_, _ = fmt.Fprintln(w, "--\t----\t-------\t----------\t-------")

	for i := range records {
		r := &records[i]
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.ID,
			displayName(r),
			r.Website,
			strings.Join(r.Industries, ", "),
			r.LastUpdated.Format("2006-01-02 15:04"),
		)
	}
	_ = w.Flush()
}
