package cmd

import (
	"fmt"
	"time"

	"github.com/sangkips/insights/internal/client/render"
	"github.com/spf13/cobra"
)

var exportOpts struct {
	out  string
	tabs []string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the dashboard datasets to an .xlsx workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.close()

		snap, err := loadDashboard(cmd, c, exportOpts.tabs)
		if err != nil {
			return err
		}

		opts := render.PageOptions{Email: c.store.State().Identity.Email, GeneratedAt: time.Now()}
		f, err := render.Workbook(snap, opts, c.log)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := f.SaveAs(exportOpts.out); err != nil {
			return fmt.Errorf("save workbook: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d sheets)\n", exportOpts.out, len(f.GetSheetList()))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOpts.out, "out", "o", "dashboard.xlsx", "output file")
	exportCmd.Flags().StringSliceVar(&exportOpts.tabs, "tabs", []string{"all"}, "manager tabs to load")
	rootCmd.AddCommand(exportCmd)
}
