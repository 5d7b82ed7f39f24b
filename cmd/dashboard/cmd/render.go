package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sangkips/insights/internal/client/app"
	"github.com/sangkips/insights/internal/client/render"
	"github.com/sangkips/insights/internal/client/view"
	"github.com/spf13/cobra"
)

var renderOpts struct {
	out  string
	tabs []string
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the dashboard to an HTML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.close()

		snap, err := loadDashboard(cmd, c, renderOpts.tabs)
		if err != nil {
			return err
		}

		f, err := os.Create(renderOpts.out)
		if err != nil {
			return err
		}
		defer f.Close()
		opts := render.PageOptions{Email: c.store.State().Identity.Email, GeneratedAt: time.Now()}
		if err := render.WritePage(f, snap, c.charts, opts); err != nil {
			return fmt.Errorf("write page: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", renderOpts.out, snap.Kind)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderOpts.out, "out", "o", "dashboard.html", "output file")
	renderCmd.Flags().StringSliceVar(&renderOpts.tabs, "tabs", []string{"all"}, `manager tabs to load ("all" or names such as trends,by-day)`)
	rootCmd.AddCommand(renderCmd)
}

// loadDashboard signs in, lets the app mount the routed view, activates the
// requested manager tabs and waits for every fetch to settle.
func loadDashboard(cmd *cobra.Command, c *client, tabNames []string) (view.Snapshot, error) {
	if err := c.signIn(cmd.Context()); err != nil {
		return view.Snapshot{}, err
	}
	if c.app.Path() != app.PathDashboard {
		return view.Snapshot{}, fmt.Errorf("not routed to the dashboard (at %s)", c.app.Path())
	}
	v := c.app.View()

	if m, ok := v.(*view.Manager); ok {
		tabs, err := parseTabs(tabNames)
		if err != nil {
			return view.Snapshot{}, err
		}
		for _, t := range tabs {
			m.Activate(t)
		}
	}
	v.Wait()
	return v.Snapshot(), nil
}

func parseTabs(names []string) ([]view.Tab, error) {
	if len(names) == 0 {
		return nil, nil
	}
	if len(names) == 1 && names[0] == "all" {
		return view.Tabs(), nil
	}
	tabs := make([]view.Tab, 0, len(names))
	for _, n := range names {
		t, err := view.ParseTab(n)
		if err != nil {
			return nil, err
		}
		tabs = append(tabs, t)
	}
	return tabs, nil
}
