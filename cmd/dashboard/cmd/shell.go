package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sangkips/insights/internal/client/render"
	"github.com/sangkips/insights/internal/client/view"
	"github.com/sangkips/insights/internal/domain/enum"
	"github.com/spf13/cobra"
)

const shellHelp = `commands:
  login <email> <password>   sign in
  logout                     sign out
  open <path>                navigate (/login, /dashboard, ...)
  tab <name>                 switch manager tab (overview, trends, sentiment, by-day)
  show                       print the current view
  save <file.html>           render the current view
  export <file.xlsx>         export the current view
  help                       this text
  quit                       leave`

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Navigate the dashboard interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.close()
		return runShell(cmd.Context(), c, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(ctx context.Context, c *client, in io.Reader, out io.Writer) error {
	if settings.GetString("email") != "" && settings.GetString("password") != "" {
		if err := c.signIn(ctx); err != nil {
			fmt.Fprintln(out, err)
		}
	}
	fmt.Fprintf(out, "at %s\n", c.app.Path())

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		done, err := shellStep(ctx, c, fields, out)
		if err != nil {
			fmt.Fprintln(out, "error:", err)
		}
		if done {
			return nil
		}
	}
}

func shellStep(ctx context.Context, c *client, fields []string, out io.Writer) (done bool, err error) {
	switch fields[0] {
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(out, shellHelp)
	case "login":
		if len(fields) != 3 {
			return false, fmt.Errorf("usage: login <email> <password>")
		}
		if err := c.store.SignIn(ctx, fields[1], fields[2]); err != nil {
			return false, err
		}
		fmt.Fprintf(out, "signed in, at %s\n", c.app.Path())
	case "logout":
		if err := c.store.SignOut(ctx); err != nil {
			return false, err
		}
		fmt.Fprintf(out, "signed out, at %s\n", c.app.Path())
	case "open":
		if len(fields) != 2 {
			return false, fmt.Errorf("usage: open <path>")
		}
		fmt.Fprintf(out, "at %s\n", c.app.Navigate(fields[1]))
	case "tab":
		m, ok := c.app.View().(*view.Manager)
		if !ok {
			return false, fmt.Errorf("tabs are only available on the manager dashboard")
		}
		t, err := view.ParseTab(strings.Join(fields[1:], " "))
		if err != nil {
			return false, err
		}
		if m.Activate(t) {
			m.Wait()
		}
		describe(out, m.Snapshot())
	case "show":
		v := c.app.View()
		if v == nil {
			fmt.Fprintf(out, "at %s, no dashboard mounted\n", c.app.Path())
			return false, nil
		}
		v.Wait()
		describe(out, v.Snapshot())
	case "save", "export":
		if len(fields) != 2 {
			return false, fmt.Errorf("usage: %s <file>", fields[0])
		}
		return false, saveCurrent(c, fields[0], fields[1])
	default:
		return false, fmt.Errorf("unknown command %q (try help)", fields[0])
	}
	return false, nil
}

func saveCurrent(c *client, kind, path string) error {
	v := c.app.View()
	if v == nil {
		return fmt.Errorf("no dashboard mounted")
	}
	v.Wait()
	snap := v.Snapshot()
	opts := render.PageOptions{Email: c.store.State().Identity.Email, GeneratedAt: time.Now()}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if kind == "export" {
		return render.WriteWorkbook(f, snap, opts, c.log)
	}
	return render.WritePage(f, snap, c.charts, opts)
}

// describe prints a plain-text outline of a view.
func describe(out io.Writer, snap view.Snapshot) {
	fmt.Fprintf(out, "%s dashboard", snap.Kind)
	if snap.Kind == enum.ViewManager {
		fmt.Fprintf(out, " [%s]", snap.Tab)
	}
	fmt.Fprintln(out)
	if snap.Failed {
		fmt.Fprintf(out, "  ERROR: %s\n", snap.Banner)
		return
	}
	for _, d := range snap.Datasets {
		line := fmt.Sprintf("  %-20s %-8s", d.Key, d.Status)
		if d.Status == view.StatusReady {
			line += fmt.Sprintf(" %d rows", len(d.Rows))
		}
		fmt.Fprintln(out, strings.TrimRight(line, " "))
	}
	if snap.Banner != "" {
		fmt.Fprintf(out, "  errors:\n    %s\n", strings.ReplaceAll(snap.Banner, "\n", "\n    "))
	}
}
