package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sangkips/insights/internal/client/api"
	"github.com/sangkips/insights/internal/client/app"
	"github.com/sangkips/insights/internal/client/session"
	"github.com/sangkips/insights/pkg/chart"
	"github.com/sangkips/insights/pkg/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Settings are read from flags, then DASHBOARD_* environment variables.
var settings = viper.New()

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Insights dashboard client",
	Long: `dashboard signs in to the insights backend, opens the dashboard your
account is routed to and renders it.

Available commands:
  render    Write the dashboard as an HTML page with SVG charts
  export    Write the dashboard datasets to an .xlsx workbook
  shell     Navigate the dashboard interactively

Credentials can be passed with --email/--password or DASHBOARD_EMAIL and
DASHBOARD_PASSWORD.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("api-url", "http://localhost:8080", "backend base URL")
	flags.String("email", "", "account email")
	flags.String("password", "", "account password")
	flags.Duration("timeout", 60*time.Second, "per-request timeout")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")

	for _, name := range []string{"api-url", "email", "password", "timeout", "log-level"} {
		_ = settings.BindPFlag(name, flags.Lookup(name))
	}
	settings.SetEnvPrefix("DASHBOARD")
	settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	settings.AutomaticEnv()
}

// client is everything a command needs once the user is signed in.
type client struct {
	log    *zap.Logger
	api    *api.Client
	store  *session.Store
	app    *app.App
	charts *chart.Renderer
}

func newClient() (*client, error) {
	log, err := logging.New("development", settings.GetString("log-level"))
	if err != nil {
		return nil, err
	}
	apiClient := api.New(settings.GetString("api-url"), settings.GetDuration("timeout"), log)
	store := session.NewStore(apiClient, log)
	return &client{
		log:    log,
		api:    apiClient,
		store:  store,
		app:    app.New(store, apiClient, log),
		charts: chart.New(log),
	}, nil
}

// signIn uses the configured credentials.
func (c *client) signIn(ctx context.Context) error {
	email, password := settings.GetString("email"), settings.GetString("password")
	if email == "" || password == "" {
		return errors.New("email and password are required (--email/--password or DASHBOARD_EMAIL/DASHBOARD_PASSWORD)")
	}
	if err := c.store.SignIn(ctx, email, password); err != nil {
		return fmt.Errorf("sign in: %w", err)
	}
	return nil
}

func (c *client) close() {
	c.app.Close()
	_ = c.log.Sync()
}
