package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-tenant-client/authapi"
	"github.com/jrsteele09/go-tenant-client/client"
	"github.com/jrsteele09/go-tenant-client/internal/config"
	"github.com/jrsteele09/go-tenant-client/sessions"
	"github.com/jrsteele09/go-tenant-client/storage"
	"github.com/jrsteele09/go-tenant-client/tenants"
	"github.com/jrsteele09/go-tenant-client/transport"
)

var rootCmd = &cobra.Command{
	Use:   "tenantctl",
	Short: "Session and tenant-context client for a multi-tenant API",
	Long: `tenantctl holds an authenticated session against a multi-tenant
backend, resolves which tenant requests operate against, and stamps every
outgoing call with the identity and tenant headers.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(tenantCmd)
	rootCmd.AddCommand(callCmd)
}

// app wires the stores, pipeline and façade for one command invocation.
// The session is restored from durable storage before any command runs.
type app struct {
	cfg       config.Config
	session   *sessions.Store
	tenantCtx *tenants.Context
	facade    *client.Client
}

// logNavigator is the CLI's Navigator: there is no browser to redirect, so
// a forced re-authentication is reported on the console.
type logNavigator struct{}

func (logNavigator) Navigate(path string) {
	log.Warn().Str("path", path).Msg("Session rejected by backend, please log in again")
}

func buildApp() (*app, error) {
	cfg := config.New()

	store, err := storage.NewFileStore(cfg.GetDataFolder())
	if err != nil {
		return nil, err
	}

	tenantCtx, err := tenants.NewContext(store, tenants.WithLogger(log.Logger))
	if err != nil {
		return nil, err
	}
	backend := authapi.New(cfg.GetAPIBaseURL(), authapi.WithLogger(log.Logger))

	session, err := sessions.NewStore(backend, store, tenantCtx, sessions.WithLogger(log.Logger))
	if err != nil {
		return nil, err
	}
	session.RestoreFromStorage()

	normalizer := transport.NewErrorNormalizer(store, logNavigator{}, cfg.GetLoginPath(),
		transport.WithNormalizerLogger(log.Logger),
		transport.WithSessionInvalidator(session))
	pipeline, err := transport.NewPipeline(session, tenantCtx, normalizer, nil)
	if err != nil {
		return nil, err
	}

	facade := client.New(cfg.GetAPIBaseURL(), session, client.WithHTTPClient(pipeline.Client()))

	return &app{
		cfg:       cfg,
		session:   session,
		tenantCtx: tenantCtx,
		facade:    facade,
	}, nil
}
