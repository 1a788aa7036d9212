// Package cmd provides the adminctl commands: an operator CLI over the same
// authenticated client the console uses, with credentials kept in a local
// YAML file.
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/venue-master/admin-console/pkg/apiclient"
	"github.com/venue-master/admin-console/pkg/config"
	"github.com/venue-master/admin-console/pkg/endpoints"
	"github.com/venue-master/admin-console/pkg/logger"
	"github.com/venue-master/admin-console/pkg/session"
	"github.com/venue-master/admin-console/pkg/telemetry"
	"github.com/venue-master/admin-console/pkg/tokenstore"
)

const cliSessionID = "adminctl"

// Options customises the command tree. Zero values load from the environment.
type Options struct {
	// Config, when nil, is loaded with config.Load.
	Config *config.Config
	// HTTPClient overrides the upstream client built from the config.
	HTTPClient *http.Client
}

// env is the per-invocation state shared by every command.
type env struct {
	opts            Options
	credentialsPath string
	verbose         bool

	cfg  *config.Config
	sess *session.Context
}

// NewRootCommand returns the adminctl command tree.
func NewRootCommand(opts Options) *cobra.Command {
	e := &env{opts: opts}
	root := &cobra.Command{
		Use:   "adminctl",
		Short: "Venue admin console from the terminal",
		Long: `adminctl talks to the venue platform services as a signed-in operator.

Credentials are kept in a YAML file (CREDENTIALS_FILE, default
$XDG_CONFIG_HOME/venue-admin/credentials.yaml). Expired access tokens are
refreshed automatically; when the refresh token is no longer accepted the
file is cleared and you need to sign in again.

Upstream hosts come from BASE_URL, AUTH_PORT, GATEWAY_PORT and BOOKING_PORT.
Every command prints JSON.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return e.init(cmd.Context()) },
	}
	root.PersistentFlags().StringVar(&e.credentialsPath, "credentials", "", "credentials file (default: CREDENTIALS_FILE or the user config dir)")
	root.PersistentFlags().BoolVarP(&e.verbose, "verbose", "v", false, "log upstream calls and token refreshes to stderr")

	root.AddCommand(
		newLoginCommand(e),
		newLogoutCommand(e),
		newWhoamiCommand(e),
		newVenuesCommand(e),
		newFacilitiesCommand(e),
		newBookingsCommand(e),
		newUsersCommand(e),
		newVersionCommand(),
	)
	return root
}

// Execute runs the root command.
func Execute() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := telemetry.SetupSentry(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "sentry disabled:", err)
	}

	err = NewRootCommand(Options{Config: cfg}).ExecuteContext(context.Background())
	if err != nil {
		telemetry.CaptureError(context.Background(), err)
	}
	telemetry.SentryFlush()
	if err != nil {
		fmt.Fprintln(os.Stderr, describe(err))
		os.Exit(1)
	}
}

func (e *env) init(ctx context.Context) error {
	if e.sess != nil {
		return nil
	}
	cfg := e.opts.Config
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
	}
	e.cfg = cfg

	path := e.credentialsPath
	if path == "" {
		p, err := cfg.CredentialsPath()
		if err != nil {
			return err
		}
		path = p
	}

	level := "warn"
	if e.verbose {
		level = "debug"
	}
	sc := session.Config{
		ID:             cliSessionID,
		Store:          tokenstore.NewFile(path),
		Resolver:       endpoints.FromConfig(cfg),
		HTTPClient:     apiclient.NewHTTPClient(cfg.UpstreamTimeout),
		Logger:         logger.NewWithWriter(os.Stderr, level),
		RefreshTimeout: cfg.RefreshTimeout,
	}
	if e.opts.HTTPClient != nil {
		sc.HTTPClient = e.opts.HTTPClient
	}
	sess, err := session.New(ctx, sc)
	if err != nil {
		return err
	}
	e.sess = sess
	return nil
}

// client returns the signed-in client, failing fast when no credentials are held.
func (e *env) client() (apiclient.Doer, error) {
	if !e.sess.IsAuthenticated() {
		return nil, errNotSignedIn
	}
	return e.sess.Client(), nil
}

var errNotSignedIn = errors.New("not signed in, run: adminctl login")

// describe turns err into the one line printed to the operator.
func describe(err error) string {
	var (
		httpErr       *apiclient.HTTPError
		validationErr *apiclient.ValidationError
	)
	switch {
	case apiclient.IsAuthExpired(err):
		return "session expired, run: adminctl login"
	case errors.As(err, &validationErr):
		return "rejected: " + validationErr.Message()
	case errors.As(err, &httpErr) && httpErr.Message != "":
		return fmt.Sprintf("%s (HTTP %d)", httpErr.Message, httpErr.Status)
	default:
		return err.Error()
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
