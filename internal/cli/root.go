package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hrctl-labs/hrctl/internal/api"
	"github.com/hrctl-labs/hrctl/internal/auth"
	"github.com/hrctl-labs/hrctl/internal/branding"
	"github.com/hrctl-labs/hrctl/internal/config"
	"github.com/hrctl-labs/hrctl/internal/logging"
	"github.com/hrctl-labs/hrctl/internal/session"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	flagAPIURL  string
	flagVerbose bool

	log     *zap.Logger
	store   *session.Store
	client  *api.Client
	authSvc *auth.Service
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` is a terminal console for an HRMS backend: employees,
departments, companies, job titles, system users, and the HR dashboard.

Log in once with '` + branding.CLIName() + ` login'; the session persists until it expires
or you log out.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		if flagAPIURL != "" {
			// Flag override lives only for this invocation.
			config.SetAPIBaseURL(flagAPIURL)
		}

		log = logging.New(flagVerbose)
		store = session.NewStore(config.Dir())
		store.OnClear(func() {
			log.Debug("session cleared")
		})
		client = api.NewClient(store, api.WithLogger(log))
		authSvc = auth.NewService(client)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "Backend base URL for this invocation (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", renderError(err))
	}
	return err
}

// renderError flattens structured errors into the message shapes users see.
func renderError(err error) string {
	var valErr *api.ValidationError
	if errors.As(err, &valErr) {
		msg := valErr.Message
		for _, fe := range valErr.Fields {
			msg += "\n  " + fe.Field + ": " + fe.Message
		}
		return msg
	}
	return err.Error()
}

// requireLogin resolves the caller's role, failing when no session exists.
func requireLogin() (auth.Role, error) {
	role, ok := authSvc.CurrentRole()
	if !ok {
		return "", fmt.Errorf("not logged in. Run '%s login' first", branding.CLIName())
	}
	return role, nil
}

// requireCapability gates a command on a role predicate before any request
// goes out. The backend enforces the same rule; this just fails earlier and
// with a clearer message.
func requireCapability(what string, allowed func(auth.Role) bool) error {
	role, err := requireLogin()
	if err != nil {
		return err
	}
	if !allowed(role) {
		return fmt.Errorf("your role (%s) cannot %s", role.DisplayName(), what)
	}
	return nil
}
