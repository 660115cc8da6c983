package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/werkmate/werkmate-cli/internal/client/api"
	"github.com/werkmate/werkmate-cli/internal/client/bootstrap"
	"github.com/werkmate/werkmate-cli/internal/client/config"
	"github.com/werkmate/werkmate-cli/internal/client/idp"
	"github.com/werkmate/werkmate-cli/internal/client/services"
	"github.com/werkmate/werkmate-cli/internal/client/session"
	"github.com/werkmate/werkmate-cli/internal/client/state"
	"github.com/werkmate/werkmate-cli/internal/client/tenant"
	"github.com/werkmate/werkmate-cli/internal/logging"
)

// App holds the wired client and implements the REPL command surface.
type App struct {
	config   *config.Config
	log      logging.Logger
	db       *sql.DB
	bridge   *session.Bridge
	provider *idp.Provider
	tenants  *tenant.Context
	resolver *bootstrap.Resolver
	clients  *services.ClientsService
	team     *services.TeamService
	invites  inviteFlow
	reader   *bufio.Reader
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.Setup(cfg.LogLevel)

	db, err := state.Open(ctx, cfg.StateDBPath)
	if err != nil {
		return nil, fmt.Errorf("init local state: %w", err)
	}

	store := state.NewSQLiteStore(db)
	tenants := tenant.NewContext(store)
	if err := tenants.Load(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("load tenant context: %w", err)
	}

	bridge := session.NewBridge()
	provider := idp.NewProvider(cfg.IssuerURL, cfg.ClientID, cfg.CallbackAddr, bridge, log)
	apiClient := api.New(cfg.APIBaseURL, cfg.RequestTimeout, bridge, tenants, log)

	signOut := func(ctx context.Context) error {
		return provider.SignOut(ctx, idp.SignOutOptions{})
	}
	resolver := bootstrap.NewResolver(apiClient, bridge, tenants, signOut, cfg.DefaultWorkspaceName, log)

	return &App{
		config:   cfg,
		log:      log,
		db:       db,
		bridge:   bridge,
		provider: provider,
		tenants:  tenants,
		resolver: resolver,
		clients:  services.NewClientsService(apiClient),
		team:     services.NewTeamService(apiClient, tenants),
		invites:  services.NewInviteService(apiClient, bridge, tenants),
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

// Run starts the REPL and blocks until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.bridge.Status() == session.StatusAuthenticated
}

func (a *App) isReady() bool {
	return a.resolver.Ready()
}

// getStatus renders the prompt fragment: subject email and bootstrap state.
func (a *App) getStatus() string {
	s := ""
	if email := a.bridge.Email(); email != "" {
		s = email + " "
	}
	s = s + string(a.resolver.State())
	return fmt.Sprintf("(%s)", s)
}
