package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	prefsinadapter "timebox/internal/modules/preferences/adapter/in"
	prefsoutadapter "timebox/internal/modules/preferences/adapter/out"
	prefsdomain "timebox/internal/modules/preferences/domain"
	prefsin "timebox/internal/modules/preferences/port/in"
	prefsout "timebox/internal/modules/preferences/port/out"
	prefsservice "timebox/internal/modules/preferences/service"
	prefsusecase "timebox/internal/modules/preferences/usecase"
	sheetinadapter "timebox/internal/modules/sheet/adapter/in"
	sheetoutadapter "timebox/internal/modules/sheet/adapter/out"
	sheetout "timebox/internal/modules/sheet/port/out"
	sheetservice "timebox/internal/modules/sheet/service"
	sheetusecase "timebox/internal/modules/sheet/usecase"
	"timebox/internal/platform/auth"
	"timebox/internal/platform/clock"
	"timebox/internal/platform/config"
	"timebox/internal/platform/daykey"
	"timebox/internal/platform/httpclient"
	"timebox/internal/platform/id"
	"timebox/internal/platform/sqlitedb"
	"timebox/internal/platform/toast"
	"timebox/internal/platform/tx"
	"timebox/internal/server"
)

// Mode names how a session persists its sheets.
type Mode string

const (
	ModeRemote Mode = "remote"
	ModeGuest  Mode = "guest"
)

// Session is everything a signed-in (or guest) client needs. The gateway is
// picked once here and never switched while the session lives.
type Session struct {
	Mode     Mode
	Owner    string
	SheetCLI sheetinadapter.CLIHandler
	PrefsCLI prefsinadapter.CLIHandler
	Clock    clock.Clock
	Location *time.Location
	Locale   daykey.Locale

	client *httpclient.Client
}

// OpenSession resolves the session from cfg and loads preferences. A failed
// preferences load is reported through toasts and leaves the defaults in
// place; it does not fail the session.
func OpenSession(ctx context.Context, cfg *config.Config, toasts toast.Emitter) (*Session, error) {
	if cfg == nil {
		return nil, fmt.Errorf("open session: config is nil")
	}
	if toasts == nil {
		toasts = toast.Discard{}
	}
	clk := clock.SystemClock{}
	loc := cfg.Location()
	locale := daykey.Locale(cfg.Locale)

	var (
		sheetGateway sheetout.Gateway
		prefsGateway prefsout.Gateway
		client       *httpclient.Client
		mode         = ModeGuest
		owner        string
	)
	if cfg.Authenticated() {
		client = httpclient.New(cfg.Remote.URL, cfg.Remote.Username, cfg.Remote.Password, cfg.Remote.Timeout)
		sheetGateway = sheetoutadapter.NewRemoteGateway(client)
		prefsGateway = prefsoutadapter.NewRemoteGateway(client)
		mode = ModeRemote
		owner = cfg.Remote.Username
	} else {
		dir, err := cfg.GuestPath()
		if err != nil {
			return nil, fmt.Errorf("resolve guest dir: %w", err)
		}
		sheetGateway = sheetoutadapter.NewLocalGateway(dir, id.NewTimestamp(clk))
		prefsGateway = prefsoutadapter.NewStaticGateway(prefsdomain.Defaults())
	}

	prefs := prefsusecase.NewInteractor(prefsservice.NewPreferencesService(prefsGateway, toasts))
	_ = prefs.Load(ctx)

	sheets := sheetusecase.NewInteractor(sheetservice.NewSheetService(sheetservice.Options{
		Gateway:  sheetGateway,
		Windows:  sheetoutadapter.NewPreferencesWindow(prefs),
		Exporter: sheetoutadapter.NewMarkdownExporter(),
		Toasts:   notificationsGate(ctx, toasts, prefs),
		Clock:    clk,
		Location: loc,
		Locale:   locale,
	}))

	return &Session{
		Mode:     mode,
		Owner:    owner,
		SheetCLI: sheetinadapter.NewCLIHandler(sheets),
		PrefsCLI: prefsinadapter.NewCLIHandler(prefs),
		Clock:    clk,
		Location: loc,
		Locale:   locale,
		client:   client,
	}, nil
}

// Close drops idle connections of a remote session.
func (s *Session) Close() {
	if s == nil || s.client == nil {
		return
	}
	s.client.Close()
}

func notificationsGate(ctx context.Context, next toast.Emitter, prefs prefsin.Store) toast.Emitter {
	return toast.Gate{
		Next: next,
		Enabled: func() bool {
			return prefs.Get(ctx).Notifications
		},
	}
}

// NewServer wires the API server over the SQLite database in cfg. The
// returned cleanup closes the database.
func NewServer(ctx context.Context, cfg *config.Config, logger hclog.Logger) (*server.Server, func(), error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("new server: config is nil")
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve database path: %w", err)
	}
	db, err := sqlitedb.Open(dbPath)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = db.Close() }

	sqlLogger := logger.Named("sqlite")
	sheetRepo, err := sheetoutadapter.NewSQLiteRepository(ctx, db, sqlLogger)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("new sheet repository: %w", err)
	}
	prefsRepo, err := prefsoutadapter.NewSQLiteRepository(ctx, db, sqlLogger)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("new preferences repository: %w", err)
	}

	txm := tx.NewSQLManager(db)
	sheetCatalog := sheetusecase.NewCatalogInteractor(sheetservice.NewCatalogService(
		sheetRepo, txm, clock.SystemClock{}, id.UUID{}, cfg.Location(), daykey.Locale(cfg.Locale),
	))
	prefsCatalog := prefsusecase.NewCatalogInteractor(prefsservice.NewCatalogService(prefsRepo, txm))

	if len(cfg.Users) == 0 {
		logger.Warn("no users configured; every /api request will be rejected")
	}

	srv := server.New(server.Options{
		Addr:   cfg.Listen,
		Logger: logger.Named("http"),
		Auth:   auth.NewAuthenticator(cfg.Users),
		Routes: []server.Registrar{
			sheetinadapter.NewHTTPHandler(sheetCatalog),
			prefsinadapter.NewHTTPHandler(prefsCatalog),
		},
	})
	return srv, cleanup, nil
}
