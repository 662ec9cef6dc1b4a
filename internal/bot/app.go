package bot

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	tg "marketbot/core/telegram"
	"marketbot/core/telegram/commands"
	"marketbot/core/telegram/router"
	"marketbot/core/telegram/state"
	"marketbot/internal/calendar"
	appconfig "marketbot/internal/config"
	"marketbot/internal/flow"
	"marketbot/internal/metrics"
	"marketbot/internal/service"
	"marketbot/internal/storage"
	"marketbot/internal/sweeper"
)

// App wires storage, services, and bot handlers together.
type App struct {
	cfg *appconfig.Config

	users    storage.UserStore
	products storage.ProductStore

	access *service.AccessService
	fsm    state.Manager

	handlers *Handlers

	metricsSrv *metrics.Server
}

// NewApp builds the application graph on top of a connected database.
func NewApp(cfg *appconfig.Config, db *mongo.Database) *App {
	users := storage.NewUserStore(db)
	products := storage.NewProductStore(db)
	fsm := state.NewMemoryManager()

	productSvc := service.NewProductService(products)
	accessSvc := service.NewAccessService(users)

	return &App{
		cfg:      cfg,
		users:    users,
		products: products,
		access:   accessSvc,
		fsm:      fsm,
		handlers: &Handlers{
			Flow:     flow.NewAddProduct(fsm),
			Products: productSvc,
			Users:    users,
		},
	}
}

// Access exposes the allow-list service, used by the admin seeder.
func (a *App) Access() *service.AccessService {
	return a.access
}

// TelegramRunOptions assembles registry, routes, and lifecycle hooks.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	h := a.handlers
	reg := tg.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.Start,
		Description: "Show the manual",
	})
	reg.RegisterCommand("/add", commands.Command{
		Handler:     h.Add,
		Description: "Track a new product",
	})
	reg.RegisterCommand("/all", commands.Command{
		Handler:     h.All,
		Description: "List tracked products",
	})
	reg.RegisterCommand("/stats", commands.Command{
		Handler:     h.Stats,
		Description: "Record counts",
		AdminOnly:   true,
		Hidden:      true,
	})

	if err := reg.RegisterCallback(calendar.UniqueNav, h.CalendarNav); err != nil {
		return tg.RunOptions{}, err
	}
	if err := reg.RegisterCallback(calendar.UniqueDay, h.CalendarDay); err != nil {
		return tg.RunOptions{}, err
	}
	if err := reg.RegisterCallback(calendar.UniqueIgnore, h.CalendarIgnore); err != nil {
		return tg.RunOptions{}, err
	}
	reg.SetTextFallback(h.UnknownText())
	reg.SetCallbackNotFound(h.UnknownCallback())

	state.RegisterHandler(flow.StateAwaitingName, h.ReceiveName)

	core := a.cfg.CoreConfig()

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: core.Telegram.AdminID,
	})
	routes = append(routes, router.TextRoute(a.fsm, reg, router.TextOptions{}))
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))

	mws := tg.DefaultMiddlewares(core, tg.ChainOptions{
		Guard:          a.access,
		OnAccessDenied: h.AccessDenied,
	})

	return tg.RunOptions{
		Config:      core,
		Registry:    reg,
		Middlewares: mws,
		Routes:      routes,
		OnStart: func(ctx context.Context, rt tg.Runtime) error {
			if core.Metrics.Enabled {
				a.metricsSrv = metrics.NewServer(core.Metrics.Listen)
				a.metricsSrv.Start()
			}

			// The sweep loop inherits the run context, so shutdown stops
			// it; a failed alert stops it for good on its own.
			sw := sweeper.New(a.products, NewExpiryNotifier(rt.Bot))
			go func() { _ = sw.Run(ctx) }()
			return nil
		},
		OnStop: func(ctx context.Context, _ tg.Runtime) error {
			if a.metricsSrv != nil {
				return a.metricsSrv.Stop(ctx)
			}
			return nil
		},
	}, nil
}
