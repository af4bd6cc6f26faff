package router

import (
	"net/http"

	authsvc "pazar-backend/internal/application/auth"
	boostsvc "pazar-backend/internal/application/boost"
	listsvc "pazar-backend/internal/application/listing"
	ordersvc "pazar-backend/internal/application/orders"
	previewsvc "pazar-backend/internal/application/preview"
	prodsvc "pazar-backend/internal/application/products"
	shopsvc "pazar-backend/internal/application/shops"
	stocksvc "pazar-backend/internal/application/stock"
	uploadsvc "pazar-backend/internal/application/uploads"
	usersvc "pazar-backend/internal/application/user"
	"pazar-backend/internal/config"
	"pazar-backend/internal/infrastructure/database"
	authhandler "pazar-backend/internal/interfaces/handlers/auth"
	boosthandler "pazar-backend/internal/interfaces/handlers/boost"
	healthhandler "pazar-backend/internal/interfaces/handlers/health"
	listinghandler "pazar-backend/internal/interfaces/handlers/listing"
	orderhandler "pazar-backend/internal/interfaces/handlers/orders"
	payhandler "pazar-backend/internal/interfaces/handlers/payments"
	previewhandler "pazar-backend/internal/interfaces/handlers/preview"
	prodhandler "pazar-backend/internal/interfaces/handlers/products"
	shophandler "pazar-backend/internal/interfaces/handlers/shops"
	stockhandler "pazar-backend/internal/interfaces/handlers/stock"
	userhandler "pazar-backend/internal/interfaces/handlers/user"
	"pazar-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
		BodyLimit:               50 * 1024 * 1024, // drafts carry base64 images
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	// Webhook is registered before the session middleware so the raw body
	// reaches signature verification untouched.
	stripeWebhook := &payhandler.WebhookHandler{WebhookSecret: cfg.StripeWebhookSecret}
	app.Post("/api/v1/stripe/webhook", func(c *fiber.Ctx) error {
		return stripeWebhook.HandleWebhook(c)
	})

	sessionHandler, redisClient, err := middleware.Session(middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	})
	if err != nil {
		return nil, nil, nil, err
	}
	rdb := redisClient
	app.Use(sessionHandler)
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.ResponseFormatter())
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	app.Use(func(c *fiber.Ctx) error {
		user := c.Locals("user")
		if user == nil {
			c.Locals("user", nil)
		}
		return c.Next()
	})

	hh := &healthhandler.Handlers{
		Rdb:            rdb,
		DB:             nil,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/", hh.Dashboard)
	app.Get("/reset", hh.Reset)
	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", hh.Errors)

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var errDB error
		db, errDB = database.Open(cfg.DatabaseURL)
		if errDB != nil {
			return nil, nil, nil, errDB
		}
		hh.DB = &gormDBPinger{db: db}
	}

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}

	var userFinder authsvc.UserFinder
	if db != nil {
		userFinder = &authsvc.GormUserFinder{DB: db}
	}
	ah := &authhandler.Handlers{
		UserFinder: userFinder,
		Rdb:        rdb,
		Config:     sessionCfg,
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/login", ah.Login)
	authGroup.Get("/me", ah.Me)
	authGroup.Delete("/logout", ah.Logout)

	if db != nil && rdb != nil {
		bs := &boostsvc.Service{DB: db}
		stripeWebhook.Boost = bs

		// User — registration is public, everything else behind the session.
		us := &usersvc.Service{DB: db}
		uh := &userhandler.Handlers{Service: us}
		app.Post("/api/v1/users", uh.Create)
		ug := app.Group("/api/v1/users", middleware.RequireAuth())
		ug.Get("/me", uh.View)
		ug.Put("/me", uh.Update)

		// Shops — list and select need only a session, the rest an active shop.
		ss := &shopsvc.Service{DB: db}
		sh := &shophandler.Handlers{Service: ss}
		sg := app.Group("/api/v1/shops", middleware.RequireAuth())
		sg.Get("/", sh.List)
		sg.Post("/select", sh.Select)
		sg.Get("/metrics", middleware.RequireShop(), sh.Metrics)
		sig := app.Group("/api/v1/shops/seller-info", middleware.RequireAuth(), middleware.RequireShop())
		sig.Get("/", sh.GetSellerInfo)
		sig.Put("/", middleware.RequireShopRole(shopsvc.RoleOwner, shopsvc.RoleCoOwner), sh.PutSellerInfo)
		sig.Delete("/", middleware.RequireShopRole(shopsvc.RoleOwner, shopsvc.RoleCoOwner), sh.DeleteSellerInfo)

		// Listing draft handoff between compose and preview.
		channel := &listsvc.RedisDraftChannel{RDB: rdb}
		lh := &listinghandler.Handlers{Channel: channel}
		lg := app.Group("/api/v1/listing", middleware.RequireAuth())
		lg.Post("/draft", lh.Submit)
		lg.Get("/draft", lh.Restore)
		lg.Delete("/draft", lh.Discard)

		// Preview and submit for moderation.
		storage := &uploadsvc.HTTPClient{BaseURL: cfg.StorageURL, SecretKey: cfg.StorageSecretKey}
		blobs := &uploadsvc.Service{Client: storage, StorageURL: cfg.StorageURL, Bucket: cfg.StorageBucket}
		ps := &previewsvc.Service{DB: db, Channel: channel, Blobs: blobs}
		ph := &previewhandler.Handlers{Service: ps}
		lg.Get("/preview", ph.Show)
		lg.Post("/confirm", ph.Confirm)

		// Products
		prods := &prodsvc.Service{DB: db}
		prodh := &prodhandler.Handlers{Service: prods}
		pg := app.Group("/api/v1/products", middleware.RequireAuth(), middleware.RequireShop())
		pg.Get("/", prodh.List)
		pg.Get("/:id", prodh.Get)
		pg.Put("/:id/sale-preferences",
			middleware.RequireShopRole(shopsvc.RoleOwner, shopsvc.RoleCoOwner, shopsvc.RoleEditor),
			prodh.UpdatePreferences)

		// Stock
		sts := &stocksvc.Service{DB: db}
		sth := &stockhandler.Handlers{Service: sts}
		stg := app.Group("/api/v1/stock", middleware.RequireAuth(), middleware.RequireShop())
		stg.Get("/", sth.List)
		stg.Put("/:id",
			middleware.RequireShopRole(shopsvc.RoleOwner, shopsvc.RoleCoOwner, shopsvc.RoleEditor),
			sth.UpdateQuantity)

		// Orders
		ords := &ordersvc.Service{DB: db}
		ordh := &orderhandler.Handlers{Service: ords}
		og := app.Group("/api/v1/orders", middleware.RequireAuth(), middleware.RequireShop())
		og.Get("/", ordh.List)

		// Boost
		bh := &boosthandler.Handlers{
			Service:       bs,
			StripeCreator: &boosthandler.RealStripeCreator{SecretKey: cfg.StripeSecretKey},
		}
		bg := app.Group("/api/v1/boost", middleware.RequireAuth(), middleware.RequireShop())
		bg.Get("/candidates", bh.Candidates)
		bg.Get("/active", bh.Active)
		bg.Post("/purchase",
			middleware.RequireShopRole(shopsvc.RoleOwner, shopsvc.RoleCoOwner),
			bh.Purchase)

		sweeper := &boostsvc.Sweeper{Service: bs}
		if err := sweeper.Start(); err != nil {
			return nil, nil, nil, err
		}
		app.Hooks().OnShutdown(func() error {
			sweeper.Stop()
			return nil
		})
	}

	return app, db, rdb, nil
}

func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
