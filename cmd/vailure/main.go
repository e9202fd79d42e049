package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vailure/internal/assistant"
	"vailure/internal/catalog"
	"vailure/internal/config"
	"vailure/internal/http/handlers"
	applog "vailure/internal/log"
	"vailure/internal/session"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := catalog.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	store, err := catalog.Load(db)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("[catalog] loaded %d products", len(store.Products()))

	ai := assistant.NewClient(cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.GeminiFlash, cfg.GeminiPro)
	sessions := session.NewRegistry(ai)

	// Templates & app
	engine := html.New(cfg.TemplateDir, ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals; best-effort render
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		Next: func(c *fiber.Ctx) bool {
			// The chat widget posts JSON with the sid cookie only.
			return c.Path() == "/api/v1/chat/open" || c.Path() == "/api/v1/chat/messages"
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"form": c.FormValue("csrf")})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- App handlers ----------
	deps := handlers.NewDeps(store, sessions)

	// Storefront
	app.Get("/", deps.CatalogHandler.Home)
	app.Post("/filter", deps.CatalogHandler.SetFilter)
	app.Get("/search", limiter.New(limiter.Config{Max: 20, Expiration: time.Minute}), deps.SearchHandler.Search)
	app.Post("/search/toggle", deps.SearchHandler.Toggle)

	// Product pages & quick-view
	app.Get("/product", func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	})
	app.Get("/product/:id", deps.ProductHandler.Detail)
	app.Post("/quickview/close", deps.ProductHandler.QuickViewClose)
	app.Post("/quickview/add", deps.ProductHandler.QuickViewAdd)
	app.Post("/quickview/:id", deps.ProductHandler.QuickViewOpen)

	// Cart
	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart", deps.CartHandler.Add)
	app.Post("/cart/quantity", deps.CartHandler.UpdateQuantity)
	app.Post("/cart/delete", deps.CartHandler.Delete)
	app.Post("/cart/toggle", deps.CartHandler.Toggle)

	// Chat widget API
	api := app.Group("/api/v1")
	chatLimiter := limiter.New(limiter.Config{
		Max:        15,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|chat"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.chat.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})
	api.Post("/chat/open", deps.ChatHandler.Open)
	api.Get("/chat/messages", deps.ChatHandler.Transcript)
	api.Post("/chat/messages", chatLimiter, deps.ChatHandler.Submit)

	// Health & metrics & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
