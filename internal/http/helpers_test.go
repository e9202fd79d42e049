package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"vailure/internal/catalog"
	"vailure/internal/chat"
	"vailure/internal/domain"
	"vailure/internal/http/handlers"
	"vailure/internal/session"
)

const testSID = "test-session"

type stubAssistant struct {
	reply domain.AssistantReply
	err   error
	block chan struct{}
}

func (s *stubAssistant) Generate(ctx context.Context, prompt string, thinkingMode bool) (domain.AssistantReply, error) {
	if s.block != nil {
		<-s.block
	}
	return s.reply, s.err
}

// newApp wires a minimal app the way main does, minus CSRF, against an
// in-memory catalog and the given assistant stub.
func newApp(t *testing.T, ai chat.Assistant) (*fiber.App, *session.Registry) {
	t.Helper()

	db, err := catalog.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	store, err := catalog.Load(db)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	reg := session.NewRegistry(ai)

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())

	deps := handlers.NewDeps(store, reg)
	app.Get("/", deps.CatalogHandler.Home)
	app.Post("/filter", deps.CatalogHandler.SetFilter)
	app.Get("/search", deps.SearchHandler.Search)
	app.Post("/search/toggle", deps.SearchHandler.Toggle)
	app.Get("/product/:id", deps.ProductHandler.Detail)
	app.Post("/quickview/close", deps.ProductHandler.QuickViewClose)
	app.Post("/quickview/add", deps.ProductHandler.QuickViewAdd)
	app.Post("/quickview/:id", deps.ProductHandler.QuickViewOpen)
	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart", deps.CartHandler.Add)
	app.Post("/cart/quantity", deps.CartHandler.UpdateQuantity)
	app.Post("/cart/delete", deps.CartHandler.Delete)
	app.Post("/cart/toggle", deps.CartHandler.Toggle)
	api := app.Group("/api/v1")
	api.Post("/chat/open", deps.ChatHandler.Open)
	api.Get("/chat/messages", deps.ChatHandler.Transcript)
	api.Post("/chat/messages", deps.ChatHandler.Submit)

	return app, reg
}

func formReq(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.AddCookie(&http.Cookie{Name: "sid", Value: testSID})
	return req
}

func jsonReq(method, target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	r.AddCookie(&http.Cookie{Name: "sid", Value: testSID})
	return r
}
