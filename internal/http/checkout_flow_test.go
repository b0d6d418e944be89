package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	html "github.com/gofiber/template/html/v2"

	"modahaus/internal/config"
	"modahaus/internal/http/handlers"
	"modahaus/internal/repos"
	"modahaus/internal/services"
)

func newCheckoutApp(t *testing.T) (*fiber.App, *handlers.Deps) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	deps := handlers.NewDeps(db, config.Config{}, authSvc)

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
				deps.CartService.EnsureLoaded(u.ID)
			}
		}
		return c.Next()
	})
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))

	checkout := app.Group("/checkout", handlers.RequireUser(authSvc))
	checkout.Get("/", deps.CheckoutHandler.Start)
	checkout.Post("/delivery", deps.CheckoutHandler.SelectDelivery)
	checkout.Get("/receipt", deps.CheckoutHandler.ReceiptForm)
	checkout.Post("/back", deps.CheckoutHandler.Back)

	if err := userRepo.BindSession("sid-test", "u-amaka"); err != nil {
		t.Fatal(err)
	}
	p, err := repos.NewProductRepo(db).Get("shein-floral-maxi-gown")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := deps.CartService.Add("u-amaka", p, 10); err != nil {
		t.Fatal(err)
	}
	return app, deps
}

func get(t *testing.T, app *fiber.App, path, sid string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

// Walking delivery -> back -> delivery through the routes must keep the
// chosen method on the draft; re-entering the checkout page resumes the
// open flow instead of resetting it.
func TestCheckoutBackKeepsSelectionOverHTTP(t *testing.T) {
	app, deps := newCheckoutApp(t)
	uid := "u-amaka"

	resp := get(t, app, "/checkout/", "sid-test")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("open checkout: %d", resp.StatusCode)
	}
	tok := extractCookie(resp, "csrf_")
	if tok == "" {
		t.Fatal("csrf token missing")
	}

	resp = postForm(t, app, "/checkout/delivery", "method=pickup", tok, "sid-test")
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/checkout/receipt" {
		t.Fatalf("delivery select: %d %s", resp.StatusCode, resp.Header.Get("Location"))
	}

	resp = postForm(t, app, "/checkout/back", "", tok, "sid-test")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("back: %d", resp.StatusCode)
	}

	// The browser follows the redirect back onto the delivery page.
	resp = get(t, app, resp.Header.Get("Location"), "sid-test")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("re-enter checkout: %d", resp.StatusCode)
	}

	// The earlier selection is still on the draft.
	_, draft, err := deps.CheckoutService.Current(uid)
	if err != nil {
		t.Fatal(err)
	}
	if draft.DeliveryMethod != "pickup" {
		t.Fatalf("delivery selection lost on back: %+v", draft)
	}
	if err := deps.CheckoutService.ContinueToReceipt(uid); err != nil {
		t.Fatalf("continue after back: %v", err)
	}
}
