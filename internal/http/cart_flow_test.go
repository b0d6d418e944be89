package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"modahaus/internal/config"
	"modahaus/internal/http/handlers"
	"modahaus/internal/repos"
	"modahaus/internal/services"
)

func newCartApp(t *testing.T) (*fiber.App, *sqlx.DB) {
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

	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart", deps.CartHandler.Add)
	app.Post("/cart/quantity", deps.CartHandler.UpdateQuantity)
	return app, db
}

func csrfToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/cart", nil))
	if err != nil {
		t.Fatal(err)
	}
	tok := extractCookie(resp, "csrf_")
	if tok == "" {
		t.Fatal("csrf token missing")
	}
	return tok
}

func postForm(t *testing.T, app *fiber.App, path, body, csrfTok, sid string) *http.Response {
	t.Helper()
	form := strings.NewReader("csrf=" + csrfTok + "&" + body)
	req := httptest.NewRequest("POST", path, form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

// Anonymous visitors who try to mutate the cart get sent to sign in,
// and nothing reaches the store.
func TestCartMutationAnonymousRedirectsToLogin(t *testing.T) {
	app, db := newCartApp(t)
	tok := csrfToken(t, app)

	resp := postForm(t, app, "/cart", "productId=shein-floral-maxi-gown&qty=3", tok, "")
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/login" {
		t.Fatalf("want redirect to /login, got %d %s", resp.StatusCode, resp.Header.Get("Location"))
	}
	var rows int
	_ = db.Get(&rows, `SELECT COUNT(*) FROM cart_items`)
	if rows != 0 {
		t.Fatalf("anonymous add reached the store: %d rows", rows)
	}
}

// A signed-in add clamps the requested quantity up to a full bundle and
// writes the line through to the store.
func TestCartAddSignedInClampsAndPersists(t *testing.T) {
	app, db := newCartApp(t)
	tok := csrfToken(t, app)

	userRepo := repos.NewUserRepo(db)
	if err := userRepo.BindSession("sid-test", "u-amaka"); err != nil {
		t.Fatal(err)
	}

	resp := postForm(t, app, "/cart", "productId=shein-floral-maxi-gown&qty=3", tok, "sid-test")
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/cart" {
		t.Fatalf("want redirect to /cart, got %d %s", resp.StatusCode, resp.Header.Get("Location"))
	}

	var row struct {
		Qty       int     `db:"qty"`
		UnitPrice float64 `db:"unit_price"`
	}
	if err := db.Get(&row, `SELECT qty, unit_price FROM cart_items WHERE user_id=? AND product_id=?`,
		"u-amaka", "shein-floral-maxi-gown"); err != nil {
		t.Fatal(err)
	}
	if row.Qty != 10 {
		t.Fatalf("want qty clamped to 10, got %d", row.Qty)
	}
	if row.UnitPrice != 3500 {
		t.Fatalf("want unit price 3500, got %v", row.UnitPrice)
	}

	// Bad quantity falls back to one bundle via the update route.
	resp = postForm(t, app, "/cart/quantity", "productId=shein-floral-maxi-gown&qty=25", tok, "sid-test")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("update failed: %d", resp.StatusCode)
	}
	if err := db.Get(&row, `SELECT qty, unit_price FROM cart_items WHERE user_id=? AND product_id=?`,
		"u-amaka", "shein-floral-maxi-gown"); err != nil {
		t.Fatal(err)
	}
	if row.Qty != 30 {
		t.Fatalf("want qty rounded to 30, got %d", row.Qty)
	}
}

// Unknown products 404 rather than writing a dangling cart line.
func TestCartAddUnknownProduct(t *testing.T) {
	app, db := newCartApp(t)
	tok := csrfToken(t, app)
	userRepo := repos.NewUserRepo(db)
	if err := userRepo.BindSession("sid-test", "u-amaka"); err != nil {
		t.Fatal(err)
	}

	resp := postForm(t, app, "/cart", "productId=no-such-item&qty=1", tok, "sid-test")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("want 404, got %d", resp.StatusCode)
	}
}
