package handlers

import (
	"modahaus/internal/config"
	"modahaus/internal/repos"
	"modahaus/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	CategoryHandler  *CategoryHandler
	ProductHandler   *ProductHandler
	SearchHandler    *SearchHandler
	CartHandler      *CartHandler
	CheckoutHandler  *CheckoutHandler
	OrderHandler     *OrderHandler
	FavoritesHandler *FavoritesHandler

	CartService     *services.CartService
	CheckoutService *services.CheckoutService
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	favRepo := repos.NewFavoritesRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	checkoutSvc := services.NewCheckoutService(cartSvc, orderRepo)
	favSvc := services.NewFavoritesService(favRepo)

	// The cart follows the session identity: load on sign-in, drop on
	// sign-out.
	auth.OnIdentityChange(cartSvc.SwitchUser)

	return &Deps{
		CategoryHandler:  &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:   &ProductHandler{Catalog: catalogSvc},
		SearchHandler:    &SearchHandler{Catalog: catalogSvc},
		CartHandler:      &CartHandler{Cart: cartSvc, Catalog: catalogSvc},
		CheckoutHandler:  &CheckoutHandler{Cart: cartSvc, Checkout: checkoutSvc, Cfg: cfg},
		OrderHandler:     &OrderHandler{Repo: orderRepo},
		FavoritesHandler: &FavoritesHandler{Favs: favSvc},

		CartService:     cartSvc,
		CheckoutService: checkoutSvc,
	}
}
