package handlers

import (
	"github.com/jmoiron/sqlx"

	"jerseystore/internal/repos"
	"jerseystore/internal/services"
)

type Deps struct {
	Auth *services.AuthService

	CategoryHandler  *CategoryHandler
	ProductHandler   *ProductHandler
	InventoryHandler *InventoryHandler
	CartHandler      *CartHandler
	OrderHandler     *OrderHandler
	AdminHandler     *AdminHandler
	AuthHandler      *AuthHandler
}

func NewDeps(db *sqlx.DB) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	invRepo := repos.NewInventoryRepo(db)
	reviewRepo := repos.NewReviewRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	userRepo := repos.NewUserRepo(db)

	authSvc := services.NewAuthService(userRepo)
	catalogSvc := services.NewCatalogService(db, catRepo, prodRepo, reviewRepo)
	invSvc := services.NewInventoryService(db, invRepo, prodRepo)
	cartSvc := services.NewCartService(prodRepo)
	orderSvc := services.NewOrderService(db, prodRepo, invRepo, orderRepo)
	exportSvc := services.NewExportService(orderRepo, invRepo)

	return &Deps{
		Auth:             authSvc,
		CategoryHandler:  &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:   &ProductHandler{Catalog: catalogSvc},
		InventoryHandler: &InventoryHandler{Inv: invSvc},
		CartHandler:      &CartHandler{Cart: cartSvc},
		OrderHandler:     &OrderHandler{Order: orderSvc},
		AdminHandler:     &AdminHandler{Catalog: catalogSvc, Order: orderSvc, Export: exportSvc},
		AuthHandler:      &AuthHandler{Auth: authSvc},
	}
}
