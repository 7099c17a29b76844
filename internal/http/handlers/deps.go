package handlers

import (
	"path/filepath"

	"arcticfresh/internal/config"
	"arcticfresh/internal/media"
	"arcticfresh/internal/services"
)

// Backend is the storage a deployment runs on: sqlite repos or the mongo
// stores.
type Backend struct {
	Products   services.ProductStore
	Categories services.CategoryStore
	Inquiries  services.InquiryStore
	Wishlist   services.StorageFactory
}

type Deps struct {
	Auth     *services.AuthService
	Catalog  *services.CatalogService
	Wishlist *services.WishlistService
	Contact  *services.ContactService

	AuthHandler     *AuthHandler
	CategoryHandler *CategoryHandler
	ProductHandler  *ProductHandler
	WishlistHandler *WishlistHandler
	ContactHandler  *ContactHandler
	AdminHandler    *AdminHandler
	UploadHandler   *UploadHandler

	Secure bool
}

func NewDeps(b Backend, cfg config.Config, auth *services.AuthService, mailer services.Mailer, up media.Uploader) *Deps {
	catalogSvc := services.NewCatalogService(b.Products, b.Categories)
	wishSvc := services.NewWishlistService(b.Wishlist, b.Products)
	contactSvc := services.NewContactService(b.Inquiries, mailer)

	mediaDir := cfg.MediaDir
	if abs, err := filepath.Abs(mediaDir); err == nil {
		mediaDir = abs
	}

	return &Deps{
		Auth:     auth,
		Catalog:  catalogSvc,
		Wishlist: wishSvc,
		Contact:  contactSvc,

		AuthHandler:     &AuthHandler{Auth: auth, Secure: cfg.CookieSecure},
		CategoryHandler: &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:  &ProductHandler{Catalog: catalogSvc},
		WishlistHandler: &WishlistHandler{Wish: wishSvc, Secure: cfg.CookieSecure},
		ContactHandler:  &ContactHandler{Service: contactSvc},
		AdminHandler:    &AdminHandler{Catalog: catalogSvc, Contact: contactSvc, MediaBackend: up.Backend()},
		UploadHandler:   &UploadHandler{Media: up, MaxBytes: DefaultUploadBytes, Dir: mediaDir},

		Secure: cfg.CookieSecure,
	}
}
