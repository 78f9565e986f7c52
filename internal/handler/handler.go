package handler

import (
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"data-catalog/internal/middleware"
	"data-catalog/internal/service"
)

type Handlers struct {
	Product   *ProductHandler
	Approval  *ApprovalHandler
	Changelog *ChangelogHandler
	Favorite  *FavoriteHandler
	Lineage   *LineageHandler
	Seed      *SeedHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Product:   NewProductHandler(services.Product, services.Documentation),
		Approval:  NewApprovalHandler(services.Approval),
		Changelog: NewChangelogHandler(services.Changelog),
		Favorite:  NewFavoriteHandler(services.Favorite),
		Lineage:   NewLineageHandler(services.Lineage),
		Seed:      NewSeedHandler(services.Seed),
	}
}

// RegisterRoutes mounts the REST API on app.
func RegisterRoutes(app *fiber.App, h *Handlers, jwtSecret string) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api", middleware.Identity(jwtSecret))

	products := api.Group("/data-products")
	products.Get("/", h.Product.List)
	products.Post("/", h.Product.Create)
	products.Get("/:id", h.Product.Get)
	products.Put("/:id", h.Product.Update)
	products.Delete("/:id", h.Product.Delete)
	products.Post("/:id/documentation", h.Product.UploadDocumentation)

	api.Get("/stats", h.Product.Stats)

	approvals := api.Group("/approval-requests")
	approvals.Get("/", h.Approval.List)
	approvals.Get("/pending", h.Approval.ListPending)
	approvals.Post("/", h.Approval.Submit)
	approvals.Get("/:id", h.Approval.Get)
	approvals.Patch("/:id", h.Approval.Review)

	api.Get("/product-changes/:productId", h.Changelog.ForProduct)
	api.Get("/recent-changes", h.Changelog.Recent)

	favorites := api.Group("/favorites")
	favorites.Get("/:userEmail", h.Favorite.List)
	favorites.Post("/", h.Favorite.Add)
	favorites.Delete("/:userEmail/:productId", h.Favorite.Remove)
	favorites.Get("/:userEmail/:productId/check", h.Favorite.Check)

	api.Get("/data-lineage/:productId", h.Lineage.ListLineage)
	api.Post("/data-lineage", h.Lineage.AddLineage)
	api.Get("/product-dependencies/:productId", h.Lineage.ListDependencies)
	api.Post("/product-dependencies", h.Lineage.AddDependency)

	api.Post("/seed", h.Seed.Seed)
}

func parseIDParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, middleware.BadRequest("Invalid " + name)
	}
	return id, nil
}

func emailParam(c *fiber.Ctx) (string, error) {
	email, err := url.PathUnescape(c.Params("userEmail"))
	if err != nil || email == "" {
		return "", middleware.BadRequest("Invalid userEmail")
	}
	return email, nil
}
