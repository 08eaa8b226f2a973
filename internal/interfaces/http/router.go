package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/elbaul-api/internal/application/auth"
	"github.com/jhoicas/elbaul-api/internal/application/cart"
	"github.com/jhoicas/elbaul-api/internal/application/inventory"
	"github.com/jhoicas/elbaul-api/internal/application/order"
	"github.com/jhoicas/elbaul-api/internal/application/usecase"
	"github.com/jhoicas/elbaul-api/internal/domain/entity"
	"github.com/jhoicas/elbaul-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CategoryUC  *usecase.CategoryUseCase
	ProductUC   *usecase.ProductUseCase
	Ledger      *inventory.LedgerUseCase
	CartUC      *cart.CartUseCase
	CheckoutUC  *order.CheckoutUseCase
	CancelUC    *order.CancelUseCase
	OrderQuery  *order.QueryUseCase
	OrderStatus *order.StatusUseCase
	ShipmentUC  *usecase.ShipmentUseCase
	ReturnUC    *usecase.ReturnUseCase
	FavoriteUC  *usecase.FavoriteUseCase
	ReviewUC    *usecase.ReviewUseCase
	PostUC      *usecase.PostUseCase
	CommentUC   *usecase.CommentUseCase
	ReactionUC  *usecase.ReactionUseCase

	JWTSecret      string
	LoginRateLimit int
	Log            *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	log = log.Named("http")

	authHandler := NewAuthHandler(deps.AuthUC, log)
	categoryHandler := NewCategoryHandler(deps.CategoryUC, log)
	productHandler := NewProductHandler(deps.ProductUC, deps.Ledger, log)
	inventoryHandler := NewInventoryHandler(deps.Ledger, log)
	cartHandler := NewCartHandler(deps.CartUC, log)
	orderHandler := NewOrderHandler(deps.CheckoutUC, deps.CancelUC, deps.OrderQuery, deps.OrderStatus, log)
	shipmentHandler := NewShipmentHandler(deps.ShipmentUC, log)
	returnHandler := NewReturnHandler(deps.ReturnUC, log)
	favoriteHandler := NewFavoriteHandler(deps.FavoriteUC, log)
	reviewHandler := NewReviewHandler(deps.ReviewUC, log)
	postHandler := NewPostHandler(deps.PostUC, log)
	commentHandler := NewCommentHandler(deps.CommentUC, log)
	postReactions := NewReactionHandler(deps.ReactionUC, entity.TargetPost, log)
	commentReactions := NewReactionHandler(deps.ReactionUC, entity.TargetComment, log)

	var revoked RevocationChecker
	if deps.AuthUC != nil {
		revoked = deps.AuthUC
	}
	requireAuth := AuthMiddleware(deps.JWTSecret, revoked)
	optionalAuth := OptionalAuth(deps.JWTSecret, revoked)

	api := app.Group("/api")

	// Usuarios
	users := api.Group("/usuarios")
	users.Post("/registro", authHandler.Register)
	users.Post("/login", LoginRateLimit(deps.LoginRateLimit), authHandler.Login)
	users.Post("/logout", requireAuth, authHandler.Logout)
	users.Get("/perfil", requireAuth, authHandler.Profile)

	// Catálogo (público salvo reseñas)
	api.Get("/categorias", categoryHandler.List)
	api.Get("/categorias/:id", categoryHandler.Get)
	products := api.Group("/productos")
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/disponibilidad", productHandler.Availability)
	products.Get("/:id/resenas", reviewHandler.ListByProduct)
	products.Put("/:id/resenas", requireAuth, reviewHandler.Upsert)
	products.Get("/:id/resenas/mi-resena", requireAuth, reviewHandler.Mine)
	products.Delete("/:id/resenas/mi-resena", requireAuth, reviewHandler.DeleteMine)

	// Envíos: el rastreo es público
	api.Get("/envios/rastrear/:numero", shipmentHandler.Track)
	shipments := api.Group("/envios", requireAuth)
	shipments.Get("/", shipmentHandler.List)
	shipments.Get("/:id", shipmentHandler.Get)

	carts := api.Group("/carrito", requireAuth)
	carts.Get("/", cartHandler.View)
	carts.Delete("/", cartHandler.Clear)
	carts.Post("/items", cartHandler.AddItem)
	carts.Put("/items/:id", cartHandler.UpdateItem)
	carts.Delete("/items/:id", cartHandler.RemoveItem)

	orders := api.Group("/ordenes", requireAuth)
	orders.Post("/checkout", orderHandler.Checkout)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.Detail)
	orders.Get("/:id/comprobante", orderHandler.Receipt)
	orders.Put("/:id/cancelar", orderHandler.Cancel)

	returns := api.Group("/devoluciones", requireAuth)
	returns.Post("/", returnHandler.Create)
	returns.Get("/", returnHandler.List)
	returns.Get("/:id", returnHandler.Get)

	favorites := api.Group("/favoritos", requireAuth)
	favorites.Get("/", favoriteHandler.List)
	favorites.Post("/", favoriteHandler.Add)
	favorites.Get("/verificar/:producto_id", favoriteHandler.Check)
	favorites.Delete("/:producto_id", favoriteHandler.Remove)

	// Comunidad: lectura pública, escritura autenticada
	posts := api.Group("/publicaciones")
	posts.Get("/", postHandler.Feed)
	posts.Post("/", requireAuth, postHandler.Create)
	posts.Get("/:id", postHandler.Get)
	posts.Put("/:id", requireAuth, postHandler.Update)
	posts.Delete("/:id", requireAuth, postHandler.Delete)
	posts.Get("/:id/comentarios", commentHandler.ListByPost)
	posts.Post("/:id/comentarios", requireAuth, commentHandler.Create)
	posts.Get("/:id/reacciones", optionalAuth, postReactions.Summary)
	posts.Post("/:id/reacciones", requireAuth, postReactions.Toggle)

	comments := api.Group("/comentarios")
	comments.Put("/:id", requireAuth, commentHandler.Update)
	comments.Delete("/:id", requireAuth, commentHandler.Delete)
	comments.Get("/:id/reacciones", optionalAuth, commentReactions.Summary)
	comments.Post("/:id/reacciones", requireAuth, commentReactions.Toggle)

	// Administración
	admin := api.Group("/admin", requireAuth, RequireRole(entity.RoleAdmin))
	admin.Post("/categorias", categoryHandler.Create)
	admin.Post("/productos", productHandler.Create)
	admin.Put("/productos/:id", productHandler.Update)
	admin.Delete("/productos/:id", productHandler.Delete)
	admin.Get("/inventario/:producto_id", inventoryHandler.Get)
	admin.Post("/inventario/:producto_id/reabastecer", inventoryHandler.Restock)
	admin.Post("/inventario/:producto_id/reservas", inventoryHandler.Reserve)
	admin.Delete("/inventario/:producto_id/reservas", inventoryHandler.ReleaseReservation)
	admin.Put("/ordenes/:id/estado", orderHandler.UpdateStatus)
	admin.Post("/envios", shipmentHandler.Create)
	admin.Put("/envios/:id/entregar", shipmentHandler.Deliver)
	admin.Put("/resenas/:id/aprobar", reviewHandler.Approve)
}
