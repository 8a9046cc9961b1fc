package router

import (
	"time"

	"hostalpos/internal/clock"
	"hostalpos/internal/config"
	"hostalpos/internal/handler"
	"hostalpos/internal/infra"
	"hostalpos/internal/middleware"
	"hostalpos/internal/repository"
	"hostalpos/internal/service"
	"hostalpos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	exchange := infra.NewExchangeClient(cfg.ExchangeServiceURL, cfg.BaseCurrency, rdb)
	clk := clock.New()

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	rateRepo := repository.NewRateTypeRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	methodRepo := repository.NewPaymentMethodRepository(db)
	cajaRepo := repository.NewCajaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	roomSvc := service.NewRoomService(roomRepo, bookingRepo, clk)
	customerSvc := service.NewCustomerService(customerRepo)
	productoSvc := service.NewProductoService(productoRepo, rdb)
	catalogoSvc := service.NewCatalogoService(rateRepo, methodRepo)
	cajaSvc := service.NewCajaService(cajaRepo, paymentRepo, methodRepo, clk)
	paymentSvc := service.NewPaymentService(paymentRepo, methodRepo, cajaRepo, bookingRepo, exchange, clk, cfg.BaseCurrency)
	bookingSvc := service.NewBookingService(bookingRepo, roomRepo, roomSvc, rateRepo, customerRepo, productoRepo, paymentSvc, dispatcher, clk)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	roomsH := handler.NewRoomHandler(roomSvc, bookingSvc)
	customersH := handler.NewCustomerHandler(customerSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	catalogoH := handler.NewCatalogoHandler(catalogoSvc)
	bookingsH := handler.NewBookingHandler(bookingSvc)
	paymentsH := handler.NewPaymentHandler(paymentSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)
	consultaH := handler.NewConsultaPreciosHandler(productoRepo, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check used at reception, read-only
	r.GET("/v1/precio/:barcode", consultaH.GetPrecioPorBarcode)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: recepcionista, supervisor, administrador. Declared per-endpoint.
		operativos := middleware.RequireRole("recepcionista", "supervisor", "administrador")
		supervisores := middleware.RequireRole("supervisor", "administrador")
		admin := middleware.RequireRole("administrador")

		bookings := v1.Group("/bookings", operativos)
		{
			bookings.POST("", bookingsH.Create)
			bookings.GET("", bookingsH.List)
			bookings.GET("/:id", bookingsH.Get)
			bookings.POST("/:id/finish", bookingsH.Finish)
			bookings.POST("/:id/extend", bookingsH.ExtendTime)
			bookings.POST("/:id/consumptions", bookingsH.AddConsumption)
			bookings.POST("/:id/cancel", bookingsH.Cancel)
			bookings.GET("/:id/ticket", bookingsH.Ticket)
		}

		v1.GET("/rooms", operativos, roomsH.List)
		v1.GET("/rooms/:id/checkout-details", operativos, roomsH.CheckoutDetails)
		v1.GET("/rooms/:id/extra-time", operativos, roomsH.ExtraTime)
		v1.POST("/rooms/:id/charge-extra-time", operativos, roomsH.ChargeExtraTime)
		v1.PUT("/rooms/:id/status", operativos, roomsH.ChangeStatus)
		v1.POST("/rooms", admin, roomsH.Crear)

		pagos := v1.Group("/payments", operativos)
		{
			pagos.POST("", paymentsH.Record)
			pagos.GET("", paymentsH.List)
		}
		// Refunds reverse money already taken: supervisors only.
		v1.POST("/payments/:id/refund", supervisores, paymentsH.Refund)

		cajas := v1.Group("/cajas")
		{
			cajas.POST("", admin, cajaH.CrearCajas)
			cajas.GET("", operativos, cajaH.ListCajas)
			cajas.POST("/:id/abrir", operativos, cajaH.Abrir)
			cajas.POST("/cerrar", operativos, cajaH.Cerrar)
			cajas.GET("/activa", operativos, cajaH.GetActiva)
			cajas.GET("/historial", supervisores, cajaH.Historial)
			cajas.GET("/:id/sesiones", supervisores, cajaH.SesionesPorCaja)
		}
		v1.GET("/sesiones/:id/resumen", operativos, cajaH.Resumen)

		customers := v1.Group("/customers", operativos)
		{
			customers.POST("", customersH.Crear)
			customers.GET("", customersH.Buscar)
			customers.GET("/:id", customersH.Get)
			customers.GET("/documento/:documento", customersH.PorDocumento)
			customers.PUT("/:id", customersH.Actualizar)
		}

		v1.GET("/productos", operativos, productosH.Listar)
		v1.GET("/productos/:id", operativos, productosH.ObtenerPorID)
		prods := v1.Group("/productos", admin)
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Desactivar)
		}

		v1.GET("/rate-types", operativos, catalogoH.ListRateTypes)
		v1.POST("/rate-types", admin, catalogoH.CrearRateType)
		v1.GET("/payment-methods", operativos, catalogoH.ListMetodosPago)
		v1.POST("/payment-methods", admin, catalogoH.CrearMetodoPago)

		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}
	}

	// Swagger UI, only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
