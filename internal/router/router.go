package router

import (
	"time"

	"github.com/ludogi/sistema-de-rotacion-pagos/internal/config"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/handler"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/infra"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/middleware"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/repository"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/service"
	"github.com/ludogi/sistema-de-rotacion-pagos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine plus the
// aviso service, which the server also hands to the periodic sweep cron.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*gin.Engine, service.AvisoService, error) {
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
	ticketStore, err := infra.NewFileStore(cfg.TicketStoragePath)
	if err != nil {
		return nil, nil, err
	}

	// ── Repositories ─────────────────────────────────────────────────────────
	trabajadorRepo := repository.NewTrabajadorRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	compraRepo := repository.NewCompraRepository(db)
	avisoRepo := repository.NewAvisoRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	usuarioRepo := repository.NewUsuarioRepository(db)
	resetTokenRepo := repository.NewResetTokenRepository(db)
	reporteRepo := repository.NewReporteRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, resetTokenRepo, dispatcher, cfg, nil)
	trabajadorSvc := service.NewTrabajadorService(trabajadorRepo, compraRepo)
	productoSvc := service.NewProductoService(productoRepo)
	rotacionSvc := service.NewRotacionService(compraRepo, trabajadorRepo, productoRepo, avisoRepo, nil)
	avisoSvc := service.NewAvisoService(avisoRepo, productoRepo, trabajadorRepo, compraRepo, dispatcher, nil)
	ticketSvc := service.NewTicketService(ticketRepo, compraRepo, ticketStore)
	reporteSvc := service.NewReporteService(reporteRepo, cfg.ReporteStoragePath, nil)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	trabajadoresH := handler.NewTrabajadoresHandler(trabajadorSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	rotacionH := handler.NewRotacionHandler(rotacionSvc)
	avisosH := handler.NewAvisosHandler(avisoSvc)
	ticketsH := handler.NewTicketsHandler(ticketSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
		auth.POST("/reset/solicitar", middleware.LoginRateLimiter(), authH.SolicitarReset)
		auth.POST("/reset/confirmar", authH.ConfirmarReset)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	cualquiera := middleware.RequireRole("trabajador", "administrador")
	admin := middleware.RequireRole("administrador")
	v1 := r.Group("/v1", jwtMW)
	{
		// Rotación — any authenticated member can consult and buy
		v1.POST("/compras", cualquiera, rotacionH.RegistrarCompra)
		v1.GET("/compras", cualquiera, rotacionH.ListarCompras)
		v1.GET("/rotacion/proximo", cualquiera, rotacionH.ProximoComprador)
		v1.GET("/rotacion/estado", cualquiera, rotacionH.Estado)
		v1.GET("/rotacion/resumen", cualquiera, rotacionH.Resumen)
		v1.GET("/rotacion/historial", cualquiera, rotacionH.Historial)
		v1.GET("/rotacion/pendientes", cualquiera, rotacionH.ProductosPendientes)

		// Trabajadores — reads for everyone, writes admin only
		v1.GET("/trabajadores", cualquiera, trabajadoresH.Listar)
		v1.GET("/trabajadores/:id", cualquiera, trabajadoresH.Obtener)
		v1.GET("/trabajadores/:id/estadisticas", cualquiera, trabajadoresH.Estadisticas)
		trabajadores := v1.Group("/trabajadores", admin)
		{
			trabajadores.POST("", trabajadoresH.Crear)
			trabajadores.PUT("/reordenar", trabajadoresH.Reordenar)
			trabajadores.PUT("/:id", trabajadoresH.Actualizar)
			trabajadores.DELETE("/:id", trabajadoresH.Eliminar)
			trabajadores.PATCH("/:id/reactivar", trabajadoresH.Reactivar)
		}

		// Productos
		v1.GET("/productos", cualquiera, productosH.Listar)
		v1.GET("/productos/:id", cualquiera, productosH.Obtener)
		productos := v1.Group("/productos", admin)
		{
			productos.POST("", productosH.Crear)
			productos.PUT("/:id", productosH.Actualizar)
			productos.DELETE("/:id", productosH.Eliminar)
			productos.PATCH("/:id/reactivar", productosH.Reactivar)
		}

		// Avisos
		v1.GET("/avisos", cualquiera, avisosH.ListarPendientes)
		v1.GET("/avisos/mios", cualquiera, avisosH.MisAvisos)
		v1.PATCH("/avisos/:id", cualquiera, avisosH.ActualizarEstado)
		v1.POST("/avisos/sweep", admin, avisosH.Sweep)

		// Tickets
		v1.POST("/compras/:id/tickets", cualquiera, ticketsH.Subir)
		v1.GET("/compras/:id/tickets", cualquiera, ticketsH.ListarPorCompra)
		v1.GET("/tickets/:id", cualquiera, ticketsH.Descargar)
		v1.DELETE("/tickets/:id", admin, ticketsH.Eliminar)

		// Reportes
		v1.GET("/reportes/gastos", cualquiera, reportesH.Gastos)
		v1.GET("/reportes/gastos/pdf", cualquiera, reportesH.ExportarPDF)

		// Usuarios — administrador only
		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", authH.CrearUsuario)
			usuarios.GET("", authH.ListarUsuarios)
			usuarios.DELETE("/:id", authH.EliminarUsuario)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r, avisoSvc, nil
}
