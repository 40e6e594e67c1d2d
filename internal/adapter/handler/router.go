package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/voice-dataset/internal/adapter/dto/common"
	"github.com/johnquangdev/voice-dataset/internal/domain/repositories"
	"github.com/johnquangdev/voice-dataset/pkg/config"
	"github.com/johnquangdev/voice-dataset/pkg/middleware"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	sessionHandler *Session
	adminHandler   *Admin
	// blobHandler is set only when the blob store has no public endpoint of its own
	blobHandler *Blob
	storage     repositories.BlobStoreInspector
}

const storageCheckTimeout = 3 * time.Second

// NewRouter creates a new router with all handlers
// storage may be nil, in which case the health check skips the blob store
func NewRouter(cfg *config.Config, sessionHandler *Session, adminHandler *Admin, blobHandler *Blob, storage repositories.BlobStoreInspector) *Router {
	return &Router{
		cfg:            cfg,
		sessionHandler: sessionHandler,
		adminHandler:   adminHandler,
		blobHandler:    blobHandler,
		storage:        storage,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupSessionRoutes(v1)
	rt.setupAdminRoutes(v1)
	if rt.blobHandler != nil {
		v1.GET("/blobs/*", rt.blobHandler.GetBlob)
	}
}

// setupSessionRoutes configures recording session routes
func (rt *Router) setupSessionRoutes(g *echo.Group) {
	sessions := g.Group("/sessions")

	sessions.POST("", rt.sessionHandler.CreateSession)

	// Session IDs are UUIDs; anything else cannot name a live session
	byID := sessions.Group("/:id", middleware.RequireUUIDParam("id", rt.sessionHandler.unknownSession))
	byID.GET("", rt.sessionHandler.GetSession)
	byID.DELETE("", rt.sessionHandler.CloseSession)
	byID.PUT("/contributor", rt.sessionHandler.SelectContributor)
	byID.POST("/capture/start", rt.sessionHandler.StartCapture)
	byID.POST("/capture/stop", rt.sessionHandler.StopCapture)
	byID.POST("/discard", rt.sessionHandler.Discard)
	byID.GET("/pending", rt.sessionHandler.PlayPending)
	byID.GET("/committed", rt.sessionHandler.PlayCommitted)
	byID.POST("/save", rt.sessionHandler.Save)
	byID.POST("/advance", rt.sessionHandler.Advance)
	byID.POST("/jump", rt.sessionHandler.JumpTo)
	byID.POST("/catalog/refresh", rt.sessionHandler.RefreshCatalog)
}

// setupAdminRoutes configures administration routes
func (rt *Router) setupAdminRoutes(g *echo.Group) {
	admin := g.Group("/admin")

	admin.GET("/contributors", rt.adminHandler.ListContributors)
	admin.POST("/contributors", rt.adminHandler.AddContributor)
	admin.DELETE("/contributors/:id", rt.adminHandler.DeleteContributor)
	admin.GET("/progress", rt.adminHandler.Progress)
	admin.GET("/dashboard", rt.adminHandler.Dashboard)
	admin.GET("/recordings", rt.adminHandler.ListRecordings)
	admin.POST("/export", rt.adminHandler.Export)
	admin.POST("/train", rt.adminHandler.Train)
}

// healthCheck returns health status
// @Summary      Health check
// @Description  Reports the blob store bucket; 503 when it cannot be reached
// @Tags         Health
// @Produce      json
// @Success      200  {object}  common.HealthResponse
// @Failure      503  {object}  common.HealthResponse
// @Router       /health [get]
func (rt *Router) healthCheck(c echo.Context) error {
	env := "production"
	if rt.cfg != nil {
		env = rt.cfg.Server.Environment
	}
	resp := common.HealthResponse{
		Status:      "ok",
		Environment: env,
	}
	if rt.storage == nil {
		return c.JSON(http.StatusOK, resp)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), storageCheckTimeout)
	defer cancel()

	info, err := rt.storage.Info(ctx)
	if err != nil {
		resp.Status = "degraded"
		resp.Storage = &common.StorageHealth{Error: err.Error()}
		return c.JSON(http.StatusServiceUnavailable, resp)
	}

	resp.Storage = &common.StorageHealth{
		Backend:      info.Backend,
		Bucket:       info.Bucket,
		Endpoint:     info.Endpoint,
		BucketExists: info.BucketExists,
		SizeBytes:    info.SizeBytes,
	}
	if !info.BucketExists {
		resp.Status = "degraded"
		return c.JSON(http.StatusServiceUnavailable, resp)
	}
	return c.JSON(http.StatusOK, resp)
}
