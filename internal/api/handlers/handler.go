package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/lucasmn/fueltrack/internal/api/suggest"
	"github.com/lucasmn/fueltrack/internal/auth"
	"github.com/lucasmn/fueltrack/internal/repository"
	"github.com/lucasmn/fueltrack/internal/service"
	"github.com/lucasmn/fueltrack/pkg/ws"
)

// Handler wires the HTTP surface to services and stores.
type Handler struct {
	logger         *zap.Logger
	jwtManager     *auth.JWTManager
	profileRepo    *repository.ProfileRepository
	vehicleRepo    *repository.VehicleRepository
	vehicleService *service.VehicleService
	fuelService    *service.FuelService
	oilService     *service.OilService
	suggestClient  *suggest.Client
	wsHub          *ws.Hub
	upgrader       websocket.Upgrader
}

// NewHandler creates the handler.
func NewHandler(
	logger *zap.Logger,
	jwtManager *auth.JWTManager,
	profileRepo *repository.ProfileRepository,
	vehicleRepo *repository.VehicleRepository,
	vehicleService *service.VehicleService,
	fuelService *service.FuelService,
	oilService *service.OilService,
	suggestClient *suggest.Client,
	wsHub *ws.Hub,
) *Handler {
	return &Handler{
		logger:         logger,
		jwtManager:     jwtManager,
		profileRepo:    profileRepo,
		vehicleRepo:    vehicleRepo,
		vehicleService: vehicleService,
		fuelService:    fuelService,
		oilService:     oilService,
		suggestClient:  suggestClient,
		wsHub:          wsHub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // mobile clients connect from app webviews
			},
		},
	}
}

// RegisterRoutes registers the API routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	api.Use(h.RequireSession())
	{
		// vehicles
		api.GET("/vehicles", h.ListVehicles)
		api.POST("/vehicles", h.AddVehicle)
		api.PATCH("/vehicles/:id", h.UpdateVehicle)
		api.DELETE("/vehicles/:id", h.DeleteVehicle)
		api.GET("/vehicles/:id/oil-status", h.GetOilStatus)

		// fuel records
		api.GET("/fuel-records", h.ListFuelRecords)
		api.POST("/fuel-records", h.AddFuelRecord)
		api.DELETE("/fuel-records/:id", h.DeleteFuelRecord)
		api.GET("/fuel-records/stats", h.GetFuelStats)

		// oil changes
		api.GET("/oil-changes", h.ListOilChanges)
		api.POST("/oil-changes", h.AddOilChange)
		api.DELETE("/oil-changes/:id", h.DeleteOilChange)
		api.GET("/oil-changes/can-add", h.CanAddOilChange)

		// profile and tier
		api.GET("/profile", h.GetProfile)
		api.POST("/profile/upgrade", h.UpgradeProfile)
		api.POST("/map/access", h.AccessMap)

		// suggestions
		api.GET("/suggestions", h.GetSuggestions)
	}

	// WebSocket, authenticated by query token
	r.GET("/ws", h.HandleWebSocket)

	r.GET("/health", h.HealthCheck)
}

// HandleWebSocket upgrades a device connection for sync events.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	userID, err := h.jwtManager.ValidateAccessToken(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade websocket", zap.Error(err))
		return
	}

	client := ws.NewClient(h.wsHub, conn, userID)
	client.Register()

	go client.ReadPump()
	go client.WritePump()
}

// HealthCheck reports liveness.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"ws_clients": h.wsHub.ClientCount(),
	})
}
