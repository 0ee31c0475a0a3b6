package http

import (
	"context"
	"net/http"

	"steam-analysis/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AnalysisController - то, что нужно обработчикам от контроллера запросов.
type AnalysisController interface {
	Submit(ctx context.Context, description string) error
	SelectGame(gameID int) error
	Display() service.DisplayModel
}

// Handler представляет HTTP обработчик веб-представления
type Handler struct {
	controller AnalysisController
	wsHandler  http.Handler
	logger     *zap.Logger
}

// New создает новый экземпляр обработчика. wsHandler может быть nil.
func New(controller AnalysisController, wsHandler http.Handler, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		controller: controller,
		wsHandler:  wsHandler,
		logger:     logger.Named("HTTPHandler"),
	}
}

// RegisterRoutes регистрирует маршруты
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)

	api := router.Group("/api")
	{
		api.POST("/analyze", h.Analyze)
		api.GET("/state", h.GetState)
		api.PUT("/selection", h.SelectGame)
	}

	if h.wsHandler != nil {
		router.GET("/ws", gin.WrapH(h.wsHandler))
	}
}

type analyzeRequest struct {
	Description string `json:"description"`
}

type selectGameRequest struct {
	GameID *int `json:"game_id" binding:"required"`
}

// Analyze запускает анализ описания. Ответ 202: результат придет позже
// через /api/state или /ws.
func (h *Handler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Invalid analyze request body", zap.Error(err))
		handleBindError(c, err)
		return
	}

	if err := h.controller.Submit(c.Request.Context(), req.Description); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, h.controller.Display())
}

// GetState возвращает текущую модель отображения
func (h *Handler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.controller.Display())
}

// SelectGame меняет выбранную игру в блоке отзывов
func (h *Handler) SelectGame(c *gin.Context) {
	var req selectGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	if err := h.controller.SelectGame(*req.GameID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.controller.Display())
}

// Health - проверка живости
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
