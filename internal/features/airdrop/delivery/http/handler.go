package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "airdrop-tracker-backend/internal/common/errors"
	"airdrop-tracker-backend/internal/common/middleware"
	"airdrop-tracker-backend/internal/features/airdrop/models"
	"airdrop-tracker-backend/internal/features/airdrop/service"
)

type AirdropHandler struct {
	service service.AirdropService
	logger  *zap.Logger
}

func NewAirdropHandler(service service.AirdropService, logger *zap.Logger) *AirdropHandler {
	return &AirdropHandler{
		service: service,
		logger:  logger,
	}
}

func (h *AirdropHandler) RegisterRoutes(router *gin.RouterGroup) {
	airdrops := router.Group("/airdrops")
	{
		airdrops.GET("", h.list)
		airdrops.POST("", h.create)
		airdrops.POST("/bulk", h.bulkAdd)
		airdrops.GET("/:id", h.get)
		airdrops.PUT("/:id", h.update)
		airdrops.DELETE("/:id", h.delete)

		airdrops.POST("/:id/tasks", h.addTask)
		airdrops.POST("/:id/tasks/:taskId/toggle", h.toggleTask)
		airdrops.DELETE("/:id/tasks/:taskId", h.removeTask)
	}
}

// @Summary List airdrops
// @Description List the current user's airdrops, newest first, optionally filtered by status and a case-insensitive search term
// @Tags airdrops
// @Produce json
// @Security TelegramInitData
// @Param q query string false "Substring matched against name and description"
// @Param status query string false "Status filter: all, upcoming, active, completed" default(all)
// @Success 200 {array} models.Airdrop
// @Failure 500 {object} middleware.ErrorResponse
// @Router /airdrops [get]
func (h *AirdropHandler) list(c *gin.Context) {
	var query models.ListQuery
	query.Search = c.Query("q")
	query.Status = models.ParseFilterStatus(c.Query("status"))

	list, err := h.service.List(c.Request.Context(), middleware.OwnerID(c), query)
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// @Summary Create airdrop
// @Description Create a new airdrop record; status is derived from tasks and dates
// @Tags airdrops
// @Accept json
// @Produce json
// @Security TelegramInitData
// @Param airdrop body models.AirdropCreate true "Airdrop data"
// @Success 201 {object} models.Airdrop
// @Failure 400 {object} middleware.ErrorResponse
// @Router /airdrops [post]
func (h *AirdropHandler) create(c *gin.Context) {
	var input models.AirdropCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.AbortWithError(c, h.logger, apperrors.New(apperrors.ErrCodeBadRequest, err.Error()))
		return
	}
	// A caller-supplied status is only honored on the bulk path.
	input.Status = nil

	created, err := h.service.Create(c.Request.Context(), middleware.OwnerID(c), &input)
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// @Summary Get airdrop
// @Tags airdrops
// @Produce json
// @Security TelegramInitData
// @Param id path string true "Airdrop ID"
// @Success 200 {object} models.Airdrop
// @Failure 404 {object} middleware.ErrorResponse
// @Router /airdrops/{id} [get]
func (h *AirdropHandler) get(c *gin.Context) {
	airdrop, err := h.service.Get(c.Request.Context(), middleware.OwnerID(c), c.Param("id"))
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, airdrop)
}

// @Summary Update airdrop
// @Description Replace an airdrop record; status is recomputed from the incoming tasks and dates
// @Tags airdrops
// @Accept json
// @Produce json
// @Security TelegramInitData
// @Param id path string true "Airdrop ID"
// @Param airdrop body models.AirdropUpdate true "Airdrop data"
// @Success 200 {object} models.Airdrop
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /airdrops/{id} [put]
func (h *AirdropHandler) update(c *gin.Context) {
	var input models.AirdropUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.AbortWithError(c, h.logger, apperrors.New(apperrors.ErrCodeBadRequest, err.Error()))
		return
	}

	updated, err := h.service.Update(c.Request.Context(), middleware.OwnerID(c), c.Param("id"), &input)
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// @Summary Delete airdrop
// @Tags airdrops
// @Produce json
// @Security TelegramInitData
// @Param id path string true "Airdrop ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Router /airdrops/{id} [delete]
func (h *AirdropHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.OwnerID(c), c.Param("id")); err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Add task
// @Description Add a checklist item to an airdrop
// @Tags airdrops
// @Accept json
// @Produce json
// @Security TelegramInitData
// @Param id path string true "Airdrop ID"
// @Param task body models.TaskCreate true "Task data"
// @Success 200 {object} models.Airdrop
// @Failure 404 {object} middleware.ErrorResponse
// @Router /airdrops/{id}/tasks [post]
func (h *AirdropHandler) addTask(c *gin.Context) {
	var input models.TaskCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.AbortWithError(c, h.logger, apperrors.New(apperrors.ErrCodeBadRequest, err.Error()))
		return
	}

	airdrop, err := h.service.AddTask(c.Request.Context(), middleware.OwnerID(c), c.Param("id"), &input)
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, airdrop)
}

// @Summary Toggle task
// @Description Flip a checklist item's completion and re-derive the airdrop status
// @Tags airdrops
// @Produce json
// @Security TelegramInitData
// @Param id path string true "Airdrop ID"
// @Param taskId path string true "Task ID"
// @Success 200 {object} models.Airdrop
// @Failure 404 {object} middleware.ErrorResponse
// @Router /airdrops/{id}/tasks/{taskId}/toggle [post]
func (h *AirdropHandler) toggleTask(c *gin.Context) {
	airdrop, err := h.service.ToggleTask(c.Request.Context(), middleware.OwnerID(c), c.Param("id"), c.Param("taskId"))
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, airdrop)
}

// @Summary Remove task
// @Tags airdrops
// @Produce json
// @Security TelegramInitData
// @Param id path string true "Airdrop ID"
// @Param taskId path string true "Task ID"
// @Success 200 {object} models.Airdrop
// @Failure 404 {object} middleware.ErrorResponse
// @Router /airdrops/{id}/tasks/{taskId} [delete]
func (h *AirdropHandler) removeTask(c *gin.Context) {
	airdrop, err := h.service.RemoveTask(c.Request.Context(), middleware.OwnerID(c), c.Param("id"), c.Param("taskId"))
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, airdrop)
}

// @Summary Bulk add airdrops
// @Description Raw ingestion used by import adapters; a supplied status is trusted as-is and input order is preserved in the listing
// @Tags airdrops
// @Accept json
// @Produce json
// @Security TelegramInitData
// @Param items body models.BulkAddRequest true "Items to ingest"
// @Success 200 {object} service.BulkResult
// @Failure 400 {object} middleware.ErrorResponse
// @Router /airdrops/bulk [post]
func (h *AirdropHandler) bulkAdd(c *gin.Context) {
	var req models.BulkAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, h.logger, apperrors.New(apperrors.ErrCodeBadRequest, err.Error()))
		return
	}

	result, err := h.service.BulkAdd(c.Request.Context(), middleware.OwnerID(c), req.Items)
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
