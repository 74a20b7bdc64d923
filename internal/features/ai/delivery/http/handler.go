package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "airdrop-tracker-backend/internal/common/errors"
	"airdrop-tracker-backend/internal/common/middleware"
	"airdrop-tracker-backend/internal/features/ai/models"
	"airdrop-tracker-backend/internal/features/ai/service"
	airdropmodels "airdrop-tracker-backend/internal/features/airdrop/models"
)

type AIHandler struct {
	service service.AIService
	logger  *zap.Logger
}

func NewAIHandler(service service.AIService, logger *zap.Logger) *AIHandler {
	return &AIHandler{
		service: service,
		logger:  logger,
	}
}

func (h *AIHandler) RegisterRoutes(router *gin.RouterGroup) {
	ai := router.Group("/ai")
	{
		ai.POST("/extract", h.extract)
		ai.POST("/research", h.research)
	}
}

// ExtractResult bundles the labeled fields with an airdrop create payload
// ready for the bulk ingestion endpoint.
type ExtractResult struct {
	Fields map[string]models.ExtractedField `json:"fields"`
	Draft  *airdropmodels.AirdropCreate     `json:"draft"`
}

// @Summary Extract airdrop fields from text
// @Description Runs AI extraction over free text (minimum 10 characters) and returns labeled fields plus a draft airdrop payload
// @Tags ai
// @Accept json
// @Produce json
// @Security TelegramInitData
// @Param request body models.ExtractRequest true "Text to extract from"
// @Success 200 {object} ExtractResult
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /ai/extract [post]
func (h *AIHandler) extract(c *gin.Context) {
	var req models.ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, h.logger, apperrors.New(apperrors.ErrCodeBadRequest, err.Error()))
		return
	}

	fields, err := h.service.Extract(c.Request.Context(), req.Text)
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, ExtractResult{
		Fields: fields,
		Draft:  service.ToAirdropInput(fields),
	})
}

// @Summary Research an airdrop project
// @Description Runs AI research for a project name or URL (minimum 3 characters or an absolute URL)
// @Tags ai
// @Accept json
// @Produce json
// @Security TelegramInitData
// @Param request body models.ResearchRequest true "Project name or URL"
// @Success 200 {object} models.ResearchResult
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /ai/research [post]
func (h *AIHandler) research(c *gin.Context) {
	var req models.ResearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, h.logger, apperrors.New(apperrors.ErrCodeBadRequest, err.Error()))
		return
	}

	result, err := h.service.Research(c.Request.Context(), req.Query)
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
