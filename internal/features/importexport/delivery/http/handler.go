package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "airdrop-tracker-backend/internal/common/errors"
	"airdrop-tracker-backend/internal/common/middleware"
	"airdrop-tracker-backend/internal/features/importexport/service"
)

type ImportExportHandler struct {
	service service.ImportExportService
	logger  *zap.Logger

	defaultSpreadsheetID string
	defaultRange         string
}

func NewImportExportHandler(service service.ImportExportService, logger *zap.Logger, defaultSpreadsheetID, defaultRange string) *ImportExportHandler {
	return &ImportExportHandler{
		service:              service,
		logger:               logger,
		defaultSpreadsheetID: defaultSpreadsheetID,
		defaultRange:         defaultRange,
	}
}

func (h *ImportExportHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/import/sheets", h.importSheet)
	router.POST("/export/sheets", h.exportSheet)
}

// SheetRequest selects the spreadsheet and range; both fall back to the
// configured defaults when omitted.
type SheetRequest struct {
	SpreadsheetID string `json:"spreadsheet_id"`
	Range         string `json:"range"`
}

func (h *ImportExportHandler) resolve(req *SheetRequest) error {
	if req.SpreadsheetID == "" {
		req.SpreadsheetID = h.defaultSpreadsheetID
	}
	if req.Range == "" {
		req.Range = h.defaultRange
	}
	if req.SpreadsheetID == "" {
		return apperrors.NewValidationError("spreadsheet_id", "no spreadsheet configured or supplied")
	}
	return nil
}

// @Summary Import airdrops from Google Sheets
// @Description Reads the range, requires an exact header match, skips rows without a Name (reported as warnings) and ingests the rest
// @Tags importexport
// @Accept json
// @Produce json
// @Security TelegramInitData
// @Param request body SheetRequest false "Spreadsheet selection"
// @Success 200 {object} service.ImportResult
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /import/sheets [post]
func (h *ImportExportHandler) importSheet(c *gin.Context) {
	var req SheetRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			middleware.AbortWithError(c, h.logger, apperrors.New(apperrors.ErrCodeBadRequest, err.Error()))
			return
		}
	}
	if err := h.resolve(&req); err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	result, err := h.service.ImportFromSheet(c.Request.Context(), middleware.OwnerID(c), req.SpreadsheetID, req.Range)
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary Export airdrops to Google Sheets
// @Description Clears the destination range, writes the header row and one row per airdrop in the store's full unfiltered order
// @Tags importexport
// @Accept json
// @Produce json
// @Security TelegramInitData
// @Param request body SheetRequest false "Spreadsheet selection"
// @Success 200 {object} service.ExportResult
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /export/sheets [post]
func (h *ImportExportHandler) exportSheet(c *gin.Context) {
	var req SheetRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			middleware.AbortWithError(c, h.logger, apperrors.New(apperrors.ErrCodeBadRequest, err.Error()))
			return
		}
	}
	if err := h.resolve(&req); err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	result, err := h.service.ExportToSheet(c.Request.Context(), middleware.OwnerID(c), req.SpreadsheetID, req.Range)
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
