package handler

import (
	"net/http"

	"github.com/akruglov/escrow-bot/internal/domain/entity"
	domainerr "github.com/akruglov/escrow-bot/internal/domain/error"
	coreport "github.com/akruglov/escrow-bot/internal/domain/port/core"
	"github.com/akruglov/escrow-bot/internal/domain/usecase/deal"
	"github.com/akruglov/escrow-bot/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// DealHandler serves read-only deal endpoints for the operator
type DealHandler struct {
	dealUseCase *deal.DealUseCase
	logger      coreport.Logger
}

// NewDealHandler creates a new deal handler instance
func NewDealHandler(dealUseCase *deal.DealUseCase, logger coreport.Logger) *DealHandler {
	return &DealHandler{
		dealUseCase: dealUseCase,
		logger:      logger,
	}
}

// GetRecent handles GET /deals/recent
func (h *DealHandler) GetRecent(c *gin.Context) {
	limit := parseLimit(c.DefaultQuery("limit", "50"))

	deals, err := h.dealUseCase.ListRecent(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("Error listing recent deals", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, dealResponses(deals))
}

// GetByStatus handles GET /deals?status=AWAITING_DEPOSIT
func (h *DealHandler) GetByStatus(c *gin.Context) {
	status := entity.DealStatus(c.Query("status"))
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidation),
			Message: "Unknown deal status",
		})
		return
	}
	limit := parseLimit(c.DefaultQuery("limit", "50"))

	deals, err := h.dealUseCase.ListByStatus(c.Request.Context(), status, limit)
	if err != nil {
		h.logger.Error("Error listing deals by status", map[string]any{
			"status": status.String(),
			"error":  err.Error(),
		})
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, dealResponses(deals))
}

func dealResponses(deals []*entity.Deal) []dto.DealResponse {
	out := make([]dto.DealResponse, 0, len(deals))
	for _, d := range deals {
		out = append(out, dto.NewDealResponse(d))
	}
	return out
}
