package handler

import (
	"net/http"
	"strconv"

	"github.com/akruglov/escrow-bot/internal/domain/entity"
	domainerr "github.com/akruglov/escrow-bot/internal/domain/error"
	coreport "github.com/akruglov/escrow-bot/internal/domain/port/core"
	"github.com/akruglov/escrow-bot/internal/domain/usecase/ledger"
	"github.com/akruglov/escrow-bot/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// LedgerHandler serves read-only ledger endpoints for the operator
type LedgerHandler struct {
	ledgerUseCase *ledger.LedgerUseCase
	logger        coreport.Logger
}

// NewLedgerHandler creates a new ledger handler instance
func NewLedgerHandler(ledgerUseCase *ledger.LedgerUseCase, logger coreport.Logger) *LedgerHandler {
	return &LedgerHandler{
		ledgerUseCase: ledgerUseCase,
		logger:        logger,
	}
}

// GetBalance handles GET /user/:userId/balance?currency=USDT
func (h *LedgerHandler) GetBalance(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidation),
			Message: "Invalid user ID format",
		})
		return
	}

	currency, err := entity.ParseCurrency(c.DefaultQuery("currency", string(entity.CurrencyUSDT)))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: "Unknown currency",
		})
		return
	}

	balance, err := h.ledgerUseCase.GetBalance(c.Request.Context(), userID, currency)
	if err != nil {
		h.logger.Error("Error getting balance", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		UserID:   balance.UserID,
		Currency: balance.Currency.String(),
		Balance:  entity.FormatAmount(balance.Cents),
	})
}

// GetPendingWithdrawals handles GET /withdrawals/pending
func (h *LedgerHandler) GetPendingWithdrawals(c *gin.Context) {
	limit := parseLimit(c.DefaultQuery("limit", "50"))

	withdrawals, err := h.ledgerUseCase.ListWithdrawals(c.Request.Context(), entity.WithdrawalRequested, limit)
	if err != nil {
		h.logger.Error("Error listing withdrawals", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: "Internal server error",
		})
		return
	}

	out := make([]dto.WithdrawalResponse, 0, len(withdrawals))
	for _, w := range withdrawals {
		out = append(out, dto.NewWithdrawalResponse(w))
	}
	c.JSON(http.StatusOK, out)
}

// parseLimit clamps a listing limit to a sane range
func parseLimit(raw string) int {
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 50
	}
	if limit > 200 {
		return 200
	}
	return limit
}
