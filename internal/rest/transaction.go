package rest

import (
	"context"
	"net/http"
	"strings"
	"time"

	"telcoReco/domain"
	"telcoReco/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type TransactionService interface {
	Purchase(ctx context.Context, userID uint, productID uint64) (domain.Transaction, error)
	History(ctx context.Context, userID uint) ([]domain.Transaction, error)
}

type TransactionHandler struct {
	transactionService TransactionService
	validator          *validator.Validate
	timeout            time.Duration
}

func NewTransactionHandler(transactionService TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		validator:          validator.New(),
		timeout:            10 * time.Second,
	}
}

type PurchaseRequest struct {
	ProductID uint64 `json:"product_id" validate:"required,gt=0"`
}

// Purchase records a product purchase for the logged-in user. The
// purchase also feeds the behavior profile and queues a recommendation
// regeneration in the background.
func (h *TransactionHandler) Purchase(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req PurchaseRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate purchase", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	transaction, err := h.transactionService.Purchase(ctx, userID, req.ProductID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to create purchase", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(transaction))
}

func (h *TransactionHandler) History(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	transactions, err := h.transactionService.History(ctx, userID)
	if err != nil {
		logger.Error("Failed to get transaction history", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(transactions))
}
