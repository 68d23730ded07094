package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"retail_pos/internal/middleware"
	"retail_pos/internal/models"
	"retail_pos/internal/repository"
	"retail_pos/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CustomerHandler struct {
	ledgerService services.LedgerService
}

func NewCustomerHandler(ledgerService services.LedgerService) *CustomerHandler {
	return &CustomerHandler{ledgerService: ledgerService}
}

type customerRequest struct {
	Name        string          `json:"name" binding:"required"`
	Phone       string          `json:"phone" binding:"required"`
	Email       string          `json:"email"`
	Address     string          `json:"address"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
}

type transactionRequest struct {
	CustomerID uint                   `json:"customer_id" binding:"required"`
	Type       models.TransactionType `json:"type" binding:"required"`
	Amount     decimal.Decimal        `json:"amount" binding:"required"`
	Note       string                 `json:"note"`
	OrderID    *uint                  `json:"order_id"`
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	customer := &models.Customer{
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		CreditLimit: req.CreditLimit,
	}
	if err := h.ledgerService.CreateCustomer(customer); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to create customer")
		return
	}
	respondOK(c, http.StatusCreated, customer)
}

func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid customer id")
		return
	}

	customer, err := h.ledgerService.GetCustomer(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "customer not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to fetch customer")
		return
	}
	respondOK(c, http.StatusOK, customer)
}

func (h *CustomerHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	customers, total, err := h.ledgerService.GetCustomersPaginated(page, limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to fetch customers")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"customers": customers, "total": total, "page": page, "limit": limit})
}

// Ledger lists the customer's transactions, newest first.
func (h *CustomerHandler) Ledger(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid customer id")
		return
	}

	txns, err := h.ledgerService.GetLedger(uint(id))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to fetch ledger")
		return
	}
	respondOK(c, http.StatusOK, txns)
}

func (h *CustomerHandler) CreateTransaction(c *gin.Context) {
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	txn, err := h.ledgerService.CreateTransaction(req.CustomerID, req.Type, req.Amount,
		req.Note, req.OrderID, middleware.CurrentUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidTxnType),
			errors.Is(err, services.ErrAmountNotPositive),
			errors.Is(err, repository.ErrCreditLimitExceeded):
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			respondError(c, http.StatusNotFound, "customer not found")
		default:
			respondError(c, http.StatusInternalServerError, "failed to create transaction")
		}
		return
	}
	respondOK(c, http.StatusCreated, txn)
}

// ReverseTransaction compensates an entry exactly once; a second
// attempt is rejected.
func (h *CustomerHandler) ReverseTransaction(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid transaction id")
		return
	}

	reversal, err := h.ledgerService.ReverseTransaction(uint(id), middleware.CurrentUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyReversed),
			errors.Is(err, repository.ErrReversalNotAllowed):
			respondError(c, http.StatusConflict, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			respondError(c, http.StatusNotFound, "transaction not found")
		default:
			respondError(c, http.StatusInternalServerError, "failed to reverse transaction")
		}
		return
	}
	respondOK(c, http.StatusCreated, reversal)
}

func (h *CustomerHandler) ReconcileBalance(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid customer id")
		return
	}

	customer, err := h.ledgerService.ReconcileBalance(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "customer not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to reconcile balance")
		return
	}
	respondOK(c, http.StatusOK, customer)
}
