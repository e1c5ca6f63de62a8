package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripwise/internal/domain"
	"tripwise/internal/service"
)

// FunctionsHandler serves the AI-backed callable endpoints.
type FunctionsHandler struct {
	receiptService service.ReceiptService
	budgetService  service.BudgetService
}

// NewFunctionsHandler creates a new FunctionsHandler.
func NewFunctionsHandler(receiptService service.ReceiptService, budgetService service.BudgetService) *FunctionsHandler {
	return &FunctionsHandler{receiptService: receiptService, budgetService: budgetService}
}

// ParseReceipt handles POST /api/v1/functions/parseReceiptWithAI
func (h *FunctionsHandler) ParseReceipt(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	var req struct {
		Base64Image string `json:"base64Image"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, domain.CodeInvalidArgument, "base64Image must be a string")
		return
	}

	receipt, err := h.receiptService.ParseReceipt(c.Request.Context(), caller, req.Base64Image)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, receipt)
}

// EstimateBudget handles POST /api/v1/functions/estimateBudget
func (h *FunctionsHandler) EstimateBudget(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	var req struct {
		TemplateData *service.TemplateData      `json:"templateData"`
		Preferences  *service.BudgetPreferences `json:"preferences"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, domain.CodeInvalidArgument, "invalid request body")
		return
	}

	est, err := h.budgetService.EstimateBudget(c.Request.Context(), &service.EstimateBudgetInput{
		CallerID:     caller,
		TemplateData: req.TemplateData,
		Preferences:  req.Preferences,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, est.Record)
}
