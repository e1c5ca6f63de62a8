package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripwise/internal/budgetexport"
	"tripwise/internal/domain"
	"tripwise/internal/service"
)

// BudgetHandler serves persisted budget estimates.
type BudgetHandler struct {
	budgetService service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// Get handles GET /api/v1/templates/:id/budget
func (h *BudgetHandler) Get(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	est, err := h.budgetService.GetEstimate(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, est)
}

// Export handles GET /api/v1/templates/:id/budget/export?format=xlsx|csv
func (h *BudgetHandler) Export(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	format, err := budgetexport.ParseFormat(c.Query("format"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, domain.CodeInvalidArgument, "format must be xlsx or csv")
		return
	}

	file, err := h.budgetService.ExportEstimate(c.Request.Context(), caller, c.Param("id"), format)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
