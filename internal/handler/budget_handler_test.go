package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tripwise/internal/budgetexport"
	"tripwise/internal/domain"
	"tripwise/internal/handler"
	"tripwise/internal/service"
	"tripwise/mocks"
)

func TestBudgetHandler_Get(t *testing.T) {
	budgets := new(mocks.MockBudgetService)
	h := handler.NewBudgetHandler(budgets)
	budgets.On("GetEstimate", mock.Anything, "user-1", "tpl-kyoto").
		Return(&domain.BudgetEstimate{TemplateID: "tpl-kyoto", Record: []byte(`{"currency":"EUR"}`), Model: "gpt-4o-mini"}, nil)

	c, w := newContext(http.MethodGet, "/api/v1/templates/tpl-kyoto/budget", nil, "user-1")
	c.Params = gin.Params{{Key: "id", Value: "tpl-kyoto"}}
	h.Get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"record":{"currency":"EUR"}`)
	assert.Contains(t, w.Body.String(), `"model":"gpt-4o-mini"`)
}

func TestBudgetHandler_Get_NotFound(t *testing.T) {
	budgets := new(mocks.MockBudgetService)
	h := handler.NewBudgetHandler(budgets)
	budgets.On("GetEstimate", mock.Anything, "user-1", "tpl-x").
		Return(nil, domain.NewCallError(domain.CodeNotFound, "budget estimate not found", nil))

	c, w := newContext(http.MethodGet, "/", nil, "user-1")
	c.Params = gin.Params{{Key: "id", Value: "tpl-x"}}
	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBudgetHandler_Export(t *testing.T) {
	budgets := new(mocks.MockBudgetService)
	h := handler.NewBudgetHandler(budgets)
	budgets.On("ExportEstimate", mock.Anything, "user-1", "tpl-kyoto", budgetexport.FormatCSV).Return(&service.ExportFile{
		Filename:    "Kyoto_in_spring_budget_20240401.csv",
		ContentType: budgetexport.FormatCSV.ContentType(),
		Data:        []byte("Day,Date\n"),
	}, nil)

	c, w := newContext(http.MethodGet, "/api/v1/templates/tpl-kyoto/budget/export?format=csv", nil, "user-1")
	c.Params = gin.Params{{Key: "id", Value: "tpl-kyoto"}}
	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Kyoto_in_spring_budget_20240401.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "Day,Date\n", w.Body.String())
}

func TestBudgetHandler_Export_DefaultsToXLSX(t *testing.T) {
	budgets := new(mocks.MockBudgetService)
	h := handler.NewBudgetHandler(budgets)
	budgets.On("ExportEstimate", mock.Anything, "user-1", "tpl-kyoto", budgetexport.FormatXLSX).Return(&service.ExportFile{
		Filename: "b.xlsx", ContentType: budgetexport.FormatXLSX.ContentType(), Data: []byte("PK"),
	}, nil)

	c, w := newContext(http.MethodGet, "/api/v1/templates/tpl-kyoto/budget/export", nil, "user-1")
	c.Params = gin.Params{{Key: "id", Value: "tpl-kyoto"}}
	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	budgets.AssertExpectations(t)
}

func TestBudgetHandler_Export_BadFormat(t *testing.T) {
	budgets := new(mocks.MockBudgetService)
	h := handler.NewBudgetHandler(budgets)

	c, w := newContext(http.MethodGet, "/api/v1/templates/tpl-kyoto/budget/export?format=pdf", nil, "user-1")
	c.Params = gin.Params{{Key: "id", Value: "tpl-kyoto"}}
	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	budgets.AssertNotCalled(t, "ExportEstimate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
