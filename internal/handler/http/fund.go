package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nexushr/workforce-backend-go/internal/domain/fund"
	"github.com/nexushr/workforce-backend-go/internal/handler/http/response"
)

type FundHandler interface {
	PostTransaction(w http.ResponseWriter, r *http.Request)
	ListTransactions(w http.ResponseWriter, r *http.Request)
	AddExpense(w http.ResponseWriter, r *http.Request)
	ListExpenses(w http.ResponseWriter, r *http.Request)
	DeleteExpense(w http.ResponseWriter, r *http.Request)
	RecordClientPayment(w http.ResponseWriter, r *http.Request)
	PaySalary(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
}

type fundHandlerImpl struct {
	fundService fund.FundService
}

func NewFundHandler(fundService fund.FundService) FundHandler {
	return &fundHandlerImpl{
		fundService: fundService,
	}
}

// PostTransaction implements FundHandler.
func (h *fundHandlerImpl) PostTransaction(w http.ResponseWriter, r *http.Request) {
	var req fund.PostTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format")
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.fundService.PostTransaction(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Transaction recorded", result)
}

// ListTransactions implements FundHandler.
func (h *fundHandlerImpl) ListTransactions(w http.ResponseWriter, r *http.Request) {
	var filter fund.TransactionFilter

	query := r.URL.Query()
	if v := query.Get("type"); v != "" {
		filter.Type = &v
	}
	if v := query.Get("date_from"); v != "" {
		filter.DateFrom = &v
	}
	if v := query.Get("date_to"); v != "" {
		filter.DateTo = &v
	}

	result, err := h.fundService.ListTransactions(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// AddExpense implements FundHandler.
func (h *fundHandlerImpl) AddExpense(w http.ResponseWriter, r *http.Request) {
	var req fund.AddExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format")
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.fundService.AddExpense(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Expense recorded", result)
}

// ListExpenses implements FundHandler.
func (h *fundHandlerImpl) ListExpenses(w http.ResponseWriter, r *http.Request) {
	result, err := h.fundService.ListExpenses(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DeleteExpense implements FundHandler.
func (h *fundHandlerImpl) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := h.fundService.DeleteExpense(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Expense deleted and funds restored", nil)
}

// RecordClientPayment implements FundHandler.
func (h *fundHandlerImpl) RecordClientPayment(w http.ResponseWriter, r *http.Request) {
	var req fund.ClientPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format")
		return
	}
	req.ProjectID = chi.URLParam(r, "projectID")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.fundService.RecordClientPayment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Client payment recorded", result)
}

// PaySalary implements FundHandler.
func (h *fundHandlerImpl) PaySalary(w http.ResponseWriter, r *http.Request) {
	var req fund.PaySalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format")
		return
	}
	req.SalaryID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.fundService.PaySalary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary payment recorded", result)
}

// Summary implements FundHandler.
func (h *fundHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	result, err := h.fundService.Summary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
