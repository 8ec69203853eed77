package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nexushr/workforce-backend-go/internal/domain/payroll"
	"github.com/nexushr/workforce-backend-go/internal/handler/http/response"
	"github.com/nexushr/workforce-backend-go/internal/pkg/actor"
)

type PayrollHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	MySlips(w http.ResponseWriter, r *http.Request)
	Slip(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

// Generate implements PayrollHandler.
func (h *payrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req payroll.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format")
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll generated", result)
}

// History implements PayrollHandler.
func (h *payrollHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.History(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MySlips implements PayrollHandler.
func (h *payrollHandlerImpl) MySlips(w http.ResponseWriter, r *http.Request) {
	act, err := actor.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.SlipsByEmployee(r.Context(), act.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Slip implements PayrollHandler.
func (h *payrollHandlerImpl) Slip(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.Slip(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
