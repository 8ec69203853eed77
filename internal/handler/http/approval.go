package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nexushr/workforce-backend-go/internal/domain/approval"
	"github.com/nexushr/workforce-backend-go/internal/handler/http/response"
)

type ApprovalHandler interface {
	Approve(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type approvalHandlerImpl struct {
	approvalService approval.ApprovalService
}

func NewApprovalHandler(approvalService approval.ApprovalService) ApprovalHandler {
	return &approvalHandlerImpl{
		approvalService: approvalService,
	}
}

// Approve implements ApprovalHandler.
func (h *approvalHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	var req approval.ApproveMonthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format")
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.approvalService.Approve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Month approved", result)
}

// Get implements ApprovalHandler.
func (h *approvalHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		response.BadRequest(w, "month must be a number")
		return
	}
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		response.BadRequest(w, "year must be a number")
		return
	}

	result, err := h.approvalService.Get(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
