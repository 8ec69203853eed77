package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nexushr/workforce-backend-go/internal/domain/leave"
	"github.com/nexushr/workforce-backend-go/internal/handler/http/response"
	"github.com/nexushr/workforce-backend-go/internal/pkg/actor"
)

type LeaveHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	Balance(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{
		leaveService: leaveService,
	}
}

// Apply implements LeaveHandler.
func (h *leaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	act, err := actor.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format")
		return
	}
	req.EmployeeID = act.EmployeeID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.leaveService.Apply(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave application submitted", result)
}

// Decide implements LeaveHandler.
func (h *leaveHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	var req leave.DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format")
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.leaveService.Decide(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave application decided", result)
}

// Balance implements LeaveHandler.
func (h *leaveHandlerImpl) Balance(w http.ResponseWriter, r *http.Request) {
	act, err := actor.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	employeeID := act.EmployeeID
	if v := chi.URLParam(r, "employeeID"); v != "" {
		employeeID = v
	}

	result, err := h.leaveService.Balance(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListMine implements LeaveHandler.
func (h *leaveHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	act, err := actor.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.leaveService.ListByEmployee(r.Context(), act.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListPending implements LeaveHandler.
func (h *leaveHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	result, err := h.leaveService.ListPending(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
