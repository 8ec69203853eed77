package http

import (
	"encoding/json"
	"net/http"

	"github.com/nexushr/workforce-backend-go/internal/domain/punch"
	"github.com/nexushr/workforce-backend-go/internal/handler/http/response"
	"github.com/nexushr/workforce-backend-go/internal/pkg/actor"
)

type PunchHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	TodayState(w http.ResponseWriter, r *http.Request)
}

type punchHandlerImpl struct {
	punchService punch.PunchService
}

func NewPunchHandler(punchService punch.PunchService) PunchHandler {
	return &punchHandlerImpl{
		punchService: punchService,
	}
}

// Submit implements PunchHandler.
func (h *punchHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	act, err := actor.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req punch.SubmitPunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format")
		return
	}
	req.EmployeeID = act.EmployeeID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.punchService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if !result.Accepted {
		// Outside the fence: reported with the measured distance, not an error
		response.SuccessWithMessage(w, result.Reason, result)
		return
	}

	response.Created(w, "Punch recorded", result)
}

// TodayState implements PunchHandler.
func (h *punchHandlerImpl) TodayState(w http.ResponseWriter, r *http.Request) {
	act, err := actor.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.punchService.TodayState(r.Context(), act.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
