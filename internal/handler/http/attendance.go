package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nexushr/workforce-backend-go/internal/domain/attendance"
	"github.com/nexushr/workforce-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	ChangeStatus(w http.ResponseWriter, r *http.Request)
	ChangeLogs(w http.ResponseWriter, r *http.Request)
	Sweep(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter attendance.ListFilter

	query := r.URL.Query()
	if v := query.Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := query.Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := query.Get("end_date"); v != "" {
		filter.EndDate = &v
	}
	if v := query.Get("status"); v != "" {
		filter.Status = &v
	}

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ChangeStatus implements AttendanceHandler.
func (h *attendanceHandlerImpl) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	var req attendance.ChangeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format")
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.ChangeStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance status updated", result)
}

// ChangeLogs implements AttendanceHandler.
func (h *attendanceHandlerImpl) ChangeLogs(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.ChangeLogs(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Sweep implements AttendanceHandler.
func (h *attendanceHandlerImpl) Sweep(w http.ResponseWriter, r *http.Request) {
	marked, err := h.attendanceService.SweepAbsences(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Absent sweep completed", attendance.SweepResponse{MarkedAbsent: marked})
}
