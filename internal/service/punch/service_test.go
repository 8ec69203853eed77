package punch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexushr/workforce-backend-go/internal/domain/employee"
	"github.com/nexushr/workforce-backend-go/internal/domain/geofence"
	"github.com/nexushr/workforce-backend-go/internal/domain/punch"
)

type stubEmployeeRepo struct {
	emp employee.Employee
}

func (r *stubEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return r.emp, nil
}

func (r *stubEmployeeRepo) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	return r.emp, nil
}

func (r *stubEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return []employee.Employee{r.emp}, nil
}

func (r *stubEmployeeRepo) MarkTrainingCompleted(ctx context.Context, id string) error {
	return nil
}

type stubPunchRepo struct {
	punches []punch.Punch
}

func (r *stubPunchRepo) Create(ctx context.Context, p punch.Punch) (punch.Punch, error) {
	return p, nil
}

func (r *stubPunchRepo) ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]punch.Punch, error) {
	return r.punches, nil
}

func (r *stubPunchRepo) HasPunchOn(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	return len(r.punches) > 0, nil
}

type stubValidator struct {
	result geofence.Result
}

func (v *stubValidator) Validate(ctx context.Context, lat, lon float64) (geofence.Result, error) {
	return v.result, nil
}

func submitFixture(punches []punch.Punch, fence geofence.Result) *PunchServiceImpl {
	return &PunchServiceImpl{
		punchRepo:    &stubPunchRepo{punches: punches},
		employeeRepo: &stubEmployeeRepo{emp: employee.Employee{ID: "emp-1", IsActive: true}},
		validator:    &stubValidator{result: fence},
	}
}

func TestSubmit_SequenceErrorWinsOverFenceMiss(t *testing.T) {
	t.Parallel()
	day := punchesOf(punch.TypeCheckIn)
	s := submitFixture(day, geofence.Result{WithinFence: false, DistanceMeters: 312.5})

	_, err := s.Submit(context.Background(), punch.SubmitPunchRequest{
		EmployeeID: "emp-1",
		Type:       string(punch.TypeCheckIn),
	})

	// A duplicate check-in from outside the fence reports the state
	// machine error, not the distance.
	assert.ErrorIs(t, err, punch.ErrAlreadyCheckedIn)
}

func TestSubmit_CheckOutWithoutCheckInRejectedBeforeFence(t *testing.T) {
	t.Parallel()
	s := submitFixture(nil, geofence.Result{WithinFence: false, DistanceMeters: 312.5})

	_, err := s.Submit(context.Background(), punch.SubmitPunchRequest{
		EmployeeID: "emp-1",
		Type:       string(punch.TypeCheckOut),
	})

	assert.ErrorIs(t, err, punch.ErrNotCheckedIn)
}

func TestSubmit_OutsideFenceReportedWithDistance(t *testing.T) {
	t.Parallel()
	s := submitFixture(nil, geofence.Result{WithinFence: false, DistanceMeters: 123.45})

	resp, err := s.Submit(context.Background(), punch.SubmitPunchRequest{
		EmployeeID: "emp-1",
		Type:       string(punch.TypeCheckIn),
	})
	require.NoError(t, err)

	assert.False(t, resp.Accepted)
	assert.Equal(t, punch.ErrOutsideAllowedRadius.Error(), resp.Reason)
	assert.Equal(t, 123.45, resp.DistanceMeters)
	assert.Nil(t, resp.Punch)
}

func TestSubmit_InactiveEmployeeRejected(t *testing.T) {
	t.Parallel()
	s := &PunchServiceImpl{
		punchRepo:    &stubPunchRepo{},
		employeeRepo: &stubEmployeeRepo{emp: employee.Employee{ID: "emp-1", IsActive: false}},
		validator:    &stubValidator{result: geofence.Result{WithinFence: true}},
	}

	_, err := s.Submit(context.Background(), punch.SubmitPunchRequest{
		EmployeeID: "emp-1",
		Type:       string(punch.TypeCheckIn),
	})

	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}
