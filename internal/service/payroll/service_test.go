package payroll

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexushr/workforce-backend-go/internal/domain/attendance"
	"github.com/nexushr/workforce-backend-go/internal/domain/employee"
	"github.com/nexushr/workforce-backend-go/internal/domain/fund"
	"github.com/nexushr/workforce-backend-go/internal/domain/payroll"
	"github.com/nexushr/workforce-backend-go/internal/pkg/actor"
)

type stubSalaryRepo struct {
	existing *payroll.MonthlySalary
	created  []payroll.MonthlySalary
	updated  []payroll.MonthlySalary
}

func (r *stubSalaryRepo) GetByEmployeeMonthYear(ctx context.Context, employeeID string, month, year int) (*payroll.MonthlySalary, error) {
	return r.existing, nil
}

func (r *stubSalaryRepo) GetByID(ctx context.Context, id string) (payroll.MonthlySalary, error) {
	return payroll.MonthlySalary{}, payroll.ErrSalaryNotFound
}

func (r *stubSalaryRepo) Create(ctx context.Context, s payroll.MonthlySalary) (payroll.MonthlySalary, error) {
	r.created = append(r.created, s)
	return s, nil
}

func (r *stubSalaryRepo) Update(ctx context.Context, s payroll.MonthlySalary) error {
	r.updated = append(r.updated, s)
	return nil
}

func (r *stubSalaryRepo) PreviousRemaining(ctx context.Context, employeeID string, month, year int) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (r *stubSalaryRepo) ListSaved(ctx context.Context) ([]payroll.MonthlySalary, error) {
	return nil, nil
}

func (r *stubSalaryRepo) ListSavedByEmployee(ctx context.Context, employeeID string) ([]payroll.MonthlySalary, error) {
	return nil, nil
}

type stubFundsRepo struct {
	funds fund.CompanyFunds
}

func (r *stubFundsRepo) GetForUpdate(ctx context.Context) (fund.CompanyFunds, error) {
	return r.funds, nil
}

func (r *stubFundsRepo) Get(ctx context.Context) (*fund.CompanyFunds, error) {
	f := r.funds
	return &f, nil
}

func (r *stubFundsRepo) Update(ctx context.Context, f fund.CompanyFunds) error {
	r.funds = f
	return nil
}

type stubTxnRepo struct {
	rows []fund.Transaction
}

func (r *stubTxnRepo) Create(ctx context.Context, t fund.Transaction) (fund.Transaction, error) {
	r.rows = append(r.rows, t)
	return t, nil
}

func (r *stubTxnRepo) GetByID(ctx context.Context, id string) (fund.Transaction, error) {
	for _, t := range r.rows {
		if t.ID == id {
			return t, nil
		}
	}
	return fund.Transaction{}, fund.ErrTransactionNotFound
}

func (r *stubTxnRepo) Delete(ctx context.Context, id string) error {
	kept := r.rows[:0]
	for _, t := range r.rows {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	r.rows = kept
	return nil
}

func (r *stubTxnRepo) List(ctx context.Context, filter fund.TransactionFilter) ([]fund.Transaction, error) {
	return r.rows, nil
}

func (r *stubTxnRepo) ListRecent(ctx context.Context, n int) ([]fund.Transaction, error) {
	return r.rows, nil
}

func (r *stubTxnRepo) SumAmount(ctx context.Context, txType fund.TransactionType, isCredit bool, from, to time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type stubSequence struct {
	n int
}

func (s *stubSequence) Next(ctx context.Context, prefix string, date time.Time) (string, error) {
	s.n++
	return fmt.Sprintf("%s-%s-%04d", prefix, date.Format("20060102"), s.n), nil
}

func payrollFixture(salaryRepo *stubSalaryRepo, fundsRepo *stubFundsRepo, txnRepo *stubTxnRepo) *PayrollServiceImpl {
	return &PayrollServiceImpl{
		salaryRepo:  salaryRepo,
		fundsRepo:   fundsRepo,
		fundTxnRepo: txnRepo,
		seq:         &stubSequence{},
	}
}

func fullMonthBreakdown(t *testing.T, base string) (payroll.SalaryInput, payroll.Breakdown) {
	t.Helper()
	in := payroll.SalaryInput{
		EmployeeID: "emp-1",
		BaseSalary: decimal.RequireFromString(base),
		PFPercent:  decimal.RequireFromString("12"),
		ESIPercent: decimal.RequireFromString("0.75"),
	}
	tallies := attendance.Tallies{Present: 31}
	return in, Compute(in, tallies, 31, decimal.Zero, decimal.RequireFromString("100"))
}

func TestPostOne_AutoPayCountsPaidRecord(t *testing.T) {
	t.Parallel()
	salaryRepo := &stubSalaryRepo{}
	fundsRepo := &stubFundsRepo{funds: fund.CompanyFunds{ID: 1, TotalFunds: decimal.RequireFromString("100000")}}
	txnRepo := &stubTxnRepo{}
	s := payrollFixture(salaryRepo, fundsRepo, txnRepo)

	emp := employee.Employee{ID: "emp-1", EmployeeCode: "EMP-001", FullName: "Asha Verma"}
	in, breakdown := fullMonthBreakdown(t, "31000")

	var resp payroll.GenerateResponse
	err := s.postOne(context.Background(), actor.Actor{Name: "HR", Role: "hr"}, emp, 8, 2026, in, breakdown, decimal.Zero, true, &resp)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Saved)
	assert.Equal(t, 1, resp.Paid)
	assert.Empty(t, resp.InsufficientFundsFor)

	require.Len(t, salaryRepo.created, 1)
	record := salaryRepo.created[0]
	assert.True(t, record.PaymentFromFunds)
	assert.True(t, record.PaidAmount.Equal(breakdown.NetPayable))
	assert.True(t, record.RemainingBalance.IsZero())
	assert.True(t, fundsRepo.funds.TotalFunds.Equal(decimal.RequireFromString("100000").Sub(breakdown.NetPayable)))
	require.Len(t, txnRepo.rows, 1)
	assert.Equal(t, fund.TypeSalaryPayment, txnRepo.rows[0].Type)
}

func TestPostOne_InsufficientFundsSavesUnpaid(t *testing.T) {
	t.Parallel()
	salaryRepo := &stubSalaryRepo{}
	fundsRepo := &stubFundsRepo{funds: fund.CompanyFunds{ID: 1, TotalFunds: decimal.RequireFromString("10")}}
	txnRepo := &stubTxnRepo{}
	s := payrollFixture(salaryRepo, fundsRepo, txnRepo)

	emp := employee.Employee{ID: "emp-1", EmployeeCode: "EMP-001", FullName: "Asha Verma"}
	in, breakdown := fullMonthBreakdown(t, "31000")

	var resp payroll.GenerateResponse
	err := s.postOne(context.Background(), actor.Actor{Name: "HR", Role: "hr"}, emp, 8, 2026, in, breakdown, decimal.Zero, true, &resp)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Saved)
	assert.Equal(t, 0, resp.Paid)
	assert.Equal(t, []string{"Asha Verma"}, resp.InsufficientFundsFor)

	require.Len(t, salaryRepo.created, 1)
	record := salaryRepo.created[0]
	assert.False(t, record.PaymentFromFunds)
	assert.True(t, record.PaidAmount.IsZero())
	assert.True(t, record.RemainingBalance.Equal(breakdown.NetPayable))
	assert.Empty(t, txnRepo.rows)
}

func TestPostOne_WithoutAutoPayNothingPaid(t *testing.T) {
	t.Parallel()
	salaryRepo := &stubSalaryRepo{}
	fundsRepo := &stubFundsRepo{funds: fund.CompanyFunds{ID: 1, TotalFunds: decimal.RequireFromString("100000")}}
	txnRepo := &stubTxnRepo{}
	s := payrollFixture(salaryRepo, fundsRepo, txnRepo)

	emp := employee.Employee{ID: "emp-1", EmployeeCode: "EMP-001", FullName: "Asha Verma"}
	in, breakdown := fullMonthBreakdown(t, "31000")

	var resp payroll.GenerateResponse
	err := s.postOne(context.Background(), actor.Actor{Name: "HR", Role: "hr"}, emp, 8, 2026, in, breakdown, decimal.Zero, false, &resp)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Saved)
	assert.Equal(t, 0, resp.Paid)
	assert.Empty(t, txnRepo.rows)
	assert.True(t, fundsRepo.funds.TotalFunds.Equal(decimal.RequireFromString("100000")))
}

func TestPostOne_RegenerationRefundsThenPaysAgain(t *testing.T) {
	t.Parallel()
	oldTxnID := "txn-old"
	paid := decimal.RequireFromString("27000")
	paidAt := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	salaryRepo := &stubSalaryRepo{existing: &payroll.MonthlySalary{
		ID:                "sal-1",
		SalaryCode:        "SAL-20260801-0001",
		EmployeeID:        "emp-1",
		Month:             8,
		Year:              2026,
		PaidAmount:        paid,
		PaymentDate:       &paidAt,
		PaymentFromFunds:  true,
		FundTransactionID: &oldTxnID,
		IsSaved:           true,
	}}
	fundsRepo := &stubFundsRepo{funds: fund.CompanyFunds{
		ID:                1,
		TotalFunds:        decimal.RequireFromString("73000"),
		TotalPaidAsSalary: paid,
	}}
	txnRepo := &stubTxnRepo{rows: []fund.Transaction{{ID: oldTxnID, Type: fund.TypeSalaryPayment, Amount: paid}}}
	s := payrollFixture(salaryRepo, fundsRepo, txnRepo)

	emp := employee.Employee{ID: "emp-1", EmployeeCode: "EMP-001", FullName: "Asha Verma"}
	in, breakdown := fullMonthBreakdown(t, "31000")

	var resp payroll.GenerateResponse
	err := s.postOne(context.Background(), actor.Actor{Name: "HR", Role: "hr"}, emp, 8, 2026, in, breakdown, decimal.Zero, true, &resp)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Refunded)
	assert.Equal(t, 1, resp.Updated)
	assert.Equal(t, 1, resp.Paid)
	assert.Equal(t, 0, resp.Saved)

	// The old payment row is gone and exactly one fresh payment replaces it.
	require.Len(t, txnRepo.rows, 1)
	assert.NotEqual(t, oldTxnID, txnRepo.rows[0].ID)
	assert.True(t, txnRepo.rows[0].Amount.Equal(breakdown.NetPayable))

	// Cumulative salary paid reflects only the new payment, never both.
	assert.True(t, fundsRepo.funds.TotalPaidAsSalary.Equal(breakdown.NetPayable))

	require.Len(t, salaryRepo.updated, 1)
	record := salaryRepo.updated[0]
	assert.Equal(t, "sal-1", record.ID)
	assert.Equal(t, "SAL-20260801-0001", record.SalaryCode)
	assert.True(t, record.PaymentFromFunds)
	assert.True(t, record.PaidAmount.Equal(breakdown.NetPayable))
}
