package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nexushr/workforce-backend-go/internal/config"
	"github.com/nexushr/workforce-backend-go/internal/domain/approval"
	"github.com/nexushr/workforce-backend-go/internal/domain/attendance"
	"github.com/nexushr/workforce-backend-go/internal/domain/employee"
	"github.com/nexushr/workforce-backend-go/internal/domain/fund"
	"github.com/nexushr/workforce-backend-go/internal/domain/payroll"
	"github.com/nexushr/workforce-backend-go/internal/domain/sequence"
	"github.com/nexushr/workforce-backend-go/internal/pkg/actor"
	"github.com/nexushr/workforce-backend-go/internal/pkg/database"
	"github.com/nexushr/workforce-backend-go/internal/pkg/validator"
	"github.com/nexushr/workforce-backend-go/internal/repository/postgresql"
)

type PayrollServiceImpl struct {
	db           *database.DB
	salaryRepo   payroll.SalaryRepository
	approvalRepo approval.ApprovalRepository
	attRepo      attendance.AttendanceRepository
	employeeRepo employee.EmployeeRepository
	fundsRepo    fund.FundsRepository
	fundTxnRepo  fund.TransactionRepository
	seq          sequence.Generator
	cfg          config.PayrollConfig
}

func NewPayrollService(
	db *database.DB,
	salaryRepo payroll.SalaryRepository,
	approvalRepo approval.ApprovalRepository,
	attRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	fundsRepo fund.FundsRepository,
	fundTxnRepo fund.TransactionRepository,
	seq sequence.Generator,
	cfg config.PayrollConfig,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:           db,
		salaryRepo:   salaryRepo,
		approvalRepo: approvalRepo,
		attRepo:      attRepo,
		employeeRepo: employeeRepo,
		fundsRepo:    fundsRepo,
		fundTxnRepo:  fundTxnRepo,
		seq:          seq,
		cfg:          cfg,
	}
}

// Generate computes and stores payroll for every requested employee in the
// approved month. Each employee runs in its own transaction so one
// failure, such as the funds running dry mid-batch, never rolls back the
// records already posted.
func (s *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GenerateRequest) (payroll.GenerateResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.GenerateResponse{}, err
	}

	act, err := actor.FromContext(ctx)
	if err != nil {
		return payroll.GenerateResponse{}, err
	}

	monthStart, _ := validator.IsValidMonth(req.Month)
	month := int(monthStart.Month())
	year := monthStart.Year()

	appr, err := s.approvalRepo.GetByMonthYear(ctx, month, year)
	if err != nil {
		return payroll.GenerateResponse{}, err
	}
	if appr == nil {
		return payroll.GenerateResponse{}, payroll.ErrApprovalRequired
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return payroll.GenerateResponse{}, fmt.Errorf("list employees: %w", err)
	}

	items := make(map[string]payroll.SalaryItemInput, len(req.Items))
	for _, item := range req.Items {
		items[item.EmployeeCode] = item
	}

	daysInMonth := DaysInMonth(month, year)

	var resp payroll.GenerateResponse
	for _, emp := range employees {
		item, listed := items[emp.EmployeeCode]
		if len(req.Items) > 0 && !listed {
			continue
		}

		tallies, err := s.attRepo.TalliesForEmployee(ctx, emp.ID, monthStart, appr.ApprovedUpToDate)
		if err != nil {
			return resp, fmt.Errorf("tallies for %s: %w", emp.EmployeeCode, err)
		}

		prevBalance, err := s.salaryRepo.PreviousRemaining(ctx, emp.ID, month, year)
		if err != nil {
			return resp, fmt.Errorf("previous balance for %s: %w", emp.EmployeeCode, err)
		}

		in := item.ToSalaryInput(emp.ID, emp.BaseSalary, s.cfg.DefaultPFPercent, s.cfg.DefaultESIPercent)
		breakdown := Compute(in, tallies, daysInMonth, prevBalance, s.cfg.TrainingDailyRate)

		err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
			return s.postOne(txCtx, act, emp, month, year, in, breakdown, prevBalance, req.AutoPay, &resp)
		})
		if err != nil {
			return resp, fmt.Errorf("post salary for %s: %w", emp.EmployeeCode, err)
		}
	}

	if !appr.SalaryGenerated && resp.Saved+resp.Updated > 0 {
		if err := s.approvalRepo.MarkSalaryGenerated(ctx, appr.ID); err != nil {
			return resp, err
		}
	}

	return resp, nil
}

// postOne saves or overwrites one employee's record inside a transaction.
// On re-generation of a funds-paid record the old payment is refunded to
// the balance before the new figures post, so regeneration never double
// pays.
func (s *PayrollServiceImpl) postOne(
	ctx context.Context,
	act actor.Actor,
	emp employee.Employee,
	month, year int,
	in payroll.SalaryInput,
	breakdown payroll.Breakdown,
	prevBalance decimal.Decimal,
	autoPay bool,
	resp *payroll.GenerateResponse,
) error {
	existing, err := s.salaryRepo.GetByEmployeeMonthYear(ctx, emp.ID, month, year)
	if err != nil {
		return err
	}

	if existing != nil && existing.PaymentFromFunds && existing.FundTransactionID != nil {
		funds, err := s.fundsRepo.GetForUpdate(ctx)
		if err != nil {
			return err
		}
		funds.TotalFunds = funds.TotalFunds.Add(existing.PaidAmount)
		funds.TotalPaidAsSalary = funds.TotalPaidAsSalary.Sub(existing.PaidAmount)
		funds.RecomputeProfit()
		funds.UpdatedByName = &act.Name
		if err := s.fundsRepo.Update(ctx, funds); err != nil {
			return err
		}
		if err := s.fundTxnRepo.Delete(ctx, *existing.FundTransactionID); err != nil {
			return err
		}
		existing.PaidAmount = decimal.Zero
		existing.PaymentDate = nil
		existing.PaymentFromFunds = false
		existing.FundTransactionID = nil
		resp.Refunded++
	}

	record := payroll.MonthlySalary{
		ID:              uuid.NewString(),
		EmployeeID:      emp.ID,
		Month:           month,
		Year:            year,
		BaseSalary:      in.BaseSalary,
		PerDaySalary:    breakdown.PerDaySalary,
		TotalPresent:    breakdown.Tallies.Present,
		TotalAbsent:     breakdown.Tallies.Absent,
		TotalHalfDays:   breakdown.Tallies.HalfDays,
		TotalLeaves:     breakdown.Tallies.Leaves,
		TotalHolidays:   breakdown.Tallies.Holidays,
		TotalLWP:        breakdown.Tallies.LWP,
		TotalTraining:   breakdown.Tallies.Training,
		Bonus:           in.Bonus,
		TravelAllowance: in.TravelAllowance,
		PFPercent:       in.PFPercent,
		PFAmount:        breakdown.PFAmount,
		ESIPercent:      in.ESIPercent,
		ESIAmount:       breakdown.ESIAmount,
		GrossSalary:     breakdown.GrossSalary,
		TotalDeductions: breakdown.TotalDeductions,
		NetPayable:      breakdown.NetPayable,
		PaidAmount:      in.PaidAmount,
		PaymentDate:     in.PaymentDate,
		PreviousBalance: prevBalance,
		IsSaved:         true,
	}
	if existing != nil {
		record.ID = existing.ID
		record.SalaryCode = existing.SalaryCode
	} else {
		code, err := s.seq.Next(ctx, "SAL", time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC))
		if err != nil {
			return err
		}
		record.SalaryCode = code
	}

	if autoPay {
		if err := s.payFromFunds(ctx, act, &record); err != nil {
			return err
		}
		if record.PaymentFromFunds {
			resp.Paid++
		} else {
			resp.InsufficientFundsFor = append(resp.InsufficientFundsFor, emp.FullName)
		}
	}
	record.RemainingBalance = record.NetPayable.Sub(record.PaidAmount)

	if existing != nil {
		if err := s.salaryRepo.Update(ctx, record); err != nil {
			return err
		}
		resp.Updated++
		return nil
	}
	if _, err := s.salaryRepo.Create(ctx, record); err != nil {
		return err
	}
	resp.Saved++
	return nil
}

// payFromFunds settles the full net payable from the company balance.
// When the balance cannot cover it the record saves unpaid; the caller
// reports the shortfall instead of failing the batch.
func (s *PayrollServiceImpl) payFromFunds(ctx context.Context, act actor.Actor, record *payroll.MonthlySalary) error {
	funds, err := s.fundsRepo.GetForUpdate(ctx)
	if err != nil {
		return err
	}
	if funds.TotalFunds.LessThan(record.NetPayable) {
		return nil
	}

	now := time.Now()
	code, err := s.seq.Next(ctx, "TXN", now)
	if err != nil {
		return err
	}

	funds.TotalFunds = funds.TotalFunds.Sub(record.NetPayable)
	funds.TotalPaidAsSalary = funds.TotalPaidAsSalary.Add(record.NetPayable)
	funds.RecomputeProfit()
	funds.UpdatedByName = &act.Name
	if err := s.fundsRepo.Update(ctx, funds); err != nil {
		return err
	}

	txn, err := s.fundTxnRepo.Create(ctx, fund.Transaction{
		ID:              uuid.NewString(),
		TransactionCode: code,
		Type:            fund.TypeSalaryPayment,
		Amount:          record.NetPayable,
		IsCredit:        false,
		BalanceAfter:    funds.TotalFunds,
		SalaryID:        &record.ID,
		Description:     fmt.Sprintf("salary payment %d/%d", record.Month, record.Year),
		CreatedByName:   act.Name,
		CreatedByRole:   act.Role,
		TransactionDate: now,
	})
	if err != nil {
		return err
	}

	record.PaidAmount = record.NetPayable
	record.PaymentDate = &now
	record.PaymentFromFunds = true
	record.FundTransactionID = &txn.ID
	return nil
}

func (s *PayrollServiceImpl) History(ctx context.Context) ([]payroll.SalaryResponse, error) {
	records, err := s.salaryRepo.ListSaved(ctx)
	if err != nil {
		return nil, fmt.Errorf("list salary records: %w", err)
	}
	return mapSalariesToResponses(records), nil
}

func (s *PayrollServiceImpl) SlipsByEmployee(ctx context.Context, employeeID string) ([]payroll.SalaryResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	records, err := s.salaryRepo.ListSavedByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list salary slips: %w", err)
	}
	return mapSalariesToResponses(records), nil
}

func (s *PayrollServiceImpl) Slip(ctx context.Context, id string) (payroll.SalaryResponse, error) {
	record, err := s.salaryRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.SalaryResponse{}, err
	}
	if !record.IsSaved {
		return payroll.SalaryResponse{}, payroll.ErrSalaryNotSaved
	}
	return mapSalaryToResponse(record), nil
}

func mapSalariesToResponses(records []payroll.MonthlySalary) []payroll.SalaryResponse {
	responses := make([]payroll.SalaryResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, mapSalaryToResponse(record))
	}
	return responses
}

func mapSalaryToResponse(record payroll.MonthlySalary) payroll.SalaryResponse {
	resp := payroll.SalaryResponse{
		ID:               record.ID,
		SalaryCode:       record.SalaryCode,
		EmployeeID:       record.EmployeeID,
		EmployeeCode:     record.EmployeeCode,
		EmployeeName:     record.EmployeeName,
		Month:            record.Month,
		Year:             record.Year,
		BaseSalary:       record.BaseSalary.StringFixed(2),
		PerDaySalary:     record.PerDaySalary.StringFixed(2),
		TotalPresent:     record.TotalPresent,
		TotalAbsent:      record.TotalAbsent,
		TotalHalfDays:    record.TotalHalfDays,
		TotalLeaves:      record.TotalLeaves,
		TotalHolidays:    record.TotalHolidays,
		TotalLWP:         record.TotalLWP,
		TotalTraining:    record.TotalTraining,
		Bonus:            record.Bonus.StringFixed(2),
		TravelAllowance:  record.TravelAllowance.StringFixed(2),
		PFPercent:        record.PFPercent.String(),
		PFAmount:         record.PFAmount.StringFixed(2),
		ESIPercent:       record.ESIPercent.String(),
		ESIAmount:        record.ESIAmount.StringFixed(2),
		GrossSalary:      record.GrossSalary.StringFixed(2),
		TotalDeductions:  record.TotalDeductions.StringFixed(2),
		NetPayable:       record.NetPayable.StringFixed(2),
		PaidAmount:       record.PaidAmount.StringFixed(2),
		PreviousBalance:  record.PreviousBalance.StringFixed(2),
		RemainingBalance: record.RemainingBalance.StringFixed(2),
		PaymentFromFunds: record.PaymentFromFunds,
	}
	if record.PaymentDate != nil {
		formatted := record.PaymentDate.Format("2006-01-02")
		resp.PaymentDate = &formatted
	}
	return resp
}
