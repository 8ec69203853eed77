package fund

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nexushr/workforce-backend-go/internal/domain/fund"
	"github.com/nexushr/workforce-backend-go/internal/domain/payroll"
	"github.com/nexushr/workforce-backend-go/internal/domain/sequence"
	"github.com/nexushr/workforce-backend-go/internal/pkg/actor"
	"github.com/nexushr/workforce-backend-go/internal/pkg/database"
	"github.com/nexushr/workforce-backend-go/internal/pkg/validator"
	"github.com/nexushr/workforce-backend-go/internal/repository/postgresql"
)

const recentTransactionCount = 10

type FundServiceImpl struct {
	db          *database.DB
	fundsRepo   fund.FundsRepository
	txnRepo     fund.TransactionRepository
	expenseRepo fund.ExpenseRepository
	projectRepo fund.ProjectRepository
	salaryRepo  payroll.SalaryRepository
	seq         sequence.Generator
}

func NewFundService(
	db *database.DB,
	fundsRepo fund.FundsRepository,
	txnRepo fund.TransactionRepository,
	expenseRepo fund.ExpenseRepository,
	projectRepo fund.ProjectRepository,
	salaryRepo payroll.SalaryRepository,
	seq sequence.Generator,
) fund.FundService {
	return &FundServiceImpl{
		db:          db,
		fundsRepo:   fundsRepo,
		txnRepo:     txnRepo,
		expenseRepo: expenseRepo,
		projectRepo: projectRepo,
		salaryRepo:  salaryRepo,
		seq:         seq,
	}
}

func (s *FundServiceImpl) PostTransaction(ctx context.Context, req fund.PostTransactionRequest) (fund.TransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return fund.TransactionResponse{}, err
	}

	act, err := actor.FromContext(ctx)
	if err != nil {
		return fund.TransactionResponse{}, err
	}

	amount := decimal.RequireFromString(req.Amount)
	if !amount.IsPositive() {
		return fund.TransactionResponse{}, fund.ErrInvalidAmount
	}
	txType := fund.TransactionType(strings.ToLower(req.Type))
	isCredit := req.IsCredit
	if txType == fund.TypeInitialDeposit {
		isCredit = true
	}

	var result fund.Transaction
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		funds, err := s.fundsRepo.GetForUpdate(txCtx)
		if err != nil {
			return err
		}

		if isCredit {
			funds.TotalFunds = funds.TotalFunds.Add(amount)
		} else {
			if funds.TotalFunds.LessThan(amount) {
				return fund.ErrInsufficientFunds
			}
			funds.TotalFunds = funds.TotalFunds.Sub(amount)
		}
		funds.UpdatedByName = &act.Name
		if err := s.fundsRepo.Update(txCtx, funds); err != nil {
			return err
		}

		result, err = s.appendTransaction(txCtx, act, fund.Transaction{
			Type:         txType,
			Amount:       amount,
			IsCredit:     isCredit,
			BalanceAfter: funds.TotalFunds,
			Description:  req.Description,
		})
		return err
	})
	if err != nil {
		return fund.TransactionResponse{}, err
	}

	return mapTransactionToResponse(result), nil
}

func (s *FundServiceImpl) AddExpense(ctx context.Context, req fund.AddExpenseRequest) (fund.ExpenseResponse, error) {
	if err := req.Validate(); err != nil {
		return fund.ExpenseResponse{}, err
	}

	act, err := actor.FromContext(ctx)
	if err != nil {
		return fund.ExpenseResponse{}, err
	}

	amount := decimal.RequireFromString(req.Amount)
	if !amount.IsPositive() {
		return fund.ExpenseResponse{}, fund.ErrInvalidAmount
	}
	expenseDate, _ := validator.IsValidDate(req.ExpenseDate)

	var result fund.Expense
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		funds, err := s.fundsRepo.GetForUpdate(txCtx)
		if err != nil {
			return err
		}
		if funds.TotalFunds.LessThan(amount) {
			return fund.ErrInsufficientFunds
		}

		funds.TotalFunds = funds.TotalFunds.Sub(amount)
		funds.UpdatedByName = &act.Name
		if err := s.fundsRepo.Update(txCtx, funds); err != nil {
			return err
		}

		txn, err := s.appendTransaction(txCtx, act, fund.Transaction{
			Type:         fund.TypeAdjustment,
			Amount:       amount,
			IsCredit:     false,
			BalanceAfter: funds.TotalFunds,
			Description:  "expense: " + req.Description,
		})
		if err != nil {
			return err
		}

		code, err := s.seq.Next(txCtx, "EXP", expenseDate)
		if err != nil {
			return err
		}
		result, err = s.expenseRepo.Create(txCtx, fund.Expense{
			ID:                uuid.NewString(),
			ExpenseCode:       code,
			ExpenseDate:       expenseDate,
			Amount:            amount,
			Description:       req.Description,
			PaymentMethod:     req.PaymentMethod,
			FundTransactionID: &txn.ID,
			AddedByName:       act.Name,
			AddedByRole:       act.Role,
		})
		return err
	})
	if err != nil {
		return fund.ExpenseResponse{}, err
	}

	return mapExpenseToResponse(result), nil
}

// DeleteExpense reverses the expense's debit with a compensating credit,
// then removes both the ledger row and the expense itself.
func (s *FundServiceImpl) DeleteExpense(ctx context.Context, expenseID string) error {
	act, err := actor.FromContext(ctx)
	if err != nil {
		return err
	}

	return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		expense, err := s.expenseRepo.GetByID(txCtx, expenseID)
		if err != nil {
			return err
		}

		funds, err := s.fundsRepo.GetForUpdate(txCtx)
		if err != nil {
			return err
		}
		funds.TotalFunds = funds.TotalFunds.Add(expense.Amount)
		funds.UpdatedByName = &act.Name
		if err := s.fundsRepo.Update(txCtx, funds); err != nil {
			return err
		}

		if expense.FundTransactionID != nil {
			if err := s.txnRepo.Delete(txCtx, *expense.FundTransactionID); err != nil {
				return err
			}
		}
		return s.expenseRepo.Delete(txCtx, expense.ID)
	})
}

func (s *FundServiceImpl) RecordClientPayment(ctx context.Context, req fund.ClientPaymentRequest) (fund.TransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return fund.TransactionResponse{}, err
	}

	act, err := actor.FromContext(ctx)
	if err != nil {
		return fund.TransactionResponse{}, err
	}

	amount := decimal.RequireFromString(req.Amount)
	if !amount.IsPositive() {
		return fund.TransactionResponse{}, fund.ErrInvalidAmount
	}
	paymentDate, _ := validator.IsValidDate(req.PaymentDate)

	var result fund.Transaction
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		project, err := s.projectRepo.GetForUpdate(txCtx, req.ProjectID)
		if err != nil {
			return err
		}
		if amount.GreaterThan(project.AmountPending) {
			return fund.ErrExceedsPending
		}

		funds, err := s.fundsRepo.GetForUpdate(txCtx)
		if err != nil {
			return err
		}
		funds.TotalFunds = funds.TotalFunds.Add(amount)
		funds.TotalReceivedFromClients = funds.TotalReceivedFromClients.Add(amount)
		funds.RecomputeProfit()
		funds.UpdatedByName = &act.Name
		if err := s.fundsRepo.Update(txCtx, funds); err != nil {
			return err
		}

		if err := s.projectRepo.ApplyPayment(txCtx, project.ID, amount); err != nil {
			return err
		}

		description := "client payment for " + project.Name
		if req.Remarks != "" {
			description += ": " + req.Remarks
		}
		result, err = s.appendTransaction(txCtx, act, fund.Transaction{
			Type:            fund.TypeClientPayment,
			Amount:          amount,
			IsCredit:        true,
			BalanceAfter:    funds.TotalFunds,
			ProjectID:       &project.ID,
			Description:     description,
			TransactionDate: paymentDate,
		})
		return err
	})
	if err != nil {
		return fund.TransactionResponse{}, err
	}

	return mapTransactionToResponse(result), nil
}

// PaySalary settles part or all of a saved record's remaining balance
// from company funds.
func (s *FundServiceImpl) PaySalary(ctx context.Context, req fund.PaySalaryRequest) (fund.TransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return fund.TransactionResponse{}, err
	}

	act, err := actor.FromContext(ctx)
	if err != nil {
		return fund.TransactionResponse{}, err
	}

	amount := decimal.RequireFromString(req.Amount)
	if !amount.IsPositive() {
		return fund.TransactionResponse{}, fund.ErrInvalidAmount
	}
	paymentDate, _ := validator.IsValidDate(req.PaymentDate)

	var result fund.Transaction
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		record, err := s.salaryRepo.GetByID(txCtx, req.SalaryID)
		if err != nil {
			return err
		}
		if !record.IsSaved {
			return payroll.ErrSalaryNotSaved
		}
		if amount.GreaterThan(record.RemainingBalance) {
			return fund.ErrExceedsRemaining
		}

		funds, err := s.fundsRepo.GetForUpdate(txCtx)
		if err != nil {
			return err
		}
		if funds.TotalFunds.LessThan(amount) {
			return fund.ErrInsufficientFunds
		}

		funds.TotalFunds = funds.TotalFunds.Sub(amount)
		funds.TotalPaidAsSalary = funds.TotalPaidAsSalary.Add(amount)
		funds.RecomputeProfit()
		funds.UpdatedByName = &act.Name
		if err := s.fundsRepo.Update(txCtx, funds); err != nil {
			return err
		}

		result, err = s.appendTransaction(txCtx, act, fund.Transaction{
			Type:            fund.TypeSalaryPayment,
			Amount:          amount,
			IsCredit:        false,
			BalanceAfter:    funds.TotalFunds,
			SalaryID:        &record.ID,
			Description:     fmt.Sprintf("salary payment %d/%d", record.Month, record.Year),
			TransactionDate: paymentDate,
		})
		if err != nil {
			return err
		}

		record.PaidAmount = record.PaidAmount.Add(amount)
		record.RemainingBalance = record.NetPayable.Sub(record.PaidAmount)
		record.PaymentDate = &paymentDate
		record.PaymentFromFunds = true
		record.FundTransactionID = &result.ID
		return s.salaryRepo.Update(txCtx, record)
	})
	if err != nil {
		return fund.TransactionResponse{}, err
	}

	return mapTransactionToResponse(result), nil
}

func (s *FundServiceImpl) ListTransactions(ctx context.Context, filter fund.TransactionFilter) ([]fund.TransactionResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	txns, err := s.txnRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list fund transactions: %w", err)
	}

	responses := make([]fund.TransactionResponse, 0, len(txns))
	for _, txn := range txns {
		responses = append(responses, mapTransactionToResponse(txn))
	}
	return responses, nil
}

func (s *FundServiceImpl) ListExpenses(ctx context.Context) ([]fund.ExpenseResponse, error) {
	expenses, err := s.expenseRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	responses := make([]fund.ExpenseResponse, 0, len(expenses))
	for _, expense := range expenses {
		responses = append(responses, mapExpenseToResponse(expense))
	}
	return responses, nil
}

func (s *FundServiceImpl) Summary(ctx context.Context) (fund.SummaryResponse, error) {
	funds, err := s.fundsRepo.Get(ctx)
	if err != nil {
		return fund.SummaryResponse{}, err
	}

	recent, err := s.txnRepo.ListRecent(ctx, recentTransactionCount)
	if err != nil {
		return fund.SummaryResponse{}, fmt.Errorf("list recent transactions: %w", err)
	}

	saved, err := s.salaryRepo.ListSaved(ctx)
	if err != nil {
		return fund.SummaryResponse{}, fmt.Errorf("list salary records: %w", err)
	}
	payable := decimal.Zero
	paid := decimal.Zero
	for _, record := range saved {
		payable = payable.Add(record.NetPayable)
		paid = paid.Add(record.PaidAmount)
	}

	trend, err := s.monthlyTrend(ctx, time.Now())
	if err != nil {
		return fund.SummaryResponse{}, err
	}

	resp := fund.SummaryResponse{
		RecentTransactions: make([]fund.TransactionResponse, 0, len(recent)),
		TotalSalaryPayable: payable.StringFixed(2),
		TotalSalaryPaid:    paid.StringFixed(2),
		TotalSalaryPending: payable.Sub(paid).StringFixed(2),
		MonthlyTrend:       trend,
	}
	for _, txn := range recent {
		resp.RecentTransactions = append(resp.RecentTransactions, mapTransactionToResponse(txn))
	}
	if funds != nil {
		resp.Funds = &fund.FundsResponse{
			TotalFunds:               funds.TotalFunds.StringFixed(2),
			TotalReceivedFromClients: funds.TotalReceivedFromClients.StringFixed(2),
			TotalPaidAsSalary:        funds.TotalPaidAsSalary.StringFixed(2),
			TotalProfit:              funds.TotalProfit.StringFixed(2),
		}
	}
	return resp, nil
}

// monthlyTrend sums client income, expense debits and salary payments for
// the last six months, newest last.
func (s *FundServiceImpl) monthlyTrend(ctx context.Context, now time.Time) ([]fund.MonthTrend, error) {
	trend := make([]fund.MonthTrend, 0, 6)
	for i := 5; i >= 0; i-- {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)

		income, err := s.txnRepo.SumAmount(ctx, fund.TypeClientPayment, true, monthStart, monthEnd)
		if err != nil {
			return nil, err
		}
		expense, err := s.txnRepo.SumAmount(ctx, fund.TypeAdjustment, false, monthStart, monthEnd)
		if err != nil {
			return nil, err
		}
		salaries, err := s.txnRepo.SumAmount(ctx, fund.TypeSalaryPayment, false, monthStart, monthEnd)
		if err != nil {
			return nil, err
		}

		outgoing := expense.Add(salaries)
		trend = append(trend, fund.MonthTrend{
			Month:   monthStart.Format("2006-01"),
			Income:  income.StringFixed(2),
			Expense: outgoing.StringFixed(2),
			Profit:  income.Sub(outgoing).StringFixed(2),
		})
	}
	return trend, nil
}

// appendTransaction fills identity and attribution and writes the ledger
// row. Callers must already hold the funds row lock.
func (s *FundServiceImpl) appendTransaction(ctx context.Context, act actor.Actor, txn fund.Transaction) (fund.Transaction, error) {
	when := txn.TransactionDate
	if when.IsZero() {
		when = time.Now()
	}

	code, err := s.seq.Next(ctx, "TXN", when)
	if err != nil {
		return fund.Transaction{}, err
	}

	txn.ID = uuid.NewString()
	txn.TransactionCode = code
	txn.CreatedByName = act.Name
	txn.CreatedByRole = act.Role
	txn.TransactionDate = when
	return s.txnRepo.Create(ctx, txn)
}

func mapTransactionToResponse(txn fund.Transaction) fund.TransactionResponse {
	return fund.TransactionResponse{
		ID:              txn.ID,
		TransactionCode: txn.TransactionCode,
		Type:            string(txn.Type),
		Amount:          txn.Amount.StringFixed(2),
		IsCredit:        txn.IsCredit,
		BalanceAfter:    txn.BalanceAfter.StringFixed(2),
		SalaryID:        txn.SalaryID,
		ProjectID:       txn.ProjectID,
		Description:     txn.Description,
		CreatedByName:   txn.CreatedByName,
		CreatedByRole:   txn.CreatedByRole,
		TransactionDate: txn.TransactionDate.Format(time.RFC3339),
	}
}

func mapExpenseToResponse(expense fund.Expense) fund.ExpenseResponse {
	return fund.ExpenseResponse{
		ID:            expense.ID,
		ExpenseCode:   expense.ExpenseCode,
		ExpenseDate:   expense.ExpenseDate.Format("2006-01-02"),
		Amount:        expense.Amount.StringFixed(2),
		Description:   expense.Description,
		PaymentMethod: expense.PaymentMethod,
		AddedByName:   expense.AddedByName,
	}
}
