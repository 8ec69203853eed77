package fund

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexushr/workforce-backend-go/internal/domain/fund"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// replay applies ledger rows to a zero balance and stamps BalanceAfter,
// the same way the service does while holding the row lock.
func replay(amounts []struct {
	amount string
	credit bool
}) (decimal.Decimal, []fund.Transaction) {
	balance := decimal.Zero
	txns := make([]fund.Transaction, 0, len(amounts))
	for _, a := range amounts {
		amt := money(a.amount)
		if a.credit {
			balance = balance.Add(amt)
		} else {
			balance = balance.Sub(amt)
		}
		txns = append(txns, fund.Transaction{
			Amount:       amt,
			IsCredit:     a.credit,
			BalanceAfter: balance,
		})
	}
	return balance, txns
}

func TestLedgerReplayMatchesBalanceAfterChain(t *testing.T) {
	t.Parallel()

	balance, txns := replay([]struct {
		amount string
		credit bool
	}{
		{"100000", true},
		{"25000.50", false},
		{"40000", true},
		{"9999.99", false},
	})

	require.Len(t, txns, 4)
	assert.True(t, balance.Equal(money("105000.51")), "balance %s", balance)

	// every row's snapshot equals the running balance at that point
	running := decimal.Zero
	for i, txn := range txns {
		if txn.IsCredit {
			running = running.Add(txn.Amount)
		} else {
			running = running.Sub(txn.Amount)
		}
		assert.True(t, txn.BalanceAfter.Equal(running), "row %d snapshot %s", i, txn.BalanceAfter)
	}
}

func TestRecomputeProfitIgnoresExpenses(t *testing.T) {
	t.Parallel()

	funds := fund.CompanyFunds{
		TotalFunds:               money("50000"),
		TotalReceivedFromClients: money("120000"),
		TotalPaidAsSalary:        money("80000"),
	}

	funds.RecomputeProfit()

	// profit is received minus salaries; expenses only move the balance
	assert.True(t, funds.TotalProfit.Equal(money("40000")), "profit %s", funds.TotalProfit)
}

func TestRecomputeProfitCanGoNegative(t *testing.T) {
	t.Parallel()

	funds := fund.CompanyFunds{
		TotalReceivedFromClients: money("10000"),
		TotalPaidAsSalary:        money("15000"),
	}

	funds.RecomputeProfit()

	assert.True(t, funds.TotalProfit.Equal(money("-5000")))
}

func TestExpenseReversalRestoresBalance(t *testing.T) {
	t.Parallel()

	balance := money("30000")
	expense := money("4500.25")

	afterExpense := balance.Sub(expense)
	afterReversal := afterExpense.Add(expense)

	assert.True(t, afterReversal.Equal(balance))
}
