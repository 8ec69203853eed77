package fund

import "errors"

// Fund ledger errors
var (
	ErrFundsNotInitialized = errors.New("company funds not initialized")
	ErrInsufficientFunds   = errors.New("insufficient company funds")
	ErrExpenseNotFound     = errors.New("expense not found")
	ErrTransactionNotFound = errors.New("fund transaction not found")
	ErrProjectNotFound     = errors.New("project not found")
	ErrExceedsPending      = errors.New("amount exceeds the project's pending amount")
	ErrExceedsRemaining    = errors.New("amount exceeds the remaining salary balance")
	ErrInvalidAmount       = errors.New("amount must be positive")
)
