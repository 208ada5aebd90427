package giftcard

import (
	"context"
	"testing"
	"time"
)

const (
	pinValue        = PIN(1234)
	wrongPINValue   = PIN(4321)
	unknownCardID   = CardID(55555)
	fixedCardID     = 12345
	secondCardID    = 23456
	errorMismatchFn = "expected %v, got %v"
)

var fixedNow = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

type recorderLogger struct {
	entries []OperationLog
}

func (logger *recorderLogger) LogOperation(_ context.Context, entry OperationLog) {
	logger.entries = append(logger.entries, entry)
}

func mustNewManager(test *testing.T, options ...ManagerOption) *Manager {
	test.Helper()
	options = append([]ManagerOption{WithClock(func() time.Time { return fixedNow })}, options...)
	manager, err := NewManager(options...)
	if err != nil {
		test.Fatalf("manager init failed: %v", err)
	}
	return manager
}

func mustCreateCard(test *testing.T, manager *Manager, pin PIN) CardID {
	test.Helper()
	id, err := manager.CreateCard(context.Background(), pin)
	if err != nil {
		test.Fatalf("create card: %v", err)
	}
	return id
}

func mustAmount(test *testing.T, raw float64) Amount {
	test.Helper()
	amount, err := NewAmount(raw)
	if err != nil {
		test.Fatalf("amount: %v", err)
	}
	return amount
}

func mustTopUp(test *testing.T, manager *Manager, id CardID, pin PIN, raw float64) Amount {
	test.Helper()
	balance, err := manager.TopUp(context.Background(), id, pin, mustAmount(test, raw))
	if err != nil {
		test.Fatalf("top up: %v", err)
	}
	return balance
}

func mustBalance(test *testing.T, manager *Manager, id CardID, pin PIN) Amount {
	test.Helper()
	balance, err := manager.Balance(context.Background(), id, pin)
	if err != nil {
		test.Fatalf("balance: %v", err)
	}
	return balance
}
