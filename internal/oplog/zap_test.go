package oplog

import (
	"context"
	"errors"
	"testing"

	"github.com/MarkoPoloResearchLab/giftcard/pkg/giftcard"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerWritesSuccessAtInfo(test *testing.T) {
	test.Parallel()
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewZapLogger(zap.New(core))

	logger.LogOperation(context.Background(), giftcard.OperationLog{
		Operation: "top_up",
		CardID:    12345,
		Amount:    50,
		Balance:   75,
		Status:    "ok",
	})

	entries := logs.All()
	if len(entries) != 1 {
		test.Fatalf("expected one log entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Level != zapcore.InfoLevel || entry.Message != messageOperation {
		test.Fatalf("unexpected entry: %+v", entry)
	}
	fields := entry.ContextMap()
	if fields["card_id"] != int64(12345) || fields["amount"] != float64(50) || fields["balance"] != float64(75) {
		test.Fatalf("unexpected fields: %+v", fields)
	}
	if _, hasPIN := fields["pin"]; hasPIN {
		test.Fatalf("pin must never be logged")
	}
}

func TestZapLoggerWritesFailureAtWarn(test *testing.T) {
	test.Parallel()
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewZapLogger(zap.New(core))

	logger.LogOperation(context.Background(), giftcard.OperationLog{
		Operation: "purchase",
		CardID:    12345,
		Status:    statusError,
		Error:     giftcard.ErrInsufficientBalance,
	})

	entries := logs.FilterLevelExact(zapcore.WarnLevel).All()
	if len(entries) != 1 {
		test.Fatalf("expected one warn entry, got %d", len(entries))
	}
	if entries[0].ContextMap()["error"] != giftcard.ErrInsufficientBalance.Error() {
		test.Fatalf("unexpected error field: %+v", entries[0].ContextMap())
	}
}

func TestZapLoggerReceivesManagerEvents(test *testing.T) {
	test.Parallel()
	core, logs := observer.New(zapcore.InfoLevel)
	manager, err := giftcard.NewManager(
		giftcard.WithIDSource(giftcard.SequenceIDSource(12345)),
		giftcard.WithOperationLogger(NewZapLogger(zap.New(core))),
	)
	if err != nil {
		test.Fatalf("manager init failed: %v", err)
	}
	ctx := context.Background()
	id, err := manager.CreateCard(ctx, 1234)
	if err != nil {
		test.Fatalf("create: %v", err)
	}
	if _, err := manager.TopUp(ctx, id, 9999, 10); !errors.Is(err, giftcard.ErrAuthenticationFailed) {
		test.Fatalf("expected authentication failure, got %v", err)
	}
	if logs.Len() != 2 {
		test.Fatalf("expected 2 entries, got %d", logs.Len())
	}
	if logs.FilterField(zap.String("operation", "top_up")).FilterLevelExact(zapcore.WarnLevel).Len() != 1 {
		test.Fatalf("expected failed top up logged at warn")
	}
}

func TestNewZapLoggerNil(test *testing.T) {
	test.Parallel()
	logger := NewZapLogger(nil)
	logger.LogOperation(context.Background(), giftcard.OperationLog{Operation: "balance", Status: "ok"})
}
