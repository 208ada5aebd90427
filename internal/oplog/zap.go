// Package oplog forwards gift card operation events to zap.
package oplog

import (
	"context"

	"github.com/MarkoPoloResearchLab/giftcard/pkg/giftcard"
	"go.uber.org/zap"
)

const (
	messageOperation = "giftcard operation"
	statusError      = "error"
)

// ZapLogger implements giftcard.OperationLogger on top of a zap.Logger.
type ZapLogger struct {
	logger *zap.Logger
}

// NewZapLogger returns a ZapLogger; a nil logger is replaced with a no-op one.
func NewZapLogger(logger *zap.Logger) *ZapLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapLogger{logger: logger}
}

// LogOperation writes one structured line per operation.
func (zapLogger *ZapLogger) LogOperation(_ context.Context, entry giftcard.OperationLog) {
	fields := []zap.Field{
		zap.String("operation", entry.Operation),
		zap.String("status", entry.Status),
	}
	if entry.CardID != 0 {
		fields = append(fields, zap.Int("card_id", entry.CardID.Int()))
	}
	if entry.Amount != 0 {
		fields = append(fields, zap.Float64("amount", entry.Amount.Float64()))
	}
	if entry.Balance != 0 {
		fields = append(fields, zap.Float64("balance", entry.Balance.Float64()))
	}
	if entry.Status == statusError || entry.Error != nil {
		zapLogger.logger.Warn(messageOperation, append(fields, zap.Error(entry.Error))...)
		return
	}
	zapLogger.logger.Info(messageOperation, fields...)
}
