package giftcard

import "context"

// OperationLogger records domain-level events emitted by Manager operations.
type OperationLogger interface {
	LogOperation(ctx context.Context, entry OperationLog)
}

// OperationLog describes one Manager operation. The PIN is never included.
type OperationLog struct {
	Operation string
	CardID    CardID
	Amount    Amount
	Balance   Amount
	Status    string
	Error     error
}

// WithOperationLogger wires a logger that receives callbacks for every operation.
func WithOperationLogger(logger OperationLogger) ManagerOption {
	return func(manager *Manager) {
		manager.logger = logger
	}
}
