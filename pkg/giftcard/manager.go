package giftcard

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// ManagerOption configures a Manager instance.
type ManagerOption func(*Manager)

// Manager is the in-memory registry of gift cards. Every operation other than
// CreateCard authenticates the caller with the card number and PIN first.
type Manager struct {
	mu       sync.Mutex
	cards    map[CardID]*Card
	usedIDs  map[CardID]struct{}
	idSource IDSource
	nowFn    func() time.Time
	logger   OperationLogger
}

// WithIDSource replaces the random card number generator.
func WithIDSource(source IDSource) ManagerOption {
	return func(manager *Manager) {
		manager.idSource = source
	}
}

// WithClock replaces the clock used to timestamp transactions.
func WithClock(now func() time.Time) ManagerOption {
	return func(manager *Manager) {
		manager.nowFn = now
	}
}

// NewManager wires an empty Manager.
func NewManager(options ...ManagerOption) (*Manager, error) {
	manager := &Manager{
		cards:    make(map[CardID]*Card),
		usedIDs:  make(map[CardID]struct{}),
		idSource: RandomIDSource(),
		nowFn:    time.Now,
	}
	for _, option := range options {
		if option != nil {
			option(manager)
		}
	}
	if manager.idSource == nil {
		return nil, fmt.Errorf("%w: id source is nil", ErrInvalidManagerConfig)
	}
	if manager.nowFn == nil {
		return nil, fmt.Errorf("%w: clock dependency is nil", ErrInvalidManagerConfig)
	}
	return manager, nil
}

// Len returns the number of issued cards.
func (manager *Manager) Len() int {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return len(manager.cards)
}

// CreateCard issues a new card protected by pin and returns its number.
func (manager *Manager) CreateCard(ctx context.Context, pin PIN) (CardID, error) {
	manager.mu.Lock()
	id, operationError := manager.nextID()
	if operationError == nil {
		card := NewCard(id, pin)
		card.nowFn = manager.nowFn
		manager.cards[id] = card
		manager.usedIDs[id] = struct{}{}
	}
	manager.mu.Unlock()
	manager.logOperation(ctx, OperationLog{
		Operation: operationCreate,
		CardID:    id,
		Error:     operationError,
	})
	return id, operationError
}

// TopUp credits amount to the card and returns the resulting balance.
func (manager *Manager) TopUp(ctx context.Context, id CardID, pin PIN, amount Amount) (Amount, error) {
	balance, operationError := manager.mutate(id, pin, func(card *Card) error {
		return card.TopUp(amount)
	})
	manager.logOperation(ctx, OperationLog{
		Operation: operationTopUp,
		CardID:    id,
		Amount:    amount,
		Balance:   balance,
		Error:     operationError,
	})
	return balance, operationError
}

// Purchase debits amount from the card and returns the remaining balance.
func (manager *Manager) Purchase(ctx context.Context, id CardID, pin PIN, amount Amount) (Amount, error) {
	balance, operationError := manager.mutate(id, pin, func(card *Card) error {
		return card.Purchase(amount)
	})
	manager.logOperation(ctx, OperationLog{
		Operation: operationPurchase,
		CardID:    id,
		Amount:    amount,
		Balance:   balance,
		Error:     operationError,
	})
	return balance, operationError
}

// Balance returns the card's current balance.
func (manager *Manager) Balance(ctx context.Context, id CardID, pin PIN) (Amount, error) {
	var balance Amount
	operationError := manager.withCard(id, pin, func(card *Card) error {
		balance = card.Balance()
		return nil
	})
	manager.logOperation(ctx, OperationLog{
		Operation: operationBalance,
		CardID:    id,
		Balance:   balance,
		Error:     operationError,
	})
	return balance, operationError
}

// History returns the card's transaction descriptions, oldest first.
func (manager *Manager) History(ctx context.Context, id CardID, pin PIN) ([]string, error) {
	var history []string
	operationError := manager.withCard(id, pin, func(card *Card) error {
		history = card.History()
		return nil
	})
	manager.logOperation(ctx, OperationLog{
		Operation: operationHistory,
		CardID:    id,
		Error:     operationError,
	})
	return history, operationError
}

// Transactions returns the card's structured history, oldest first.
func (manager *Manager) Transactions(ctx context.Context, id CardID, pin PIN) ([]Transaction, error) {
	var transactions []Transaction
	operationError := manager.withCard(id, pin, func(card *Card) error {
		transactions = card.Transactions()
		return nil
	})
	manager.logOperation(ctx, OperationLog{
		Operation: operationTransactions,
		CardID:    id,
		Error:     operationError,
	})
	return transactions, operationError
}

// BlockCard permanently blocks the card.
func (manager *Manager) BlockCard(ctx context.Context, id CardID, pin PIN) error {
	var balance Amount
	operationError := manager.withCard(id, pin, func(card *Card) error {
		card.Block()
		balance = card.Balance()
		return nil
	})
	manager.logOperation(ctx, OperationLog{
		Operation: operationBlock,
		CardID:    id,
		Balance:   balance,
		Error:     operationError,
	})
	return operationError
}

// mutate runs fn on an authenticated card and reports the balance afterwards,
// which is unchanged when fn fails.
func (manager *Manager) mutate(id CardID, pin PIN, fn func(card *Card) error) (Amount, error) {
	var balance Amount
	operationError := manager.withCard(id, pin, func(card *Card) error {
		err := fn(card)
		balance = card.Balance()
		return err
	})
	return balance, operationError
}

func (manager *Manager) withCard(id CardID, pin PIN, fn func(card *Card) error) error {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	card, ok := manager.cards[id]
	if !ok || !card.VerifyPIN(pin) {
		return WrapError(errorOperationManager, errorSubjectAuth, errorCodeRejected, ErrAuthenticationFailed)
	}
	return fn(card)
}

// nextID must be called with mu held.
func (manager *Manager) nextID() (CardID, error) {
	if len(manager.usedIDs) >= cardIDSpaceSize {
		return 0, WrapError(errorOperationManager, errorSubjectID, errorCodeExhausted, ErrCardIDSpaceExhausted)
	}
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		candidate, err := NewCardID(manager.idSource())
		if err != nil {
			continue
		}
		if _, used := manager.usedIDs[candidate]; used {
			continue
		}
		return candidate, nil
	}
	return 0, WrapError(errorOperationManager, errorSubjectID, errorCodeExhausted,
		fmt.Errorf("%w: no fresh id after %d attempts", ErrCardIDSpaceExhausted, maxIDAttempts))
}

func (manager *Manager) logOperation(ctx context.Context, entry OperationLog) {
	if manager.logger == nil {
		return
	}
	if entry.Status == "" {
		if entry.Error != nil {
			entry.Status = operationStatusError
		} else {
			entry.Status = operationStatusOK
		}
	}
	manager.logger.LogOperation(ctx, entry)
}
