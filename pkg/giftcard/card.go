package giftcard

import (
	"time"

	"github.com/google/uuid"
)

// Card is a single gift card record. A Card starts Active and can only move to
// Blocked; a blocked card rejects every balance mutation.
type Card struct {
	id      CardID
	pin     PIN
	balance Amount
	blocked bool
	history []Transaction
	nowFn   func() time.Time
}

// NewCard returns an active card with a zero balance and empty history.
func NewCard(id CardID, pin PIN) *Card {
	return &Card{id: id, pin: pin, nowFn: time.Now}
}

// ID returns the card number.
func (card *Card) ID() CardID {
	return card.id
}

// VerifyPIN reports whether candidate matches the stored PIN.
func (card *Card) VerifyPIN(candidate PIN) bool {
	return card.pin == candidate
}

// Balance returns the current balance.
func (card *Card) Balance() Amount {
	return card.balance
}

// Blocked reports whether the card has been blocked.
func (card *Card) Blocked() bool {
	return card.blocked
}

// Block moves the card to the blocked state. Repeated calls are no-ops.
func (card *Card) Block() {
	card.blocked = true
}

// TopUp credits amount and records a top-up transaction.
func (card *Card) TopUp(amount Amount) error {
	if err := card.checkMutation(amount); err != nil {
		return err
	}
	card.balance += amount
	card.record(TransactionTopUp, amount)
	return nil
}

// Purchase debits amount when the balance covers it.
func (card *Card) Purchase(amount Amount) error {
	if err := card.checkMutation(amount); err != nil {
		return err
	}
	if card.balance < amount {
		return WrapError(errorOperationCard, errorSubjectBalance, errorCodeInsufficient, ErrInsufficientBalance)
	}
	card.balance -= amount
	card.record(TransactionPurchase, amount)
	return nil
}

// History returns a copy of the rendered transaction descriptions, oldest first.
func (card *Card) History() []string {
	descriptions := make([]string, 0, len(card.history))
	for _, transaction := range card.history {
		descriptions = append(descriptions, transaction.String())
	}
	return descriptions
}

// Transactions returns a copy of the structured history, oldest first.
func (card *Card) Transactions() []Transaction {
	transactions := make([]Transaction, len(card.history))
	copy(transactions, card.history)
	return transactions
}

func (card *Card) checkMutation(amount Amount) error {
	if card.blocked {
		return WrapError(errorOperationCard, errorSubjectState, errorCodeBlocked, ErrCardBlocked)
	}
	if _, err := NewAmount(amount.Float64()); err != nil {
		return WrapError(errorOperationCard, errorSubjectAmount, errorCodeInvalid, err)
	}
	return nil
}

func (card *Card) record(kind TransactionKind, amount Amount) {
	card.history = append(card.history, Transaction{
		EntryID:      uuid.New(),
		Kind:         kind,
		Amount:       amount,
		BalanceAfter: card.balance,
		CreatedAt:    card.nowFn().UTC(),
	})
}
