package giftcard

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CardID is the 5-digit gift card number.
type CardID int

// PIN is the secret used to authenticate card operations.
type PIN int

// Amount is a non-negative monetary value.
type Amount float64

// NewCardID validates that raw falls inside the issued identifier range.
func NewCardID(raw int) (CardID, error) {
	if raw < MinCardID || raw > MaxCardID {
		return 0, fmt.Errorf("%w: %d outside [%d, %d]", ErrInvalidCardID, raw, MinCardID, MaxCardID)
	}
	return CardID(raw), nil
}

// ParseCardID parses console input into a CardID.
func ParseCardID(raw string) (CardID, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidCardID, strings.TrimSpace(raw))
	}
	return NewCardID(value)
}

// Int returns the raw identifier.
func (id CardID) Int() int {
	return int(id)
}

// String renders the identifier.
func (id CardID) String() string {
	return strconv.Itoa(int(id))
}

// ParsePIN parses console input into a PIN. Any integer is accepted.
func ParsePIN(raw string) (PIN, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: not a number", ErrInvalidPIN)
	}
	return PIN(value), nil
}

// NewAmount validates that raw is a finite, non-negative value.
func NewAmount(raw float64) (Amount, error) {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, fmt.Errorf("%w: must be finite", ErrInvalidAmount)
	}
	if raw < 0 {
		return 0, fmt.Errorf("%w: must not be negative", ErrInvalidAmount)
	}
	return Amount(raw), nil
}

// ParseAmount parses console input into an Amount.
func ParseAmount(raw string) (Amount, error) {
	trimmed := strings.TrimSpace(raw)
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, trimmed)
	}
	return NewAmount(value)
}

// Float64 returns the raw amount.
func (amount Amount) Float64() float64 {
	return float64(amount)
}

// String renders the shortest decimal form, so 50 renders as "50".
func (amount Amount) String() string {
	return strconv.FormatFloat(float64(amount), 'f', -1, 64)
}

// TransactionKind enumerates history entry kinds.
type TransactionKind string

const (
	TransactionTopUp    TransactionKind = "top_up"
	TransactionPurchase TransactionKind = "purchase"
)

// String returns the kind value.
func (kind TransactionKind) String() string {
	return string(kind)
}

// Transaction is a single immutable line in a card's history.
type Transaction struct {
	EntryID      uuid.UUID
	Kind         TransactionKind
	Amount       Amount
	BalanceAfter Amount
	CreatedAt    time.Time
}

// String returns the human-readable history description.
func (transaction Transaction) String() string {
	switch transaction.Kind {
	case TransactionTopUp:
		return topUpDescriptionPrefix + transaction.Amount.String()
	case TransactionPurchase:
		return purchaseDescriptionPrefix + transaction.Amount.String()
	default:
		return transaction.Kind.String() + ": " + transaction.Amount.String()
	}
}
