// Package console drives the gift card manager from an interactive text menu.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MarkoPoloResearchLab/giftcard/internal/oplog"
	"github.com/MarkoPoloResearchLab/giftcard/pkg/giftcard"
	"go.uber.org/zap"
)

const (
	choiceCreate       = "1"
	choiceTopUp        = "2"
	choicePurchase     = "3"
	choiceHistory      = "4"
	choiceBlock        = "5"
	choiceBalance      = "6"
	choiceTransactions = "7"
	choiceExit         = "8"

	menuText = "\nSelect an operation:\n" +
		"1. Create Gift Card\n" +
		"2. Top Up Gift Card\n" +
		"3. Make Purchase\n" +
		"4. View Transaction History\n" +
		"5. Block Gift Card\n" +
		"6. Check Balance\n" +
		"7. View Transaction Details\n" +
		"8. Exit\n"

	promptChoice      = "\nEnter your choice: "
	promptNewPIN      = "Enter a 4-digit PIN for the gift card: "
	promptCardNumber  = "Enter Gift Card Number: "
	promptPIN         = "Enter PIN: "
	promptTopUpAmount = "Enter Amount to Top Up: "
	promptPurchase    = "Enter Purchase Amount: "

	messageInvalidCredentials = "Invalid card number or PIN."
	messageCardBlocked        = "Gift card is blocked."
	messageInsufficient       = "Insufficient balance."
	messageInvalidCardNumber  = "Invalid card number."
	messageInvalidPIN         = "Invalid PIN."
	messagePINFormat          = "PIN must be exactly 4 digits."
	messageInvalidAmount      = "Invalid amount."
	messageNoCardNumbers      = "No card numbers left."
	messageInvalidChoice      = "Invalid choice. Please try again."
	messageExiting            = "Exiting..."
	messageNoTransactions     = "No transactions yet."

	pinLength = 4
)

// Ledger is the set of gift card operations the menu needs.
type Ledger interface {
	CreateCard(ctx context.Context, pin giftcard.PIN) (giftcard.CardID, error)
	TopUp(ctx context.Context, id giftcard.CardID, pin giftcard.PIN, amount giftcard.Amount) (giftcard.Amount, error)
	Purchase(ctx context.Context, id giftcard.CardID, pin giftcard.PIN, amount giftcard.Amount) (giftcard.Amount, error)
	Balance(ctx context.Context, id giftcard.CardID, pin giftcard.PIN) (giftcard.Amount, error)
	History(ctx context.Context, id giftcard.CardID, pin giftcard.PIN) ([]string, error)
	Transactions(ctx context.Context, id giftcard.CardID, pin giftcard.PIN) ([]giftcard.Transaction, error)
	BlockCard(ctx context.Context, id giftcard.CardID, pin giftcard.PIN) error
}

var errEndOfInput = errors.New("end of input")

// Session is one interactive menu loop over a Ledger.
type Session struct {
	ledger Ledger
	input  io.Reader
	output io.Writer
	logger *zap.Logger
	lines  <-chan string
}

// NewSession wires a Session; a nil logger is replaced with a no-op one.
func NewSession(ledger Ledger, input io.Reader, output io.Writer, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{ledger: ledger, input: input, output: output, logger: logger}
}

// Run boots a Manager from cfg and serves the menu until the user exits.
func Run(ctx context.Context, cfg Config, input io.Reader, output io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("logger init: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	idSource := giftcard.RandomIDSource()
	if cfg.IDSeed != 0 {
		idSource = giftcard.NewSeededIDSource(cfg.IDSeed)
	}
	manager, err := giftcard.NewManager(
		giftcard.WithIDSource(idSource),
		giftcard.WithOperationLogger(oplog.NewZapLogger(logger)),
	)
	if err != nil {
		return fmt.Errorf("manager init: %w", err)
	}
	logger.Debug("console session starting", zap.Uint64("id_seed", cfg.IDSeed))
	return NewSession(manager, input, output, logger).Run(ctx)
}

// Run serves the menu. It returns nil when the user exits or input ends, and
// the context error when ctx is cancelled.
func (session *Session) Run(ctx context.Context) error {
	readerCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	session.lines = session.readLines(readerCtx)
	for {
		session.print(menuText)
		choice, err := session.prompt(ctx, promptChoice)
		if err != nil {
			return session.finish(err)
		}
		switch choice {
		case choiceCreate:
			err = session.createCard(ctx)
		case choiceTopUp:
			err = session.topUp(ctx)
		case choicePurchase:
			err = session.purchase(ctx)
		case choiceHistory:
			err = session.history(ctx)
		case choiceBlock:
			err = session.block(ctx)
		case choiceBalance:
			err = session.balance(ctx)
		case choiceTransactions:
			err = session.transactions(ctx)
		case choiceExit:
			session.println(messageExiting)
			return nil
		default:
			session.println(messageInvalidChoice)
		}
		if err != nil {
			return session.finish(err)
		}
	}
}

func (session *Session) createCard(ctx context.Context) error {
	raw, err := session.prompt(ctx, promptNewPIN)
	if err != nil {
		return err
	}
	if !isFourDigits(raw) {
		session.println(messagePINFormat)
		return nil
	}
	pin, err := giftcard.ParsePIN(raw)
	if err != nil {
		session.report(err)
		return nil
	}
	id, err := session.ledger.CreateCard(ctx, pin)
	if err != nil {
		session.report(err)
		return nil
	}
	session.println(fmt.Sprintf("***** Gift card created successfully with card number: %s *****", id))
	return nil
}

func (session *Session) topUp(ctx context.Context) error {
	id, pin, amount, ok, err := session.promptMutation(ctx, promptTopUpAmount)
	if err != nil || !ok {
		return err
	}
	balance, err := session.ledger.TopUp(ctx, id, pin, amount)
	if err != nil {
		session.report(err)
		return nil
	}
	session.println(fmt.Sprintf("****** Top-up successful. Current balance: %s ******", balance))
	return nil
}

func (session *Session) purchase(ctx context.Context) error {
	id, pin, amount, ok, err := session.promptMutation(ctx, promptPurchase)
	if err != nil || !ok {
		return err
	}
	balance, err := session.ledger.Purchase(ctx, id, pin, amount)
	if err != nil {
		session.report(err)
		return nil
	}
	session.println(fmt.Sprintf("***** Purchase successful. Remaining balance: %s *****", balance))
	return nil
}

func (session *Session) history(ctx context.Context) error {
	id, pin, ok, err := session.promptCredentials(ctx)
	if err != nil || !ok {
		return err
	}
	history, err := session.ledger.History(ctx, id, pin)
	if err != nil {
		session.report(err)
		return nil
	}
	session.println("\nTransaction History:")
	if len(history) == 0 {
		session.println(messageNoTransactions)
	}
	for _, description := range history {
		session.println(description)
	}
	return nil
}

func (session *Session) transactions(ctx context.Context) error {
	id, pin, ok, err := session.promptCredentials(ctx)
	if err != nil || !ok {
		return err
	}
	transactions, err := session.ledger.Transactions(ctx, id, pin)
	if err != nil {
		session.report(err)
		return nil
	}
	session.println("\nTransaction Details:")
	if len(transactions) == 0 {
		session.println(messageNoTransactions)
	}
	for _, transaction := range transactions {
		session.println(fmt.Sprintf("%s  %-20s balance %s  [%s]",
			transaction.CreatedAt.Format(time.RFC3339), transaction, transaction.BalanceAfter, transaction.EntryID))
	}
	return nil
}

func (session *Session) block(ctx context.Context) error {
	id, pin, ok, err := session.promptCredentials(ctx)
	if err != nil || !ok {
		return err
	}
	if err := session.ledger.BlockCard(ctx, id, pin); err != nil {
		session.report(err)
		return nil
	}
	session.println("***** Gift card blocked successfully *****")
	return nil
}

func (session *Session) balance(ctx context.Context) error {
	id, pin, ok, err := session.promptCredentials(ctx)
	if err != nil || !ok {
		return err
	}
	balance, err := session.ledger.Balance(ctx, id, pin)
	if err != nil {
		session.report(err)
		return nil
	}
	session.println(fmt.Sprintf("Current balance: %s", balance))
	return nil
}

// promptCredentials reads a card number and PIN. ok is false when the input
// could not be parsed and a message has already been printed.
func (session *Session) promptCredentials(ctx context.Context) (giftcard.CardID, giftcard.PIN, bool, error) {
	rawID, err := session.prompt(ctx, promptCardNumber)
	if err != nil {
		return 0, 0, false, err
	}
	id, parseErr := giftcard.ParseCardID(rawID)
	rawPIN, err := session.prompt(ctx, promptPIN)
	if err != nil {
		return 0, 0, false, err
	}
	if parseErr != nil {
		session.report(parseErr)
		return 0, 0, false, nil
	}
	pin, parseErr := giftcard.ParsePIN(rawPIN)
	if parseErr != nil {
		session.report(parseErr)
		return 0, 0, false, nil
	}
	return id, pin, true, nil
}

func (session *Session) promptMutation(ctx context.Context, amountPrompt string) (giftcard.CardID, giftcard.PIN, giftcard.Amount, bool, error) {
	id, pin, ok, err := session.promptCredentials(ctx)
	if err != nil || !ok {
		return 0, 0, 0, ok, err
	}
	rawAmount, err := session.prompt(ctx, amountPrompt)
	if err != nil {
		return 0, 0, 0, false, err
	}
	amount, parseErr := giftcard.ParseAmount(rawAmount)
	if parseErr != nil {
		session.report(parseErr)
		return 0, 0, 0, false, nil
	}
	return id, pin, amount, true, nil
}

func (session *Session) prompt(ctx context.Context, text string) (string, error) {
	session.print(text)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, open := <-session.lines:
		if !open {
			return "", errEndOfInput
		}
		return strings.TrimSpace(line), nil
	}
}

func (session *Session) readLines(ctx context.Context) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(session.input)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			session.logger.Warn("console input failed", zap.Error(err))
		}
	}()
	return lines
}

func (session *Session) report(err error) {
	switch {
	case errors.Is(err, giftcard.ErrAuthenticationFailed):
		session.println(messageInvalidCredentials)
	case errors.Is(err, giftcard.ErrCardBlocked):
		session.println(messageCardBlocked)
	case errors.Is(err, giftcard.ErrInsufficientBalance):
		session.println(messageInsufficient)
	case errors.Is(err, giftcard.ErrInvalidCardID):
		session.println(messageInvalidCardNumber)
	case errors.Is(err, giftcard.ErrInvalidPIN):
		session.println(messageInvalidPIN)
	case errors.Is(err, giftcard.ErrInvalidAmount):
		session.println(messageInvalidAmount)
	case errors.Is(err, giftcard.ErrCardIDSpaceExhausted):
		session.println(messageNoCardNumbers)
	default:
		session.println(fmt.Sprintf("Operation failed: %v", err))
	}
	session.logger.Debug("operation rejected", zap.Error(err))
}

func (session *Session) finish(err error) error {
	if errors.Is(err, errEndOfInput) {
		session.println("")
		session.println(messageExiting)
		return nil
	}
	return err
}

func (session *Session) print(text string) {
	_, _ = io.WriteString(session.output, text)
}

func (session *Session) println(text string) {
	session.print(text + "\n")
}

func isFourDigits(raw string) bool {
	if len(raw) != pinLength {
		return false
	}
	for _, character := range raw {
		if character < '0' || character > '9' {
			return false
		}
	}
	return true
}
