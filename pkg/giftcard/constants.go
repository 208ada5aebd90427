package giftcard

const (
	operationCreate       = "create"
	operationTopUp        = "top_up"
	operationPurchase     = "purchase"
	operationHistory      = "history"
	operationTransactions = "transactions"
	operationBalance      = "balance"
	operationBlock        = "block"

	operationStatusOK    = "ok"
	operationStatusError = "error"

	errorOperationManager = "manager"
	errorOperationCard    = "card"
	errorSubjectID        = "id"
	errorSubjectAuth      = "auth"
	errorSubjectBalance   = "balance"
	errorSubjectState     = "state"
	errorSubjectAmount    = "amount"
	errorCodeExhausted    = "exhausted"
	errorCodeRejected     = "rejected"
	errorCodeInsufficient = "insufficient"
	errorCodeBlocked      = "blocked"
	errorCodeInvalid      = "invalid"

	// MinCardID and MaxCardID bound the 5-digit identifier space (inclusive).
	MinCardID = 10000
	MaxCardID = 99999

	cardIDSpaceSize = MaxCardID - MinCardID + 1
	maxIDAttempts   = 1 << 20

	topUpDescriptionPrefix    = "Top up: +"
	purchaseDescriptionPrefix = "Purchase: -"
)
