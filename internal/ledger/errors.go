package ledger

import "errors"

var (
	ErrUnbalancedTransaction = errors.New("transaction entries do not sum to zero")
	ErrEntryPosted           = errors.New("entry already attached to a transaction")
	ErrNotFound              = errors.New("not found")
	ErrMissingField          = errors.New("missing required field")
)
