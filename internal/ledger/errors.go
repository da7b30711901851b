package ledger

import "errors"

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidName       = errors.New("player name is required")
	ErrPlayerInactive    = errors.New("player is not active")
	ErrTableClosed       = errors.New("table is closed")
	ErrUnbalancedTable   = errors.New("table is unbalanced")
	ErrDuplicateConflict = errors.New("player already exists at this table")
)
