package economy

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrIndexOutOfRange   = errors.New("item index out of range")

	// ErrNotEnoughLifetimeCurrency is returned by Prestige below the
	// requirement. It also matches ErrInsufficientFunds.
	ErrNotEnoughLifetimeCurrency = fmt.Errorf("not enough currency to prestige: %w", ErrInsufficientFunds)

	ErrPersistenceWrite = errors.New("snapshot write failed")
	ErrPersistenceRead  = errors.New("snapshot read failed")
	ErrPersistenceParse = errors.New("snapshot parse failed")
)
