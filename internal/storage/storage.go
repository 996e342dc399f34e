package storage

import "swapScope/internal/model"

// Storage defines a sink for journaled swap attempts.
type Storage interface {
	PutSwapRecords(records []model.SwapRecord) error
}
