package service

import "errors"

var (
	// ErrItemNotFound is returned when an id is unknown to the catalog or currently invisible.
	ErrItemNotFound = errors.New("service: item not found")
	// ErrEmptySelection は選択なしでドキュメントを作ろうとしたとき
	ErrEmptySelection = errors.New("service: selection is empty")
	// ErrExportInProgress is returned while another export holds the slot.
	ErrExportInProgress = errors.New("service: export already in progress")
	// ErrInvalidSession は空のセッション ID
	ErrInvalidSession = errors.New("service: invalid session")
)
