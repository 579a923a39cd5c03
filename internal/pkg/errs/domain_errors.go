package errs

import "errors"

// Domain-specific sentinel errors for CQRS usecase layers
var (
	// Room errors
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomInactive = errors.New("room is inactive")

	// Reservation errors
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrReservationConflict  = errors.New("reservation conflict")
	ErrReservationCanceled  = errors.New("reservation is canceled")
	ErrDuplicateReservation = errors.New("duplicate reservation")
	ErrInvalidWindow        = errors.New("invalid time window")

	// Search outcome, distinct from the not-found errors above
	ErrNoSlotAvailable = errors.New("no slot available")

	// Authorization
	ErrForbidden = errors.New("forbidden")

	// Idempotency errors
	ErrIdempotencyInProgress  = errors.New("idempotency in progress")
	ErrIdempotencyCheckFailed = errors.New("idempotency check failed")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")
	ErrInvalidCursor    = errors.New("invalid cursor")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
