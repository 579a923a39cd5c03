package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"meeting-room-booking/internal/domain/authz"
	"meeting-room-booking/internal/domain/reservation"
	"meeting-room-booking/internal/domain/schedule"
	"meeting-room-booking/internal/infra"
	"meeting-room-booking/internal/pkg/errs"
	"meeting-room-booking/internal/pkg/patch"
	"meeting-room-booking/internal/usecase/notify"
	"meeting-room-booking/internal/usecase/queries"
	"meeting-room-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateReservationInput struct {
	RoomID      uuid.UUID
	Start       time.Time
	End         time.Time
	Title       string
	Description *string
	// OwnerID books on behalf of another user; nil means the actor.
	OwnerID        *uuid.UUID
	IdempotencyKey *uuid.UUID
}

type CreateReservationResult struct {
	Reservation *queries.ReservationView
	IsReplayed  bool
}

// UpdateReservationInput carries a partial update. Nil fields are left as is;
// an empty Description clears it.
type UpdateReservationInput struct {
	Start       *time.Time
	End         *time.Time
	Title       *string
	Description *string
}

type ReservationCommands interface {
	CreateReservation(ctx context.Context, actor authz.Context, in CreateReservationInput) (*CreateReservationResult, error)
	UpdateReservation(ctx context.Context, actor authz.Context, id uuid.UUID, in UpdateReservationInput) (*queries.ReservationView, error)
	CancelReservation(ctx context.Context, actor authz.Context, id uuid.UUID) (*queries.ReservationView, error)
}

type reservationUseCaseImpl struct {
	uow                shared.UnitOfWork
	services           *reservation.Services
	availability       queries.AvailabilityQueries
	reservationQueries queries.ReservationQueries
	idempotency        IdempotencyStore
	events             EventDispatcher
}

func NewReservationUseCase(
	uow shared.UnitOfWork,
	services *reservation.Services,
	availability queries.AvailabilityQueries,
	reservationQueries queries.ReservationQueries,
	idempotency IdempotencyStore,
	events EventDispatcher,
) ReservationCommands {
	return &reservationUseCaseImpl{
		uow:                uow,
		services:           services,
		availability:       availability,
		reservationQueries: reservationQueries,
		idempotency:        idempotency,
		events:             events,
	}
}

func (uc *reservationUseCaseImpl) CreateReservation(
	ctx context.Context,
	actor authz.Context,
	in CreateReservationInput,
) (*CreateReservationResult, error) {
	window, err := schedule.NewTimeWindow(in.Start, in.End)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidWindow)
	}
	title, err := reservation.NewTitle(in.Title)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	description, err := reservation.NewDescription(in.Description)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	ownerID := actor.UserID
	if in.OwnerID != nil {
		ownerID = *in.OwnerID
	}

	if in.IdempotencyKey != nil {
		replayed, err := uc.claimIdempotencyKey(ctx, *in.IdempotencyKey, actor.UserID, calculateRequestHash(in, ownerID))
		if err != nil {
			return nil, err
		}
		if replayed != nil {
			return &CreateReservationResult{Reservation: replayed, IsReplayed: true}, nil
		}
	}

	view, err := uc.createNewReservation(ctx, actor, in.RoomID, ownerID, window, title, description)
	if err != nil {
		if in.IdempotencyKey != nil {
			if releaseErr := uc.idempotency.Release(ctx, *in.IdempotencyKey, actor.UserID); releaseErr != nil {
				slog.Warn("failed to release idempotency key", "key", in.IdempotencyKey.String(), "error", releaseErr.Error())
			}
		}
		return nil, err
	}

	if in.IdempotencyKey != nil {
		// The reservation is committed; a lost completion only weakens replay.
		if completeErr := uc.idempotency.Complete(ctx, *in.IdempotencyKey, actor.UserID, view.ID); completeErr != nil {
			slog.Warn("failed to complete idempotency key", "key", in.IdempotencyKey.String(), "error", completeErr.Error())
		}
	}

	uc.publish(ctx, notify.ReservationCreated, view)
	return &CreateReservationResult{Reservation: view, IsReplayed: false}, nil
}

func (uc *reservationUseCaseImpl) claimIdempotencyKey(
	ctx context.Context,
	key, actorID uuid.UUID,
	requestHash string,
) (*queries.ReservationView, error) {
	existing, err := uc.idempotency.Begin(ctx, key, actorID, requestHash)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}
	if existing == nil {
		return nil, nil
	}

	if existing.RequestHash != requestHash {
		return nil, errs.ErrDuplicateReservation
	}

	switch existing.Status {
	case IdempotencyStatusCompleted:
		if existing.ReservationID == nil {
			return nil, errs.Mark(errs.New("completed request missing result reservation ID"), errs.ErrIdempotencyCheckFailed)
		}
		return uc.reservationQueries.GetByID(ctx, *existing.ReservationID)
	case IdempotencyStatusProcessing:
		return nil, errs.ErrIdempotencyInProgress
	default:
		return nil, errs.Mark(errs.New("invalid idempotency key status"), errs.ErrIdempotencyCheckFailed)
	}
}

func (uc *reservationUseCaseImpl) createNewReservation(
	ctx context.Context,
	actor authz.Context,
	roomID, ownerID uuid.UUID,
	window schedule.TimeWindow,
	title reservation.Title,
	description reservation.Description,
) (*queries.ReservationView, error) {
	roomSnap, err := uc.loadRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	target := authz.Target{OwnerID: ownerID, LocationID: roomSnap.LocationID}
	if err := authz.CanCreateReservation(actor, target); err != nil {
		return nil, errs.Mark(err, errs.ErrForbidden)
	}
	if !roomSnap.Active {
		return nil, errs.ErrRoomInactive
	}

	entity, err := reservation.NewReservation(uc.services, roomID, ownerID, window, title, description)
	if err != nil {
		return nil, markDomainErr(err)
	}

	err = uc.uow.WithinRoom(ctx, roomID, func(ctx context.Context, tx shared.Tx) error {
		if err := ensureNoOverlap(ctx, tx, roomID, window, nil); err != nil {
			return err
		}
		return tx.Reservations().Create(ctx, entity)
	})
	if err != nil {
		return nil, uc.translateWriteErr(ctx, err, roomID, window, nil)
	}

	return uc.readBack(ctx, entity.ID())
}

func (uc *reservationUseCaseImpl) UpdateReservation(
	ctx context.Context,
	actor authz.Context,
	id uuid.UUID,
	in UpdateReservationInput,
) (*queries.ReservationView, error) {
	var title *reservation.Title
	if in.Title != nil {
		t, err := reservation.NewTitle(*in.Title)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		}
		title = &t
	}
	var description *reservation.Description
	if in.Description != nil {
		d, err := reservation.NewDescription(in.Description)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		}
		description = &d
	}

	snap, err := uc.loadReservation(ctx, uc.uow.CommandReads(), id)
	if err != nil {
		return nil, err
	}
	roomSnap, err := uc.loadRoom(ctx, snap.RoomID)
	if err != nil {
		return nil, err
	}

	target := authz.Target{OwnerID: snap.OwnerID, LocationID: roomSnap.LocationID}
	if err := authz.CanManageReservation(actor, target); err != nil {
		return nil, errs.Mark(err, errs.ErrForbidden)
	}
	if snap.Status == reservation.StatusCanceled.String() {
		return nil, errs.ErrReservationCanceled
	}

	window, err := schedule.NewTimeWindow(
		patch.Coalesce(in.Start, snap.Start),
		patch.Coalesce(in.End, snap.End),
	)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidWindow)
	}
	windowChanged := !window.Start().Equal(snap.Start) || !window.End().Equal(snap.End)
	if windowChanged && !roomSnap.Active {
		return nil, errs.ErrRoomInactive
	}

	err = uc.uow.WithinRoom(ctx, snap.RoomID, func(ctx context.Context, tx shared.Tx) error {
		current, err := uc.loadReservation(ctx, tx.Reads(), id)
		if err != nil {
			return err
		}
		agg, err := current.ToDomain()
		if err != nil {
			return err
		}

		now := uc.services.Clock.Now()
		if windowChanged {
			if err := agg.Reschedule(window, now); err != nil {
				return err
			}
			if err := ensureNoOverlap(ctx, tx, agg.RoomID(), window, &id); err != nil {
				return err
			}
		}
		if title != nil {
			if err := agg.Retitle(*title, now); err != nil {
				return err
			}
		}
		if description != nil {
			if err := agg.Describe(*description, now); err != nil {
				return err
			}
		}
		return tx.Reservations().Update(ctx, agg)
	})
	if err != nil {
		return nil, uc.translateWriteErr(ctx, err, snap.RoomID, window, &id)
	}

	view, err := uc.readBack(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, notify.ReservationUpdated, view)
	return view, nil
}

// CancelReservation is idempotent: cancelling a canceled reservation returns
// it unchanged and emits nothing.
func (uc *reservationUseCaseImpl) CancelReservation(
	ctx context.Context,
	actor authz.Context,
	id uuid.UUID,
) (*queries.ReservationView, error) {
	snap, err := uc.loadReservation(ctx, uc.uow.CommandReads(), id)
	if err != nil {
		return nil, err
	}
	roomSnap, err := uc.loadRoom(ctx, snap.RoomID)
	if err != nil {
		return nil, err
	}

	target := authz.Target{OwnerID: snap.OwnerID, LocationID: roomSnap.LocationID}
	if err := authz.CanManageReservation(actor, target); err != nil {
		return nil, errs.Mark(err, errs.ErrForbidden)
	}

	var changed bool
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := uc.loadReservation(ctx, tx.Reads(), id)
		if err != nil {
			return err
		}
		agg, err := current.ToDomain()
		if err != nil {
			return err
		}
		changed = agg.Cancel(uc.services.Clock.Now())
		if !changed {
			return nil
		}
		return tx.Reservations().Update(ctx, agg)
	})
	if err != nil {
		if errs.Is(err, errs.ErrReservationNotFound) {
			return nil, err
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	view, err := uc.readBack(ctx, id)
	if err != nil {
		return nil, err
	}
	if changed {
		uc.publish(ctx, notify.ReservationCancelled, view)
	}
	return view, nil
}

func ensureNoOverlap(ctx context.Context, tx shared.Tx, roomID uuid.UUID, window schedule.TimeWindow, excludeID *uuid.UUID) error {
	existing, err := tx.Reads().LiveReservationsOverlapping(ctx, roomID, window, excludeID)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		return nil
	}
	conflicts := make([]*queries.ReservationView, len(existing))
	for i, s := range existing {
		conflicts[i] = snapshotToView(s)
	}
	return &ConflictError{Conflicts: conflicts}
}

// translateWriteErr maps a failed transaction to the usecase error taxonomy.
// A storage-level exclusion violation means a writer raced past the
// pre-check, so the conflicts are looked up again to name them.
func (uc *reservationUseCaseImpl) translateWriteErr(
	ctx context.Context,
	err error,
	roomID uuid.UUID,
	window schedule.TimeWindow,
	excludeID *uuid.UUID,
) error {
	var conflictErr *ConflictError
	switch {
	case errs.As(err, &conflictErr):
		return conflictErr
	case infra.IsKind(err, infra.KindConflict):
		conflicts, lookupErr := uc.availability.FindConflicts(ctx, roomID, window.Start(), window.End(), excludeID)
		if lookupErr != nil {
			slog.Warn("failed to look up conflicts after exclusion violation", "room_id", roomID.String(), "error", lookupErr.Error())
			return errs.Mark(err, errs.ErrReservationConflict)
		}
		return &ConflictError{Conflicts: conflicts}
	case errs.Is(err, errs.ErrReservationNotFound):
		return err
	case errs.Is(err, reservation.ErrReservationCanceled),
		errs.Is(err, reservation.ErrWindowInPast):
		return markDomainErr(err)
	default:
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
}

func (uc *reservationUseCaseImpl) loadRoom(ctx context.Context, id uuid.UUID) (*shared.RoomSnapshot, error) {
	snap, err := uc.uow.CommandReads().RoomByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrRoomNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return snap, nil
}

func (uc *reservationUseCaseImpl) loadReservation(ctx context.Context, reads shared.CommandReads, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	snap, err := reads.ReservationByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrReservationNotFound
		}
		return nil, err
	}
	return snap, nil
}

// Read-after-write: the response always comes from the read side
func (uc *reservationUseCaseImpl) readBack(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	view, err := uc.reservationQueries.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (uc *reservationUseCaseImpl) publish(ctx context.Context, eventType notify.EventType, view *queries.ReservationView) {
	uc.events.Dispatch(ctx, notify.Event{
		Type:        eventType,
		Reservation: view,
		OccurredAt:  uc.services.Clock.Now(),
	})
}

func markDomainErr(err error) error {
	switch {
	case errs.Is(err, reservation.ErrWindowInPast):
		return errs.Mark(err, errs.ErrInvalidWindow)
	case errs.Is(err, reservation.ErrReservationCanceled):
		return errs.Mark(err, errs.ErrReservationCanceled)
	default:
		return errs.Mark(err, errs.ErrDomainValidation)
	}
}

func snapshotToView(s *shared.ReservationSnapshot) *queries.ReservationView {
	return &queries.ReservationView{
		ID:          s.ID,
		RoomID:      s.RoomID,
		OwnerID:     s.OwnerID,
		Start:       s.Start,
		End:         s.End,
		Title:       s.Title,
		Description: s.Description,
		Status:      s.Status,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func calculateRequestHash(in CreateReservationInput, ownerID uuid.UUID) string {
	data, _ := json.Marshal(struct {
		RoomID      uuid.UUID `json:"room_id"`
		OwnerID     uuid.UUID `json:"owner_id"`
		Start       time.Time `json:"start"`
		End         time.Time `json:"end"`
		Title       string    `json:"title"`
		Description *string   `json:"description"`
	}{in.RoomID, ownerID, in.Start.UTC(), in.End.UTC(), in.Title, in.Description})
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
