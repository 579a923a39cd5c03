package commands

import (
	"context"
	"log/slog"

	"meeting-room-booking/internal/domain/authz"
	"meeting-room-booking/internal/domain/room"
	"meeting-room-booking/internal/infra"
	"meeting-room-booking/internal/pkg/clock"
	"meeting-room-booking/internal/pkg/errs"
	"meeting-room-booking/internal/pkg/patch"
	"meeting-room-booking/internal/usecase/queries"
	"meeting-room-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateRoomInput struct {
	LocationID uuid.UUID
	Name       string
	Capacity   int
	Amenities  []string
	Timezone   string
}

type UpdateRoomInput struct {
	Name      *string
	Capacity  *int
	Amenities *[]string
	Timezone  *string
	Active    *bool
}

type RoomCommands interface {
	CreateRoom(ctx context.Context, actor authz.Context, in CreateRoomInput) (*queries.RoomView, error)
	UpdateRoom(ctx context.Context, actor authz.Context, id uuid.UUID, in UpdateRoomInput) (*queries.RoomView, error)
}

type roomUseCaseImpl struct {
	uow         shared.UnitOfWork
	roomQueries queries.RoomQueries
	cache       RoomCacheInvalidator
	clock       clock.Clock
}

func NewRoomUseCase(
	uow shared.UnitOfWork,
	roomQueries queries.RoomQueries,
	cache RoomCacheInvalidator,
	clk clock.Clock,
) RoomCommands {
	return &roomUseCaseImpl{
		uow:         uow,
		roomQueries: roomQueries,
		cache:       cache,
		clock:       clk,
	}
}

func (uc *roomUseCaseImpl) CreateRoom(ctx context.Context, actor authz.Context, in CreateRoomInput) (*queries.RoomView, error) {
	if err := authz.CanManageRoom(actor, in.LocationID); err != nil {
		return nil, errs.Mark(err, errs.ErrForbidden)
	}

	entity, err := room.NewRoom(in.LocationID, in.Name, in.Capacity, in.Amenities, in.Timezone, uc.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Rooms().Create(ctx, entity)
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return uc.readBack(ctx, entity.ID())
}

func (uc *roomUseCaseImpl) UpdateRoom(ctx context.Context, actor authz.Context, id uuid.UUID, in UpdateRoomInput) (*queries.RoomView, error) {
	snap, err := uc.uow.CommandReads().RoomByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrRoomNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if err := authz.CanManageRoom(actor, snap.LocationID); err != nil {
		return nil, errs.Mark(err, errs.ErrForbidden)
	}

	agg := snap.ToDomain()
	if err := applyRoomChanges(agg, in, uc.clock); err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Rooms().Update(ctx, agg)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrRoomNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if cacheErr := uc.cache.Invalidate(ctx, id); cacheErr != nil {
		slog.Warn("failed to invalidate room cache", "room_id", id.String(), "error", cacheErr.Error())
	}

	return uc.readBack(ctx, id)
}

func applyRoomChanges(agg *room.Room, in UpdateRoomInput, clk clock.Clock) error {
	now := clk.Now()
	if err := patch.Apply(in.Name, func(v string) error { return agg.Rename(v, now) }); err != nil {
		return err
	}
	if err := patch.Apply(in.Capacity, func(v int) error { return agg.Resize(v, now) }); err != nil {
		return err
	}
	if err := patch.Apply(in.Amenities, func(v []string) error { return agg.ReplaceAmenities(v, now) }); err != nil {
		return err
	}
	if err := patch.Apply(in.Timezone, func(v string) error { return agg.ChangeTimezone(v, now) }); err != nil {
		return err
	}
	if patch.Changed(in.Active, agg.IsActive()) {
		agg.SetActive(*in.Active, now)
	}
	return nil
}

func (uc *roomUseCaseImpl) readBack(ctx context.Context, id uuid.UUID) (*queries.RoomView, error) {
	view, err := uc.roomQueries.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}
