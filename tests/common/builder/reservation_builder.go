//go:build unit || e2e

package builder

import (
	"time"

	"meeting-room-booking/internal/domain/reservation"
	"meeting-room-booking/internal/domain/schedule"
	reqdto "meeting-room-booking/internal/handler/dto/request"
	sqlc "meeting-room-booking/internal/infra/sqlc/generated"
	"meeting-room-booking/internal/usecase/queries"
	"meeting-room-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationBuilder struct {
	ID          uuid.UUID
	RoomID      uuid.UUID
	OwnerID     uuid.UUID
	Start       time.Time
	End         time.Time
	Title       string
	Description *string
	Status      reservation.Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	start := time.Date(2030, 1, 7, 10, 0, 0, 0, time.UTC)
	created := start.Add(-24 * time.Hour)
	return &ReservationBuilder{
		ID:        uuid.New(),
		RoomID:    uuid.New(),
		OwnerID:   uuid.New(),
		Start:     start,
		End:       start.Add(time.Hour),
		Title:     "Weekly sync",
		Status:    reservation.StatusConfirmed,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) WithWindow(start, end time.Time) *ReservationBuilder {
	b.Start, b.End = start, end
	return b
}

// Build methods
func (b *ReservationBuilder) BuildDomain() *reservation.Reservation {
	title, _ := reservation.NewTitle(b.Title)
	desc, _ := reservation.NewDescription(b.Description)
	return reservation.ReconstructReservation(
		b.ID, b.RoomID, b.OwnerID,
		schedule.MustTimeWindow(b.Start, b.End),
		title, desc, b.Status,
		b.CreatedAt, b.UpdatedAt,
	)
}

func (b *ReservationBuilder) BuildInfra() sqlc.Reservations {
	desc := pgtype.Text{}
	if b.Description != nil {
		desc = pgtype.Text{String: *b.Description, Valid: true}
	}
	return sqlc.Reservations{
		ID:          b.ID,
		RoomID:      b.RoomID,
		OwnerID:     b.OwnerID,
		StartsAt:    pgtype.Timestamptz{Time: b.Start, Valid: true},
		EndsAt:      pgtype.Timestamptz{Time: b.End, Valid: true},
		Title:       b.Title,
		Description: desc,
		Status:      b.Status.String(),
		CreatedAt:   pgtype.Timestamptz{Time: b.CreatedAt, Valid: true},
		UpdatedAt:   pgtype.Timestamptz{Time: b.UpdatedAt, Valid: true},
	}
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	return &queries.ReservationView{
		ID:          b.ID,
		RoomID:      b.RoomID,
		OwnerID:     b.OwnerID,
		Start:       b.Start,
		End:         b.End,
		Title:       b.Title,
		Description: b.Description,
		Status:      b.Status.String(),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func (b *ReservationBuilder) BuildSnapshot() *shared.ReservationSnapshot {
	v := b.BuildView()
	return &shared.ReservationSnapshot{
		ID:          v.ID,
		RoomID:      v.RoomID,
		OwnerID:     v.OwnerID,
		Start:       v.Start,
		End:         v.End,
		Title:       v.Title,
		Description: v.Description,
		Status:      v.Status,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		RoomID:      b.RoomID,
		Start:       b.Start,
		End:         b.End,
		Title:       b.Title,
		Description: b.Description,
	}
}
