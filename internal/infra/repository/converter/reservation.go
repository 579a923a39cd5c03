package converter

import (
	"meeting-room-booking/internal/domain/reservation"
	sqlc "meeting-room-booking/internal/infra/sqlc/generated"
	"meeting-room-booking/internal/pkg/pgconv"
)

func ReservationToCreateParams(res *reservation.Reservation) sqlc.CreateReservationParams {
	return sqlc.CreateReservationParams{
		ID:          res.ID(),
		RoomID:      res.RoomID(),
		OwnerID:     res.OwnerID(),
		StartsAt:    pgconv.TimeToPgtype(res.Window().Start()),
		EndsAt:      pgconv.TimeToPgtype(res.Window().End()),
		Title:       res.Title().String(),
		Description: pgconv.StringPtrToPgtype(res.Description().Ptr()),
		Status:      res.Status().String(),
		CreatedAt:   pgconv.TimeToPgtype(res.CreatedAt()),
		UpdatedAt:   pgconv.TimeToPgtype(res.UpdatedAt()),
	}
}

func ReservationToUpdateParams(res *reservation.Reservation) sqlc.UpdateReservationParams {
	return sqlc.UpdateReservationParams{
		ID:          res.ID(),
		StartsAt:    pgconv.TimeToPgtype(res.Window().Start()),
		EndsAt:      pgconv.TimeToPgtype(res.Window().End()),
		Title:       res.Title().String(),
		Description: pgconv.StringPtrToPgtype(res.Description().Ptr()),
		Status:      res.Status().String(),
		UpdatedAt:   pgconv.TimeToPgtype(res.UpdatedAt()),
	}
}
