//go:build unit || e2e

// Package memstore is an in-memory unit of work and read side for usecase
// tests. Commits enforce the same no-overlap rule as the reservations
// exclusion constraint and fail with infra.KindConflict.
package memstore

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"meeting-room-booking/internal/domain/reservation"
	"meeting-room-booking/internal/domain/room"
	"meeting-room-booking/internal/domain/schedule"
	"meeting-room-booking/internal/infra"
	"meeting-room-booking/internal/usecase/queries"
	"meeting-room-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var errExclusionViolation = errors.New("conflicting key value violates exclusion constraint \"reservations_no_overlap\"")

type Store struct {
	mu           sync.Mutex
	rooms        map[uuid.UUID]queries.RoomView
	reservations map[uuid.UUID]queries.ReservationView

	locksMu   sync.Mutex
	roomLocks map[uuid.UUID]*sync.Mutex

	// DisableRoomLock makes WithinRoom behave like Within, so racing writers
	// only meet at the commit-time overlap check.
	DisableRoomLock bool
	// BeforeCommit runs after fn and before the commit is validated.
	BeforeCommit func()
}

func New() *Store {
	return &Store{
		rooms:        make(map[uuid.UUID]queries.RoomView),
		reservations: make(map[uuid.UUID]queries.ReservationView),
		roomLocks:    make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *Store) PutRoom(v *queries.RoomView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[v.ID] = *v
}

func (s *Store) PutReservation(v *queries.ReservationView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reservations[v.ID] = *v
}

func (s *Store) Reservation(id uuid.UUID) (*queries.ReservationView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.reservations[id]
	if !ok {
		return nil, false
	}
	return &v, true
}

func (s *Store) Room(id uuid.UUID) (*queries.RoomView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.rooms[id]
	if !ok {
		return nil, false
	}
	return &v, true
}

// LiveCount returns the number of non-canceled reservations on a room.
func (s *Store) LiveCount(roomID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, v := range s.reservations {
		if v.RoomID == roomID && isLive(v.Status) {
			n++
		}
	}
	return n
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return s.run(ctx, fn)
}

func (s *Store) WithinRoom(ctx context.Context, roomID uuid.UUID, fn func(ctx context.Context, tx shared.Tx) error) error {
	if !s.DisableRoomLock {
		l := s.roomLock(roomID)
		l.Lock()
		defer l.Unlock()
	}
	return s.run(ctx, fn)
}

func (s *Store) CommandReads() shared.CommandReads {
	return &reads{store: s}
}

// Rooms exposes the room read side.
func (s *Store) Rooms() queries.RoomReadStore {
	return roomReadStore{store: s}
}

// Reservations exposes the reservation read side.
func (s *Store) Reservations() queries.ReservationReadStore {
	return reservationReadStore{store: s}
}

func (s *Store) roomLock(roomID uuid.UUID) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.roomLocks[roomID]
	if !ok {
		l = &sync.Mutex{}
		s.roomLocks[roomID] = l
	}
	return l
}

func (s *Store) run(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := &memTx{
		store:        s,
		rooms:        make(map[uuid.UUID]queries.RoomView),
		reservations: make(map[uuid.UUID]queries.ReservationView),
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if s.BeforeCommit != nil {
		s.BeforeCommit()
	}
	return s.commit(tx)
}

func (s *Store) commit(tx *memTx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, pending := range tx.reservations {
		if !isLive(pending.Status) {
			continue
		}
		for id, existing := range s.reservations {
			if id == pending.ID || existing.RoomID != pending.RoomID || !isLive(existing.Status) {
				continue
			}
			if overlaps(existing.Start, existing.End, pending.Start, pending.End) {
				return infra.NewRepoErr(infra.KindConflict, "reservation overlaps an existing one", errExclusionViolation)
			}
		}
	}

	for id, v := range tx.rooms {
		s.rooms[id] = v
	}
	for id, v := range tx.reservations {
		s.reservations[id] = v
	}
	return nil
}

// lookupReservation sees the transaction's own writes first.
func (s *Store) lookupReservation(tx *memTx, id uuid.UUID) (queries.ReservationView, bool) {
	if tx != nil {
		if v, ok := tx.reservations[id]; ok {
			return v, true
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.reservations[id]
	return v, ok
}

func (s *Store) lookupRoom(tx *memTx, id uuid.UUID) (queries.RoomView, bool) {
	if tx != nil {
		if v, ok := tx.rooms[id]; ok {
			return v, true
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.rooms[id]
	return v, ok
}

func (s *Store) liveOverlapping(tx *memTx, roomID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) []*queries.ReservationView {
	merged := make(map[uuid.UUID]queries.ReservationView)
	s.mu.Lock()
	for id, v := range s.reservations {
		merged[id] = v
	}
	s.mu.Unlock()
	if tx != nil {
		for id, v := range tx.reservations {
			merged[id] = v
		}
	}

	out := make([]*queries.ReservationView, 0)
	for _, v := range merged {
		if v.RoomID != roomID || !isLive(v.Status) {
			continue
		}
		if excludeID != nil && v.ID == *excludeID {
			continue
		}
		if !overlaps(v.Start, v.End, start, end) {
			continue
		}
		v := v
		out = append(out, &v)
	}
	sortByStartID(out)
	return out
}

type memTx struct {
	store        *Store
	rooms        map[uuid.UUID]queries.RoomView
	reservations map[uuid.UUID]queries.ReservationView
}

func (t *memTx) Reservations() shared.ReservationRepository {
	return reservationRepo{tx: t}
}

func (t *memTx) Rooms() shared.RoomRepository {
	return roomRepo{tx: t}
}

func (t *memTx) Reads() shared.CommandReads {
	return &reads{store: t.store, tx: t}
}

type reservationRepo struct {
	tx *memTx
}

func (r reservationRepo) Create(_ context.Context, res *reservation.Reservation) error {
	if _, exists := r.tx.store.lookupReservation(r.tx, res.ID()); exists {
		return infra.NewRepoErr(infra.KindDuplicateKey, "reservation already exists", nil)
	}
	if _, ok := r.tx.store.lookupRoom(r.tx, res.RoomID()); !ok {
		return infra.NewRepoErr(infra.KindForeignKeyViolated, "room does not exist", nil)
	}
	r.tx.reservations[res.ID()] = reservationToView(res)
	return nil
}

func (r reservationRepo) Update(_ context.Context, res *reservation.Reservation) error {
	if _, exists := r.tx.store.lookupReservation(r.tx, res.ID()); !exists {
		return infra.NewRepoErr(infra.KindNotFound, "reservation not found", nil)
	}
	r.tx.reservations[res.ID()] = reservationToView(res)
	return nil
}

type roomRepo struct {
	tx *memTx
}

func (r roomRepo) Create(_ context.Context, rm *room.Room) error {
	if _, exists := r.tx.store.lookupRoom(r.tx, rm.ID()); exists {
		return infra.NewRepoErr(infra.KindDuplicateKey, "room already exists", nil)
	}
	r.tx.rooms[rm.ID()] = roomToView(rm)
	return nil
}

func (r roomRepo) Update(_ context.Context, rm *room.Room) error {
	if _, exists := r.tx.store.lookupRoom(r.tx, rm.ID()); !exists {
		return infra.NewRepoErr(infra.KindNotFound, "room not found", nil)
	}
	r.tx.rooms[rm.ID()] = roomToView(rm)
	return nil
}

type reads struct {
	store *Store
	tx    *memTx
}

func (r *reads) RoomByID(_ context.Context, id uuid.UUID) (*shared.RoomSnapshot, error) {
	v, ok := r.store.lookupRoom(r.tx, id)
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "room not found", nil)
	}
	return &shared.RoomSnapshot{
		ID:         v.ID,
		LocationID: v.LocationID,
		Name:       v.Name,
		Capacity:   v.Capacity,
		Amenities:  append([]string(nil), v.Amenities...),
		Timezone:   v.Timezone,
		Active:     v.Active,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}, nil
}

func (r *reads) ReservationByID(_ context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	v, ok := r.store.lookupReservation(r.tx, id)
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "reservation not found", nil)
	}
	return toSnapshot(&v), nil
}

func (r *reads) LiveReservationsOverlapping(
	_ context.Context,
	roomID uuid.UUID,
	window schedule.TimeWindow,
	excludeID *uuid.UUID,
) ([]*shared.ReservationSnapshot, error) {
	rows := r.store.liveOverlapping(r.tx, roomID, window.Start(), window.End(), excludeID)
	out := make([]*shared.ReservationSnapshot, len(rows))
	for i, v := range rows {
		out[i] = toSnapshot(v)
	}
	return out, nil
}

type roomReadStore struct {
	store *Store
}

func (r roomReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.RoomView, error) {
	v, ok := r.store.lookupRoom(nil, id)
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "room not found", nil)
	}
	return &v, nil
}

func (r roomReadStore) Search(_ context.Context, criteria room.Criteria, limit int32) ([]*queries.RoomView, error) {
	r.store.mu.Lock()
	all := make([]queries.RoomView, 0, len(r.store.rooms))
	for _, v := range r.store.rooms {
		all = append(all, v)
	}
	r.store.mu.Unlock()

	out := make([]*queries.RoomView, 0, len(all))
	for _, v := range all {
		amenities, err := room.NewAmenities(v.Amenities)
		if err != nil {
			return nil, infra.NewRepoErr(infra.KindDBFailure, "stored room has invalid amenities", err)
		}
		if !criteria.Satisfies(v.LocationID, v.Capacity, v.Active, amenities) {
			continue
		}
		v := v
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > int(limit) {
		out = out[:limit]
	}
	return out, nil
}

type reservationReadStore struct {
	store *Store
}

func (r reservationReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	v, ok := r.store.lookupReservation(nil, id)
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "reservation not found", nil)
	}
	return &v, nil
}

func (r reservationReadStore) FindLiveOverlapping(
	_ context.Context,
	roomID uuid.UUID,
	start, end time.Time,
	excludeID *uuid.UUID,
) ([]*queries.ReservationView, error) {
	return r.store.liveOverlapping(nil, roomID, start, end, excludeID), nil
}

func (r reservationReadStore) FindByOwnerFirstPage(_ context.Context, ownerID uuid.UUID, limit int32) ([]*queries.ReservationView, error) {
	rows := r.byOwner(ownerID, func(*queries.ReservationView) bool { return true })
	return truncate(rows, limit), nil
}

func (r reservationReadStore) FindByOwnerKeyset(
	_ context.Context,
	ownerID uuid.UUID,
	afterStart time.Time,
	afterID uuid.UUID,
	limit int32,
) ([]*queries.ReservationView, error) {
	rows := r.byOwner(ownerID, func(v *queries.ReservationView) bool {
		if v.Start.Equal(afterStart) {
			return v.ID.String() > afterID.String()
		}
		return v.Start.After(afterStart)
	})
	return truncate(rows, limit), nil
}

func (r reservationReadStore) byOwner(ownerID uuid.UUID, keep func(*queries.ReservationView) bool) []*queries.ReservationView {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*queries.ReservationView, 0)
	for _, v := range r.store.reservations {
		if v.OwnerID != ownerID {
			continue
		}
		v := v
		if keep(&v) {
			out = append(out, &v)
		}
	}
	sortByStartID(out)
	return out
}

func truncate(rows []*queries.ReservationView, limit int32) []*queries.ReservationView {
	if limit > 0 && len(rows) > int(limit) {
		return rows[:limit]
	}
	return rows
}

func sortByStartID(rows []*queries.ReservationView) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Start.Equal(rows[j].Start) {
			return rows[i].ID.String() < rows[j].ID.String()
		}
		return rows[i].Start.Before(rows[j].Start)
	})
}

func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

func isLive(status string) bool {
	return reservation.Status(status).IsLive()
}

func reservationToView(res *reservation.Reservation) queries.ReservationView {
	return queries.ReservationView{
		ID:          res.ID(),
		RoomID:      res.RoomID(),
		OwnerID:     res.OwnerID(),
		Start:       res.Window().Start(),
		End:         res.Window().End(),
		Title:       res.Title().String(),
		Description: res.Description().Ptr(),
		Status:      res.Status().String(),
		CreatedAt:   res.CreatedAt(),
		UpdatedAt:   res.UpdatedAt(),
	}
}

func roomToView(rm *room.Room) queries.RoomView {
	return queries.RoomView{
		ID:         rm.ID(),
		LocationID: rm.LocationID(),
		Name:       rm.Name(),
		Capacity:   rm.Capacity(),
		Amenities:  rm.Amenities().Slice(),
		Timezone:   rm.Timezone(),
		Active:     rm.IsActive(),
		CreatedAt:  rm.CreatedAt(),
		UpdatedAt:  rm.UpdatedAt(),
	}
}

func toSnapshot(v *queries.ReservationView) *shared.ReservationSnapshot {
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
