package room

import (
	"errors"
	"sort"
	"strings"
	"time"
	_ "time/tzdata"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrEmptyRoomName    = errors.New("room name cannot be empty")
	ErrRoomNameTooLong  = errors.New("room name is too long (max 255 characters)")
	ErrInvalidCapacity  = errors.New("capacity must be positive")
	ErrInvalidTimezone  = errors.New("timezone must be a valid IANA name")
	ErrMissingLocation  = errors.New("location is required")
	ErrEmptyAmenityName = errors.New("amenity name cannot be empty")
)

const (
	MaxRoomNameLength = 255
	DefaultTimezone   = "UTC"
)

type Room struct {
	id         uuid.UUID
	locationID uuid.UUID
	name       string
	capacity   int
	amenities  Amenities
	timezone   string
	active     bool
	createdAt  time.Time
	updatedAt  time.Time
}

func NewRoom(locationID uuid.UUID, name string, capacity int, amenities []string, timezone string, now time.Time) (*Room, error) {
	if locationID == uuid.Nil {
		return nil, ErrMissingLocation
	}
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	set, err := NewAmenities(amenities)
	if err != nil {
		return nil, err
	}
	tz, err := validateTimezone(timezone)
	if err != nil {
		return nil, err
	}

	return &Room{
		id:         uuid.New(),
		locationID: locationID,
		name:       name,
		capacity:   capacity,
		amenities:  set,
		timezone:   tz,
		active:     true,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructRoom(
	id, locationID uuid.UUID,
	name string,
	capacity int,
	amenities []string,
	timezone string,
	active bool,
	createdAt, updatedAt time.Time,
) *Room {
	set, _ := NewAmenities(amenities)
	return &Room{
		id:         id,
		locationID: locationID,
		name:       name,
		capacity:   capacity,
		amenities:  set,
		timezone:   timezone,
		active:     active,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (r *Room) Rename(name string, now time.Time) error {
	name, err := validateName(name)
	if err != nil {
		return err
	}
	r.name = name
	r.updatedAt = now
	return nil
}

func (r *Room) Resize(capacity int, now time.Time) error {
	if capacity <= 0 {
		return ErrInvalidCapacity
	}
	r.capacity = capacity
	r.updatedAt = now
	return nil
}

func (r *Room) ReplaceAmenities(amenities []string, now time.Time) error {
	set, err := NewAmenities(amenities)
	if err != nil {
		return err
	}
	r.amenities = set
	r.updatedAt = now
	return nil
}

func (r *Room) ChangeTimezone(timezone string, now time.Time) error {
	tz, err := validateTimezone(timezone)
	if err != nil {
		return err
	}
	r.timezone = tz
	r.updatedAt = now
	return nil
}

// SetActive toggles bookability. Existing reservations are left untouched.
func (r *Room) SetActive(active bool, now time.Time) {
	if r.active == active {
		return
	}
	r.active = active
	r.updatedAt = now
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyRoomName
	}
	if utf8.RuneCountInString(name) > MaxRoomNameLength {
		return "", ErrRoomNameTooLong
	}
	return name, nil
}

// The timezone is stored as given; only its syntax is checked against the tz database.
func validateTimezone(tz string) (string, error) {
	tz = strings.TrimSpace(tz)
	if tz == "" {
		return DefaultTimezone, nil
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return "", ErrInvalidTimezone
	}
	return tz, nil
}

func (r *Room) ID() uuid.UUID         { return r.id }
func (r *Room) LocationID() uuid.UUID { return r.locationID }
func (r *Room) Name() string          { return r.name }
func (r *Room) Capacity() int         { return r.capacity }
func (r *Room) Amenities() Amenities  { return r.amenities }
func (r *Room) Timezone() string      { return r.timezone }
func (r *Room) IsActive() bool        { return r.active }
func (r *Room) CreatedAt() time.Time  { return r.createdAt }
func (r *Room) UpdatedAt() time.Time  { return r.updatedAt }

// Amenities is a normalized set of lower-case amenity names.
type Amenities struct {
	names []string
}

func NewAmenities(names []string) (Amenities, error) {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			return Amenities{}, ErrEmptyAmenityName
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return Amenities{names: out}, nil
}

func (a Amenities) Has(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	i := sort.SearchStrings(a.names, name)
	return i < len(a.names) && a.names[i] == name
}

func (a Amenities) Slice() []string {
	out := make([]string, len(a.names))
	copy(out, a.names)
	return out
}
