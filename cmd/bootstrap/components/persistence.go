package components

import (
	"meeting-room-booking/internal/infra/cache"
	"meeting-room-booking/internal/infra/readstore"
	sqlc "meeting-room-booking/internal/infra/sqlc/generated"
	"meeting-room-booking/internal/infra/uow"
	"meeting-room-booking/internal/pkg/config"
	"meeting-room-booking/internal/usecase/commands"
	"meeting-room-booking/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	cacheModule,
	uowModule,
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Room
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.RoomReadQueries)),
		),
		readstore.NewRoomReadStore,
		// Reservation
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.ReservationReadQueries)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
		),
	),
)

var cacheModule = fx.Module("persistence/cache",
	fx.Provide(
		NewRoomCache,
		fx.Annotate(
			func(c *cache.RoomCache) *cache.RoomCache { return c },
			fx.As(new(queries.RoomReadStore)),
			fx.As(new(commands.RoomCacheInvalidator)),
		),
		fx.Annotate(
			NewIdempotencyStore,
			fx.As(new(commands.IdempotencyStore)),
		),
	),
)

var uowModule = fx.Module("persistence/uow",
	fx.Provide(
		uow.NewPostgresUoW,
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}

func NewDBTX(pool *pgxpool.Pool) sqlc.DBTX {
	return pool
}

// NewRoomCache fronts the Postgres room read store with Redis.
func NewRoomCache(store *readstore.RoomReadStore, client *redis.Client, cfg config.Config) *cache.RoomCache {
	return cache.NewRoomCache(store, client, cfg.Redis.RoomCacheTTL)
}

func NewIdempotencyStore(client *redis.Client, cfg config.Config) *cache.IdempotencyStore {
	return cache.NewIdempotencyStore(client, cfg.Redis.IdempotencyTTL)
}
