package components

import (
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/infra/db"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/infra/readstore"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/infra/uow"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	uowModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Booking
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingQueries)),
		),
		// Listing
		fx.Annotate(
			readstore.NewListingReadStore,
			fx.As(new(queries.ListingQueries)),
		),
	),
)

var uowModule = fx.Module("persistence/uow",
	fx.Provide(
		uow.NewPostgresUoW,
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
