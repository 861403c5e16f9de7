package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"venue/infras/otel"
	"venue/infras/postgres"
	slotModel "venue/internal/domains/availability/model"
	slotRepo "venue/internal/domains/availability/repository"
	"venue/internal/domains/booking/model"
	"venue/shared"
	"venue/shared/constant"
	gDto "venue/shared/dto"
	"venue/shared/failure"
	gRepo "venue/shared/repository"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type Booking interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Submit(ctx context.Context, booking model.Booking, slot slotModel.Slot) error
	Approve(ctx context.Context, booking model.Booking, fields map[string]any) error
	Reject(ctx context.Context, booking model.Booking, fields map[string]any) error
	Cancel(ctx context.Context, booking model.Booking) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	slots slotRepo.Availability
	db    *postgres.Connection
	otel  otel.Otel
}

func New(db *postgres.Connection, slots slotRepo.Availability, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		slots:      slots,
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction (%s): %w", model.EntityName, err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("failed to rollback transaction")
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction (%s): %w", model.EntityName, err)
	}

	return nil
}

// Submit inserts the booking and reserves its slot in one transaction.
// The UNIQUE(facility_id, slot_date) constraint decides concurrent
// submissions: the loser's insert fails and maps to a slot-unavailable
// conflict, leaving no partial state behind.
func (repo *repositoryImpl) Submit(ctx context.Context, booking model.Booking, slot slotModel.Slot) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Submit")
	defer scope.End()

	err := repo.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := repo.InsertTx(ctx, tx, booking); err != nil {
			return err //nolint:wrapcheck
		}

		return repo.slots.MarkPendingTx(ctx, tx, slot) //nolint:wrapcheck
	})
	if err != nil {
		scope.TraceError(err)

		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			return failure.ConflictRejection(model.ReasonSlotUnavailable, "the requested date has just been reserved") // nolint:wrapcheck
		}

		return err
	}

	return nil
}

// Approve updates the booking and marks its slot booked atomically.
func (repo *repositoryImpl) Approve(ctx context.Context, booking model.Booking, fields map[string]any) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Approve")
	defer scope.End()

	err := repo.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := repo.UpdateTx(ctx, tx, fields, shared.FilterByID(booking.ID, model.FieldID, model.TableName)); err != nil {
			return err //nolint:wrapcheck
		}

		return repo.slots.MarkBookedTx(ctx, tx, booking.FacilityID, booking.BookingDate) //nolint:wrapcheck
	})
	if err != nil {
		scope.TraceError(err)

		return err
	}

	return nil
}

// Reject updates the booking and releases its slot atomically.
func (repo *repositoryImpl) Reject(ctx context.Context, booking model.Booking, fields map[string]any) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Reject")
	defer scope.End()

	err := repo.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := repo.UpdateTx(ctx, tx, fields, shared.FilterByID(booking.ID, model.FieldID, model.TableName)); err != nil {
			return err //nolint:wrapcheck
		}

		return repo.slots.ReleaseTx(ctx, tx, booking.FacilityID, booking.BookingDate) //nolint:wrapcheck
	})
	if err != nil {
		scope.TraceError(err)

		return err
	}

	return nil
}

// Cancel deletes the booking and releases its slot atomically.
func (repo *repositoryImpl) Cancel(ctx context.Context, booking model.Booking) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Cancel")
	defer scope.End()

	err := repo.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := repo.DeleteTx(ctx, tx, shared.FilterByID(booking.ID, model.FieldID, model.TableName)); err != nil {
			return err //nolint:wrapcheck
		}

		return repo.slots.ReleaseTx(ctx, tx, booking.FacilityID, booking.BookingDate) //nolint:wrapcheck
	})
	if err != nil {
		scope.TraceError(err)

		return err
	}

	return nil
}
