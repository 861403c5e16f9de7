package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"time"
	"venue/infras/otel"
	"venue/infras/postgres"
	"venue/internal/domains/availability/model"
	"venue/shared/constant"
	gDto "venue/shared/dto"
	gRepo "venue/shared/repository"
	"venue/shared/timezone"

	"github.com/jmoiron/sqlx"
)

type Availability interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Slot, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Slot, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	MarkPendingTx(ctx context.Context, sqltx *sqlx.Tx, slot model.Slot) error
	MarkBookedTx(ctx context.Context, sqltx *sqlx.Tx, facilityID string, date time.Time) error
	ReleaseTx(ctx context.Context, sqltx *sqlx.Tx, facilityID string, date time.Time) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Slot]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Availability {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Slot](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// FilterByFacilityDate selects the single slot row of a facility on a date.
func FilterByFacilityDate(facilityID string, date time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldFacilityID,
				Value:    facilityID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldSlotDate,
				Value:    date.Format(constant.DayFormat),
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}

// MarkPendingTx reserves a date inside the caller's transaction. The
// UNIQUE(facility_id, slot_date) constraint makes the insert the
// compare-and-swap that decides concurrent submissions.
func (repo *repositoryImpl) MarkPendingTx(ctx context.Context, sqltx *sqlx.Tx, slot model.Slot) error {
	slot.Status = model.StatusPending

	return repo.InsertTx(ctx, sqltx, slot) //nolint:wrapcheck
}

func (repo *repositoryImpl) MarkBookedTx(ctx context.Context, sqltx *sqlx.Tx, facilityID string, date time.Time) error {
	fields := map[string]any{
		model.FieldStatus:        model.StatusBooked,
		constant.FieldModifiedAt: timezone.Now(),
	}

	return repo.UpdateTx(ctx, sqltx, fields, FilterByFacilityDate(facilityID, date)) //nolint:wrapcheck
}

// ReleaseTx deletes the slot row, returning the date to available.
func (repo *repositoryImpl) ReleaseTx(ctx context.Context, sqltx *sqlx.Tx, facilityID string, date time.Time) error {
	return repo.DeleteTx(ctx, sqltx, FilterByFacilityDate(facilityID, date)) //nolint:wrapcheck
}
