package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"cowork/infras/otel"
	"cowork/infras/postgres"
	"cowork/internal/domains/meetingroom/model"
	"cowork/shared"
	"cowork/shared/constant"
	gDto "cowork/shared/dto"
	gRepo "cowork/shared/repository"

	"github.com/jmoiron/sqlx"
)

var (
	ErrRoomNotFound = errors.New("meeting room not found")
	ErrSlotConflict = errors.New("time slots already booked")
)

// ConflictDetector inspects the active bookings of the same room and date and
// returns what the new booking would collide with.
type ConflictDetector func(existing []model.RoomBooking) []string

type MeetingRoom interface {
	Insert(ctx context.Context, model model.MeetingRoom) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.MeetingRoom, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.MeetingRoom, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type RoomBooking interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.RoomBooking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.RoomBooking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateStrict(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	InsertExclusive(ctx context.Context, booking model.RoomBooking, detect ConflictDetector) ([]string, error)
}

type meetingRoomImpl struct {
	gRepo.Repository[model.MeetingRoom]
	db   *postgres.Connection
	otel otel.Otel
}

func NewMeetingRoom(db *postgres.Connection, otel otel.Otel) MeetingRoom {
	return &meetingRoomImpl{
		Repository: gRepo.NewRepository[model.MeetingRoom](model.EntityMeetingRoom, model.TableMeetingRoom, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type roomBookingImpl struct {
	gRepo.Repository[model.RoomBooking]
	rooms gRepo.Repository[model.MeetingRoom]
	db    *postgres.Connection
	otel  otel.Otel
}

func NewRoomBooking(db *postgres.Connection, otel otel.Otel) RoomBooking {
	return &roomBookingImpl{
		Repository: gRepo.NewRepository[model.RoomBooking](model.EntityRoomBooking, model.TableRoomBooking, model.FieldID, db, otel),
		rooms:      gRepo.NewRepository[model.MeetingRoom](model.EntityMeetingRoom, model.TableMeetingRoom, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// InsertExclusive writes the booking only if detect finds no conflict. The
// meeting room row is locked first, so concurrent bookings of the same room
// are checked and inserted one after another.
func (r *roomBookingImpl) InsertExclusive(ctx context.Context, booking model.RoomBooking, detect ConflictDetector) (conflicts []string, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room_booking.InsertExclusive")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		room, err := r.rooms.GetTx(ctx, tx, shared.FilterByID(booking.MeetingRoomID, model.FieldID, model.TableMeetingRoom), true)
		if err != nil {
			return err
		}

		if room.ID == constant.Empty {
			return ErrRoomNotFound
		}

		existing, err := r.GetAllTx(ctx, tx, ActiveOn(booking.MeetingRoomID, booking.BookingDate.Format(constant.DayFormat)))
		if err != nil {
			return err
		}

		conflicts = detect(existing)
		if len(conflicts) > 0 {
			return ErrSlotConflict
		}

		return r.InsertTx(ctx, tx, booking)
	})
	if err != nil {
		return conflicts, fmt.Errorf("failed to insert room booking: %w", err)
	}

	return nil, nil
}

// ActiveOn selects the bookings of a room on a date that still hold their slots.
func ActiveOn(roomID, date string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldMeetingRoomID, Value: roomID, Operator: gDto.FilterOperatorEq, Table: model.TableRoomBooking},
			gDto.Filter{Field: model.FieldBookingDate, Value: date, Operator: gDto.FilterOperatorEq, Table: model.TableRoomBooking},
			gDto.Filter{Field: model.FieldStatus, Value: model.ActiveStatuses, Operator: gDto.FilterOperatorIn, Table: model.TableRoomBooking},
		},
	}
}
