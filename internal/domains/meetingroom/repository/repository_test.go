package repository_test

import (
	"context"
	"testing"
	"time"

	"cowork/infras/otel/mocks"
	"cowork/infras/postgres"
	"cowork/internal/domains/meetingroom/model"
	"cowork/internal/domains/meetingroom/repository"
	"cowork/internal/domains/meetingroom/slot"
	"cowork/shared"
	gRepo "cowork/shared/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	lockRoomQuery   = `SELECT .+ FROM meeting_rooms .*WHERE .*meeting_rooms\.id = \$1.*FOR UPDATE`
	activeSlotQuery = `SELECT .+ FROM room_bookings .*WHERE .*room_bookings\.meeting_room_id = \$1.*room_bookings\.status IN`
	insertQuery     = `INSERT INTO room_bookings`
	verifyQuery     = `UPDATE room_bookings SET .+ WHERE \(room_bookings\.id = \$\d+ AND room_bookings\.status = \$\d+\)`
)

func newRoomBookingRepository(t *testing.T) (repository.RoomBooking, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { _ = mockDB.Close() })

	db := sqlx.NewDb(mockDB, "postgres")

	return repository.NewRoomBooking(&postgres.Connection{Read: db, Write: db}, mocks.NewOtel()), mock
}

func hourlyBooking(slots ...string) model.RoomBooking {
	return model.RoomBooking{
		ID:            "booking-new",
		MeetingRoomID: "room-1",
		UserID:        "user-1",
		BookingDate:   time.Date(2030, time.March, 4, 0, 0, 0, 0, time.UTC),
		TimeSlots:     slots,
		Duration:      model.DurationHour,
		BookingType:   model.BookingTypeHourly,
		MemberType:    model.MemberTypeNonMember,
		TotalAmount:   590,
		Status:        model.StatusPending,
	}
}

func detectOverlap(booking model.RoomBooking) repository.ConflictDetector {
	return func(existing []model.RoomBooking) []string {
		reservations := make([]slot.Reservation, 0, len(existing))
		for _, other := range existing {
			reservations = append(reservations, slot.Reservation{WholeDay: other.IsWholeDay(), Slots: other.TimeSlots})
		}

		return slot.Conflicts(booking.TimeSlots, booking.IsWholeDay(), reservations)
	}
}

func TestRoomBooking_InsertExclusive(t *testing.T) {
	roomRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "capacity_type"}).AddRow("room-1", "4-6 Seater")
	}

	bookingColumns := []string{"id", "meeting_room_id", "booking_date", "time_slots", "booking_type", "status"}

	tests := []struct {
		name          string
		booking       model.RoomBooking
		setupMock     func(mock sqlmock.Sqlmock)
		wantConflicts []string
		wantErr       error
	}{
		{
			name:    "overlapping pending booking rolls back without insert",
			booking: hourlyBooking("10:00 - 11:00"),
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(lockRoomQuery).WithArgs("room-1").WillReturnRows(roomRows())
				mock.ExpectQuery(activeSlotQuery).WillReturnRows(
					sqlmock.NewRows(bookingColumns).
						AddRow("booking-1", "room-1", time.Date(2030, time.March, 4, 0, 0, 0, 0, time.UTC), `{"10:30 - 11:00"}`, "Hourly", "Pending"),
				)
				mock.ExpectRollback()
			},
			wantConflicts: []string{"10:00 - 11:00"},
			wantErr:       repository.ErrSlotConflict,
		},
		{
			name:    "whole day booking blocks hourly request",
			booking: hourlyBooking("15:00 - 16:00"),
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(lockRoomQuery).WithArgs("room-1").WillReturnRows(roomRows())
				mock.ExpectQuery(activeSlotQuery).WillReturnRows(
					sqlmock.NewRows(bookingColumns).
						AddRow("booking-2", "room-1", time.Date(2030, time.March, 4, 0, 0, 0, 0, time.UTC), nil, "Whole Day", "Confirmed"),
				)
				mock.ExpectRollback()
			},
			wantConflicts: []string{"15:00 - 16:00"},
			wantErr:       repository.ErrSlotConflict,
		},
		{
			name:    "free slot is inserted and committed",
			booking: hourlyBooking("12:00 - 13:00"),
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(lockRoomQuery).WithArgs("room-1").WillReturnRows(roomRows())
				mock.ExpectQuery(activeSlotQuery).WillReturnRows(
					sqlmock.NewRows(bookingColumns).
						AddRow("booking-1", "room-1", time.Date(2030, time.March, 4, 0, 0, 0, 0, time.UTC), `{"10:00 - 11:00"}`, "Hourly", "Confirmed"),
				)
				mock.ExpectExec(insertQuery).WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			},
		},
		{
			name:    "unknown room",
			booking: hourlyBooking("12:00 - 13:00"),
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(lockRoomQuery).WithArgs("room-1").WillReturnRows(sqlmock.NewRows([]string{"id"}))
				mock.ExpectRollback()
			},
			wantErr: repository.ErrRoomNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRoomBookingRepository(t)
			tt.setupMock(mock)

			conflicts, err := repo.InsertExclusive(context.Background(), tt.booking, detectOverlap(tt.booking))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			assert.Equal(t, tt.wantConflicts, conflicts)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRoomBooking_UpdateStrict(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{
			name:     "pending booking is verified",
			affected: 1,
		},
		{
			name:     "booking verified in the meantime",
			affected: 0,
			wantErr:  gRepo.ErrNoRowsAffected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRoomBookingRepository(t)
			mock.ExpectExec(verifyQuery).WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := repo.UpdateStrict(
				context.Background(),
				map[string]any{model.FieldStatus: model.StatusConfirmed},
				shared.FilterByIDInStatus("booking-1", model.FieldID, model.FieldStatus, model.StatusPending, model.TableRoomBooking),
			)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
