package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"cowork/config"
	"cowork/infras/otel/mocks"
	bookingMocks "cowork/internal/domains/booking/mocks"
	bookingModel "cowork/internal/domains/booking/model"
	spaceMocks "cowork/internal/domains/space/mocks"
	spaceModel "cowork/internal/domains/space/model"
	"cowork/internal/jobs"
	cacheMocks "cowork/shared/cache/mocks"
	gDto "cowork/shared/dto"
	"cowork/shared/timezone"
)

func noticeBooking(id, spaceID string, submitted time.Time, days int) bookingModel.Booking {
	return bookingModel.Booking{
		ID:                  id,
		SpaceID:             spaceID,
		Status:              bookingModel.StatusNoticeGiven,
		NoticeGiven:         true,
		NoticeSubmittedDate: &submitted,
		NoticePeriodDays:    days,
	}
}

func TestScheduler_NoticeSweep(t *testing.T) {
	today := timezone.Today()

	tests := []struct {
		name      string
		bookings  []bookingModel.Booking
		listErr   error
		updateErr error
		confirmed map[string]bool
		want      map[string]spaceModel.Availability
		wantErr   bool
	}{
		{
			name: "running and expired notices",
			bookings: []bookingModel.Booking{
				noticeBooking("booking-1", "space-1", today.AddDate(0, 0, -5), 30),
				noticeBooking("booking-2", "space-2", today.AddDate(0, 0, -40), 30),
			},
			want: map[string]spaceModel.Availability{
				"space-1": spaceModel.AvailabilityAvailableSoon,
				"space-2": spaceModel.AvailabilityAvailable,
			},
		},
		{
			name: "space let again after an expired notice keeps its availability",
			bookings: []bookingModel.Booking{
				noticeBooking("booking-1", "space-1", today.AddDate(0, 0, -60), 30),
				noticeBooking("booking-2", "space-2", today.AddDate(0, 0, -60), 30),
			},
			confirmed: map[string]bool{"space-1": true},
			want:      map[string]spaceModel.Availability{"space-2": spaceModel.AvailabilityAvailable},
		},
		{
			name: "running notice outranks an expired one on the same space",
			bookings: []bookingModel.Booking{
				noticeBooking("booking-1", "space-1", today.AddDate(0, 0, -60), 30),
				noticeBooking("booking-4", "space-1", today.AddDate(0, 0, -2), 30),
			},
			want: map[string]spaceModel.Availability{"space-1": spaceModel.AvailabilityAvailableSoon},
		},
		{
			name:     "booking flagged without a submitted date is skipped",
			bookings: []bookingModel.Booking{{ID: "booking-3", SpaceID: "space-3", Status: bookingModel.StatusNoticeGiven}},
			want:     map[string]spaceModel.Availability{},
		},
		{
			name:    "listing fails",
			listErr: errors.New("database error"),
			wantErr: true,
		},
		{
			name:      "update failure does not stop the sweep",
			bookings:  []bookingModel.Booking{noticeBooking("booking-1", "space-1", today, 30)},
			updateErr: errors.New("database error"),
			want:      map[string]spaceModel.Availability{"space-1": spaceModel.AvailabilityAvailableSoon},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			bookings := bookingMocks.NewMockBooking(ctrl)
			spaces := spaceMocks.NewMockSpace(ctrl)
			cache := cacheMocks.NewMockRedisCache(ctrl)

			cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

			bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.bookings, tt.listErr)
			bookings.EXPECT().
				Exist(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (bool, error) {
					space, _ := filter.Filters[0].(gDto.Filter)
					status, _ := filter.Filters[1].(gDto.Filter)
					assert.Equal(t, bookingModel.StatusConfirm, status.Value)

					return tt.confirmed[space.Value.(string)], nil
				}).
				AnyTimes()

			got := map[string]spaceModel.Availability{}

			spaces.EXPECT().
				Update(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) error {
					id, _ := filter.Filters[0].(gDto.Filter)
					availability, _ := fields[spaceModel.FieldAvailability].(spaceModel.Availability)
					got[id.Value.(string)] = availability

					return tt.updateErr
				}).
				AnyTimes()

			cfg := &config.Config{}
			cfg.Jobs.NoticeSweepCron = "@hourly"

			err := jobs.New(cfg, bookings, spaces, cache, mocks.NewOtel()).NoticeSweep(context.Background())

			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScheduler_NoticeSweepOccupancyCheckFails(t *testing.T) {
	ctrl := gomock.NewController(t)

	bookings := bookingMocks.NewMockBooking(ctrl)
	spaces := spaceMocks.NewMockSpace(ctrl)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	bookings.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]bookingModel.Booking{noticeBooking("booking-1", "space-1", timezone.Today().AddDate(0, 0, -60), 30)}, nil)
	bookings.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("database error"))
	spaces.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	cfg := &config.Config{}

	require.NoError(t, jobs.New(cfg, bookings, spaces, cache, mocks.NewOtel()).NoticeSweep(context.Background()))
}

func TestScheduler_StartRejectsBadSchedule(t *testing.T) {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Jobs.NoticeSweepCron = "every now and then"

	scheduler := jobs.New(cfg, bookingMocks.NewMockBooking(ctrl), spaceMocks.NewMockSpace(ctrl), cacheMocks.NewMockRedisCache(ctrl), mocks.NewOtel())

	require.Error(t, scheduler.Start(context.Background()))
}
