package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"cowork/config"
	"cowork/infras/otel/mocks"
	s3Mocks "cowork/infras/s3/mocks"
	bookingMocks "cowork/internal/domains/booking/mocks"
	spaceMocks "cowork/internal/domains/space/mocks"
	"cowork/internal/domains/space/model"
	"cowork/internal/domains/space/model/dto"
	"cowork/internal/domains/space/service"
	cacheMocks "cowork/shared/cache/mocks"
	"cowork/shared/constant"
	gDto "cowork/shared/dto"
	"cowork/shared/failure"
	"cowork/shared/upload"
)

type fixture struct {
	repo     *spaceMocks.MockSpace
	bookings *bookingMocks.MockBooking
	cache    *cacheMocks.MockRedisCache
	s3       *s3Mocks.MockS3
	svc      service.Space
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "bucket"

	f := &fixture{
		repo:     spaceMocks.NewMockSpace(ctrl),
		bookings: bookingMocks.NewMockBooking(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
		s3:       s3Mocks.NewMockS3(ctrl),
	}

	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, f.bookings, cfg, f.cache, mocks.NewOtel(), f.s3)

	return f
}

func adminContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func image(t *testing.T, name string) *multipart.FileHeader {
	t.Helper()

	header, err := upload.NewFileHeader("images", name, "image/png", []byte("png"))
	require.NoError(t, err)

	return header
}

func cabin() model.Space {
	return model.Space{
		ID:           "space-1",
		SpaceName:    "Executive Cabin",
		Seater:       4,
		Price:        5000,
		GST:          model.GSTPercent,
		FinalPrice:   5900,
		Availability: model.AvailabilityAvailable,
		Images:       pq.StringArray{"https://cdn/space/old.png"},
	}
}

func TestSpaceService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       func(t *testing.T) dto.CreateSpaceRequest
		setupMock func(f *fixture)
		wantErr   bool
	}{
		{
			name: "space and dates stored together",
			req: func(t *testing.T) dto.CreateSpaceRequest {
				return dto.CreateSpaceRequest{
					SpaceName:      "Executive Cabin",
					Price:          5000,
					Availability:   "Soon-ish",
					AvailableDates: []string{"2030-01-01", "2030-01-02", "2030-01-01", "bad"},
					Images:         []*multipart.FileHeader{image(t, "a.png"), image(t, "b.png")},
				}
			},
			setupMock: func(f *fixture) {
				f.s3.EXPECT().Upload(gomock.Any(), model.EntityName, gomock.Any()).Return("https://cdn/space/a.png", nil)
				f.s3.EXPECT().Upload(gomock.Any(), model.EntityName, gomock.Any()).Return("https://cdn/space/b.png", nil)
				f.repo.EXPECT().
					CreateWithDates(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, space model.Space, dates []model.AvailableDate) error {
						assert.InDelta(t, 5900.0, space.FinalPrice, 0.001)
						assert.Equal(t, float64(model.GSTPercent), space.GST)
						assert.Equal(t, model.AvailabilityAvailable, space.Availability)
						assert.Equal(t, pq.StringArray{"https://cdn/space/a.png", "https://cdn/space/b.png"}, space.Images)
						require.Len(t, dates, 2)
						assert.Equal(t, space.ID, dates[0].SpaceID)

						return nil
					})
			},
		},
		{
			name: "uploads removed when the insert fails",
			req: func(t *testing.T) dto.CreateSpaceRequest {
				return dto.CreateSpaceRequest{SpaceName: "Desk", Price: 1000, Images: []*multipart.FileHeader{image(t, "a.png")}}
			},
			setupMock: func(f *fixture) {
				f.s3.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).Return("https://cdn/space/a.png", nil)
				f.repo.EXPECT().CreateWithDates(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))
				f.s3.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantErr: true,
		},
		{
			name: "upload failure stops before the database",
			req: func(t *testing.T) dto.CreateSpaceRequest {
				return dto.CreateSpaceRequest{SpaceName: "Desk", Price: 1000, Images: []*multipart.FileHeader{image(t, "a.png")}}
			},
			setupMock: func(f *fixture) {
				f.s3.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).Return(constant.Empty, errors.New("s3 down"))
				f.repo.EXPECT().CreateWithDates(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(adminContext(), tt.req(t))

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, []string{"2030-01-01", "2030-01-02"}, res.AvailableDates)
		})
	}
}

func TestSpaceService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f *fixture)
		wantCode  int
		wantDates []string
	}{
		{
			name: "cache miss loads dates",
			setupMock: func(f *fixture) {
				f.cache.EXPECT().Get(gomock.Any(), "space:get:space-1", gomock.Any()).Return(errors.New("miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cabin(), nil)
				f.repo.EXPECT().GetDates(gomock.Any(), "space-1").Return([]model.AvailableDate{
					{SpaceID: "space-1", Date: time.Date(2030, time.March, 1, 0, 0, 0, 0, time.UTC)},
				}, nil)
			},
			wantDates: []string{"2030-03-01"},
		},
		{
			name: "not found",
			setupMock: func(f *fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Space{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Get(context.Background(), "space-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantDates, res.AvailableDates)
		})
	}
}

func TestSpaceService_Update(t *testing.T) {
	price := 10000.0
	dates := []string{"2030-05-01"}

	tests := []struct {
		name      string
		req       func(t *testing.T) dto.UpdateSpaceRequest
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name: "price change recomputes the final price",
			req: func(*testing.T) dto.UpdateSpaceRequest {
				return dto.UpdateSpaceRequest{Price: &price}
			},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cabin(), nil)
				f.repo.EXPECT().
					UpdateWithDates(gomock.Any(), "space-1", gomock.Any(), gomock.Nil(), false).
					DoAndReturn(func(_ context.Context, _ string, fields map[string]any, _ []model.AvailableDate, _ bool) error {
						assert.Equal(t, 10000.0, fields[model.FieldPrice])
						assert.InDelta(t, 11800.0, fields[model.FieldFinalPrice], 0.001)
						assert.NotContains(t, fields, model.FieldImages)

						return nil
					})
			},
		},
		{
			name: "dates replaced and images swapped",
			req: func(t *testing.T) dto.UpdateSpaceRequest {
				return dto.UpdateSpaceRequest{
					Availability:   "Available Soon",
					AvailableDates: &dates,
					Images:         []*multipart.FileHeader{image(t, "new.png")},
				}
			},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cabin(), nil)
				f.s3.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).Return("https://cdn/space/new.png", nil)
				f.repo.EXPECT().
					UpdateWithDates(gomock.Any(), "space-1", gomock.Any(), gomock.Len(1), true).
					DoAndReturn(func(_ context.Context, _ string, fields map[string]any, _ []model.AvailableDate, _ bool) error {
						assert.Equal(t, model.AvailabilityAvailableSoon, fields[model.FieldAvailability])
						assert.Equal(t, pq.StringArray{"https://cdn/space/new.png"}, fields[model.FieldImages])

						return nil
					})
				f.s3.EXPECT().KeyFromURL("https://cdn/space/old.png").Return("space/old.png")
				f.s3.EXPECT().Delete(gomock.Any(), "space/old.png").Return(nil)
			},
		},
		{
			name: "unknown space",
			req: func(*testing.T) dto.UpdateSpaceRequest {
				return dto.UpdateSpaceRequest{SpaceName: "Renamed"}
			},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Space{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Update(adminContext(), tt.req(t), "space-1")

			time.Sleep(20 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestSpaceService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name: "free space removed with its images",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cabin(), nil)
				f.bookings.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (bool, error) {
						require.Len(t, filter.Filters, 2)
						status, ok := filter.Filters[1].(gDto.Filter)
						require.True(t, ok)
						assert.Equal(t, gDto.FilterOperatorIn, status.Operator)

						return false, nil
					})
				f.repo.EXPECT().DeleteWithDates(gomock.Any(), "space-1").Return(nil)
				f.s3.EXPECT().KeyFromURL(gomock.Any()).Return("space/old.png")
				f.s3.EXPECT().Delete(gomock.Any(), "space/old.png").Return(nil)
			},
		},
		{
			name: "active booking blocks deletion",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cabin(), nil)
				f.bookings.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().DeleteWithDates(gomock.Any(), gomock.Any()).Times(0)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "unknown space",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Space{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Delete(adminContext(), "space-1")

			time.Sleep(20 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestParseDates(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "json array", raw: `["2030-01-01","2030-01-02"]`, want: []string{"2030-01-01", "2030-01-02"}},
		{name: "comma separated", raw: "2030-01-01, 2030-01-02", want: []string{"2030-01-01", "2030-01-02"}},
		{name: "empty", raw: "  ", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dto.ParseDates(tt.raw))
		})
	}
}
