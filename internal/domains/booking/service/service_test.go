package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"cowork/config"
	"cowork/infras/otel/mocks"
	s3Mocks "cowork/infras/s3/mocks"
	bookingMocks "cowork/internal/domains/booking/mocks"
	"cowork/internal/domains/booking/model"
	"cowork/internal/domains/booking/model/dto"
	"cowork/internal/domains/booking/service"
	kycMocks "cowork/internal/domains/kyc/mocks"
	kycModel "cowork/internal/domains/kyc/model"
	notificationMocks "cowork/internal/domains/notification/mocks"
	notificationModel "cowork/internal/domains/notification/model"
	spaceMocks "cowork/internal/domains/space/mocks"
	spaceModel "cowork/internal/domains/space/model"
	userMocks "cowork/internal/domains/user/mocks"
	userModel "cowork/internal/domains/user/model"
	cacheMocks "cowork/shared/cache/mocks"
	"cowork/shared/constant"
	gDto "cowork/shared/dto"
	"cowork/shared/failure"
	gRepo "cowork/shared/repository"
	"cowork/shared/timezone"
	"cowork/shared/upload"
)

type fixture struct {
	repo     *bookingMocks.MockBooking
	spaces   *spaceMocks.MockSpace
	users    *userMocks.MockUser
	kycs     *kycMocks.MockKyc
	cache    *cacheMocks.MockRedisCache
	s3       *s3Mocks.MockS3
	notifier *notificationMocks.MockNotifier
	svc      service.Booking
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "bucket"
	cfg.Booking.DefaultNoticeDays = 30

	f := &fixture{
		repo:     bookingMocks.NewMockBooking(ctrl),
		spaces:   spaceMocks.NewMockSpace(ctrl),
		users:    userMocks.NewMockUser(ctrl),
		kycs:     kycMocks.NewMockKyc(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
		s3:       s3Mocks.NewMockS3(ctrl),
		notifier: notificationMocks.NewMockNotifier(ctrl),
	}

	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, f.spaces, f.users, f.kycs, cfg, f.cache, mocks.NewOtel(), f.s3, f.notifier)

	return f
}

func asUser(id, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func booking(status model.Status) model.Booking {
	return model.Booking{
		ID:        "booking-1",
		UserID:    "user-1",
		SpaceID:   "space-1",
		StartDate: time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2030, time.December, 31, 0, 0, 0, 0, time.UTC),
		Amount:    5900,
		Status:    status,
	}
}

func owner() userModel.User {
	return userModel.User{ID: "user-1", Username: "asha", Email: "asha@example.com"}
}

func TestBookingService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name: "created as pending",
			req:  dto.CreateBookingRequest{SpaceID: "space-1", StartDate: "2030-01-01", EndDate: "2030-06-30", Amount: 5900},
			setupMock: func(f *fixture) {
				f.spaces.EXPECT().Get(gomock.Any(), gomock.Any()).Return(spaceModel.Space{ID: "space-1", Availability: spaceModel.AvailabilityAvailable}, nil)
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, b model.Booking) error {
						assert.Equal(t, model.StatusPending, b.Status)
						assert.Equal(t, "user-1", b.UserID)
						assert.Equal(t, 30, b.NoticePeriodDays)

						return nil
					})
			},
		},
		{
			name: "same day rental",
			req:  dto.CreateBookingRequest{SpaceID: "space-1", StartDate: "2030-01-01", EndDate: "2030-01-01", Amount: 500},
			setupMock: func(f *fixture) {
				f.spaces.EXPECT().Get(gomock.Any(), gomock.Any()).Return(spaceModel.Space{ID: "space-1", Availability: spaceModel.AvailabilityAvailable}, nil)
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, b model.Booking) error {
						assert.True(t, b.StartDate.Equal(b.EndDate))

						return nil
					})
			},
		},
		{
			name:      "end before start",
			req:       dto.CreateBookingRequest{SpaceID: "space-1", StartDate: "2030-06-30", EndDate: "2030-01-01", Amount: 5900},
			setupMock: func(*fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "unknown space",
			req:  dto.CreateBookingRequest{SpaceID: "space-9", StartDate: "2030-01-01", EndDate: "2030-06-30", Amount: 5900},
			setupMock: func(f *fixture) {
				f.spaces.EXPECT().Get(gomock.Any(), gomock.Any()).Return(spaceModel.Space{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "occupied space",
			req:  dto.CreateBookingRequest{SpaceID: "space-1", StartDate: "2030-01-01", EndDate: "2030-06-30", Amount: 5900},
			setupMock: func(f *fixture) {
				f.spaces.EXPECT().Get(gomock.Any(), gomock.Any()).Return(spaceModel.Space{ID: "space-1", Availability: spaceModel.AvailabilityNotAvailable}, nil)
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(asUser("user-1", constant.RoleUser), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, model.StatusPending, res.Status)
		})
	}
}

func TestBookingService_Verify(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.VerifyBookingRequest
		setupMock func(f *fixture)
		wantCode  int
		want      model.Status
	}{
		{
			name: "confirm marks the space occupied and notifies once",
			req:  dto.VerifyBookingRequest{Status: "confirmed"},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusPending), nil)
				f.repo.EXPECT().
					UpdateWithSpace(gomock.Any(), gomock.Any(), gomock.Any(), "space-1", spaceModel.AvailabilityNotAvailable).
					DoAndReturn(func(_ context.Context, fields map[string]any, filter gDto.FilterGroup, _ string, _ spaceModel.Availability) error {
						assert.Equal(t, model.StatusConfirm, fields[model.FieldStatus])

						where, args := filter.GetWhereClause()
						assert.Contains(t, where, "bookings.status = :status")
						assert.Equal(t, model.StatusPending, args[model.FieldStatus])

						return nil
					})
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(owner(), nil)
				f.spaces.EXPECT().Get(gomock.Any(), gomock.Any()).Return(spaceModel.Space{ID: "space-1", SpaceName: "Executive Cabin"}, nil)
				f.notifier.EXPECT().
					Notify(gomock.Any(), gomock.Any()).
					Do(func(_ context.Context, n notificationModel.Notification) {
						assert.Equal(t, "asha@example.com", n.To)
						assert.Equal(t, notificationModel.TemplateBookingVerified, n.Template)
						assert.Equal(t, model.StatusConfirm, n.Data["Status"])
					}).
					Times(1)
			},
			want: model.StatusConfirm,
		},
		{
			name: "reject leaves the space alone",
			req:  dto.VerifyBookingRequest{Status: "reject", Remarks: "documents missing"},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusPending), nil)
				f.repo.EXPECT().UpdateStrict(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.repo.EXPECT().UpdateWithSpace(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(owner(), nil)
				f.spaces.EXPECT().Get(gomock.Any(), gomock.Any()).Return(spaceModel.Space{ID: "space-1"}, nil)
				f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Times(1)
			},
			want: model.StatusRejected,
		},
		{
			name: "second verification is refused",
			req:  dto.VerifyBookingRequest{Status: "Confirm"},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusConfirm), nil)
				f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Times(0)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "concurrent verification that lands second is refused",
			req:  dto.VerifyBookingRequest{Status: "Confirm"},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusPending), nil)
				f.repo.EXPECT().
					UpdateWithSpace(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("failed to update booking: %w", gRepo.ErrNoRowsAffected))
				f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Times(0)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "concurrent rejection that lands second is refused",
			req:  dto.VerifyBookingRequest{Status: "Rejected"},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusPending), nil)
				f.repo.EXPECT().UpdateStrict(gomock.Any(), gomock.Any(), gomock.Any()).Return(gRepo.ErrNoRowsAffected)
				f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Times(0)
			},
			wantCode: http.StatusConflict,
		},
		{
			name:      "notice given is not a verification outcome",
			req:       dto.VerifyBookingRequest{Status: "Notice Given"},
			setupMock: func(*fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "missing booking",
			req:  dto.VerifyBookingRequest{Status: "Confirm"},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "write failure does not notify",
			req:  dto.VerifyBookingRequest{Status: "Confirm"},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusPending), nil)
				f.repo.EXPECT().UpdateWithSpace(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))
				f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Times(0)
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Verify(asUser("admin-1", constant.RoleAdmin), tt.req, "booking-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Status)
		})
	}
}

func TestBookingService_UploadPayment(t *testing.T) {
	screenshot, err := upload.NewFileHeader("payment_screenshot", "paid.png", "image/png", []byte("png"))
	require.NoError(t, err)

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name: "owner uploads while pending",
			ctx:  asUser("user-1", constant.RoleUser),
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusPending), nil)
				f.s3.EXPECT().Upload(gomock.Any(), model.EntityName, gomock.Any()).Return("https://cdn/booking/paid.png", nil)
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, "https://cdn/booking/paid.png", fields[model.FieldPaymentScreenshot])
						assert.NotContains(t, fields, model.FieldStatus)

						return nil
					})
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(owner(), nil)
				f.notifier.EXPECT().NotifyAdmin(gomock.Any(), gomock.Any()).Times(1)
			},
		},
		{
			name: "someone else's booking",
			ctx:  asUser("user-2", constant.RoleUser),
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusPending), nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "already confirmed",
			ctx:  asUser("user-1", constant.RoleUser),
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusConfirm), nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "database failure removes the upload",
			ctx:  asUser("user-1", constant.RoleUser),
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusPending), nil)
				f.s3.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).Return("https://cdn/booking/paid.png", nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))
				f.s3.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.UploadPayment(tt.ctx, dto.UploadPaymentRequest{PaymentScreenshot: screenshot}, "booking-1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, model.StatusPending, res.Status)
			assert.Equal(t, "https://cdn/booking/paid.png", res.PaymentScreenshot)
		})
	}
}

func TestBookingService_SubmitNotice(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.SubmitNoticeRequest
		setupMock func(f *fixture)
		wantCode  int
		wantDays  int
	}{
		{
			name: "owner gives notice with defaults",
			ctx:  asUser("user-1", constant.RoleUser),
			req:  dto.SubmitNoticeRequest{},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusConfirm), nil)
				f.repo.EXPECT().
					UpdateWithSpace(gomock.Any(), gomock.Any(), gomock.Any(), "space-1", spaceModel.AvailabilityAvailableSoon).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup, _ string, _ spaceModel.Availability) error {
						assert.Equal(t, model.StatusNoticeGiven, fields[model.FieldStatus])
						assert.Equal(t, true, fields[model.FieldNoticeGiven])
						assert.Equal(t, 30, fields[model.FieldNoticePeriodDays])

						return nil
					})
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(owner(), nil)
				f.spaces.EXPECT().Get(gomock.Any(), gomock.Any()).Return(spaceModel.Space{ID: "space-1"}, nil)
				f.notifier.EXPECT().NotifyAdmin(gomock.Any(), gomock.Any()).Times(1)
			},
			wantDays: 30,
		},
		{
			name: "admin gives notice with explicit period",
			ctx:  asUser("admin-1", constant.RoleAdmin),
			req:  dto.SubmitNoticeRequest{NoticeSubmittedDate: timezone.Today().Format(constant.DayFormat), NoticePeriodDays: 15},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusConfirm), nil)
				f.repo.EXPECT().UpdateWithSpace(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(owner(), nil)
				f.spaces.EXPECT().Get(gomock.Any(), gomock.Any()).Return(spaceModel.Space{ID: "space-1"}, nil)
				f.notifier.EXPECT().NotifyAdmin(gomock.Any(), gomock.Any()).Times(1)
			},
			wantDays: 15,
		},
		{
			name: "notice given concurrently is refused",
			ctx:  asUser("user-1", constant.RoleUser),
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusConfirm), nil)
				f.repo.EXPECT().
					UpdateWithSpace(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ map[string]any, filter gDto.FilterGroup, _ string, _ spaceModel.Availability) error {
						_, args := filter.GetWhereClause()
						assert.Equal(t, model.StatusConfirm, args[model.FieldStatus])

						return fmt.Errorf("failed to update booking: %w", gRepo.ErrNoRowsAffected)
					})
				f.notifier.EXPECT().NotifyAdmin(gomock.Any(), gomock.Any()).Times(0)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "pending booking cannot give notice",
			ctx:  asUser("user-1", constant.RoleUser),
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusPending), nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "notice already given",
			ctx:  asUser("user-1", constant.RoleUser),
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusNoticeGiven), nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "other user",
			ctx:  asUser("user-2", constant.RoleUser),
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusConfirm), nil)
			},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.SubmitNotice(tt.ctx, tt.req, "booking-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, model.StatusNoticeGiven, res.Status)
			require.NotNil(t, res.Notice)
			assert.Equal(t, tt.wantDays, res.Notice.PeriodDays)
			assert.True(t, res.Notice.InNotice)
			assert.Equal(t, tt.wantDays, res.Notice.DaysRemaining)
		})
	}
}

func TestBookingService_GetActiveNotices(t *testing.T) {
	f := newFixture(t)

	recent := timezone.Today().AddDate(0, 0, -5)
	old := timezone.Today().AddDate(0, 0, -60)

	running := booking(model.StatusNoticeGiven)
	running.ID = "running"
	running.NoticeGiven = true
	running.NoticeSubmittedDate = &recent
	running.NoticePeriodDays = 30

	expired := booking(model.StatusNoticeGiven)
	expired.ID = "expired"
	expired.NoticeGiven = true
	expired.NoticeSubmittedDate = &old
	expired.NoticePeriodDays = 30

	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{running, expired}, nil)

	res, err := f.svc.GetActiveNotices(asUser("admin-1", constant.RoleAdmin))
	require.NoError(t, err)

	require.Len(t, res.Bookings, 1)
	assert.Equal(t, "running", res.Bookings[0].ID)
	assert.Equal(t, 25, res.Bookings[0].Notice.DaysRemaining)
}

func TestBookingService_GetDetails(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name: "owner sees space user and kyc",
			ctx:  asUser("user-1", constant.RoleUser),
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusConfirm), nil)
				f.spaces.EXPECT().Get(gomock.Any(), gomock.Any()).Return(spaceModel.Space{ID: "space-1", SpaceName: "Executive Cabin"}, nil)
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(owner(), nil)
				f.kycs.EXPECT().Get(gomock.Any(), gomock.Any()).Return(kycModel.Kyc{ID: "kyc-1", Type: kycModel.TypeCompany, CompanyName: "Acme", Status: kycModel.StatusApproved}, nil)
			},
		},
		{
			name: "other users are refused",
			ctx:  asUser("user-2", constant.RoleUser),
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusConfirm), nil)
			},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.GetDetails(tt.ctx, "booking-1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			require.NotNil(t, res.Space)
			require.NotNil(t, res.Kyc)
			assert.Equal(t, "Executive Cabin", res.Space.SpaceName)
			assert.Equal(t, "Acme", res.Kyc.Name)
			assert.Equal(t, "asha", res.User.Username)
		})
	}
}
