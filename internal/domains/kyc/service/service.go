package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cowork/config"
	"cowork/infras/otel"
	"cowork/infras/s3"
	"cowork/internal/domains/kyc/model"
	"cowork/internal/domains/kyc/model/dto"
	"cowork/internal/domains/kyc/repository"
	notificationModel "cowork/internal/domains/notification/model"
	notification "cowork/internal/domains/notification/service"
	"cowork/shared"
	"cowork/shared/constant"
	gDto "cowork/shared/dto"
	"cowork/shared/failure"
	gRepo "cowork/shared/repository"
	"cowork/shared/timezone"
	"cowork/shared/upload"

	"github.com/rs/zerolog/log"
)

type Kyc interface {
	Submit(ctx context.Context, req dto.SubmitKycRequest) (dto.KycResponse, error)
	Verify(ctx context.Context, req dto.VerifyKycRequest, id string) (dto.KycResponse, error)
	GetMine(ctx context.Context) (dto.KycResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetKycsResponse, error)
	Get(ctx context.Context, id string) (dto.KycResponse, error)
}

type serviceImpl struct {
	repo     repository.Kyc
	cfg      *config.Config
	otel     otel.Otel
	s3       s3.S3
	notifier notification.Notifier
}

func New(repo repository.Kyc, cfg *config.Config, otel otel.Otel, s3 s3.S3, notifier notification.Notifier) Kyc {
	return &serviceImpl{
		repo:     repo,
		cfg:      cfg,
		otel:     otel,
		s3:       s3,
		notifier: notifier,
	}
}

// Submit stores a new submission. A rejected one may be resubmitted and is replaced.
func (s *serviceImpl) Submit(ctx context.Context, req dto.SubmitKycRequest) (res dto.KycResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Submit")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.UserFromContext(ctx)

	if missing := req.Missing(); len(missing) > 0 {
		return res, failure.BadRequestFromString(fmt.Sprintf("%s kyc requires %s", strings.ToLower(string(req.Type)), strings.Join(missing, ", "))) // nolint:wrapcheck
	}

	existing, err := s.repo.Get(ctx, shared.FilterByField(model.FieldUserID, user, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get kyc")

		return res, fmt.Errorf("failed to get kyc: %w", err)
	}

	if existing.ID != constant.Empty && existing.Status != model.StatusRejected {
		return res, failure.Conflict(fmt.Sprintf("kyc already submitted and %s", strings.ToLower(string(existing.Status)))) // nolint:wrapcheck
	}

	batch := upload.NewBatch(s.s3, model.EntityName)
	urls := make(map[string]string)

	for field, header := range req.Documents() {
		url, err := batch.Put(ctx, header)
		if err != nil {
			batch.Rollback(ctx)
			log.Error().Err(err).Str("field", field).Msg("failed to upload kyc document")

			return res, fmt.Errorf("failed to upload kyc document: %w", err)
		}

		urls[field] = url
	}

	kyc := req.ToModel(user, urls)

	if existing.ID != constant.Empty {
		err = s.repo.Replace(ctx, existing.ID, kyc)
	} else {
		err = s.repo.Insert(ctx, kyc)
	}

	if err != nil {
		batch.Rollback(ctx)
		log.Error().Err(err).Msg("failed to save kyc")

		return res, failure.FromUniqueViolation(fmt.Errorf("failed to save kyc: %w", err), "kyc already submitted") // nolint:wrapcheck
	}

	if existing.ID != constant.Empty {
		go upload.Remove(context.WithoutCancel(ctx), s.s3, existing.Files()...)
	}

	s.notifier.NotifyAdmin(ctx, notificationModel.Notification{
		Subject:  "New KYC submission",
		Template: notificationModel.TemplateKycSubmitted,
		Data: map[string]any{
			"Name":  kyc.DisplayName(),
			"Email": kyc.Email,
			"Type":  kyc.Type,
		},
	})

	res.FromModel(kyc)

	return res, nil
}

func (s *serviceImpl) Verify(ctx context.Context, req dto.VerifyKycRequest, id string) (res dto.KycResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Verify")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	admin, _ := shared.UserFromContext(ctx)

	status, ok := model.ParseStatus(req.Status)
	if !ok || status == model.StatusPending {
		return res, failure.BadRequestFromString("status must be either 'Approved' or 'Rejected'") // nolint:wrapcheck
	}

	kyc, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	if !kyc.Status.CanTransition(status) {
		return res, failure.Conflict(fmt.Sprintf("kyc is already %s", strings.ToLower(string(kyc.Status)))) // nolint:wrapcheck
	}

	now := timezone.Now()
	update := map[string]any{
		model.FieldStatus:        status,
		model.FieldRemarks:       req.Remarks,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: admin,
	}

	err = s.repo.UpdateStrict(ctx, update, shared.FilterByIDInStatus(id, model.FieldID, model.FieldStatus, model.StatusPending, model.TableName))
	if errors.Is(err, gRepo.ErrNoRowsAffected) {
		return res, failure.Conflict("kyc has already been verified") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to verify kyc")

		return res, fmt.Errorf("failed to verify kyc: %w", err)
	}

	kyc.Status = status
	kyc.Remarks = req.Remarks
	kyc.ModifiedAt = now
	kyc.ModifiedBy = admin

	s.notifier.Notify(ctx, notificationModel.Notification{
		To:       kyc.Email,
		Subject:  "KYC " + strings.ToLower(string(status)),
		Template: notificationModel.TemplateKycVerified,
		Data: map[string]any{
			"Name":    kyc.Name,
			"Type":    kyc.Type,
			"Status":  status,
			"Remarks": req.Remarks,
		},
	})

	res.FromModel(kyc)

	return res, nil
}

func (s *serviceImpl) GetMine(ctx context.Context) (res dto.KycResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.UserFromContext(ctx)

	kyc, err := s.repo.Get(ctx, shared.FilterByField(model.FieldUserID, user, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get kyc")

		return res, fmt.Errorf("failed to get kyc: %w", err)
	}

	if kyc.ID == constant.Empty {
		return res, failure.NotFound("kyc not submitted yet") // nolint:wrapcheck
	}

	res.FromModel(kyc)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetKycsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count kyc")

		return res, fmt.Errorf("failed to count kyc: %w", err)
	}

	kycs, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get kyc list")

		return res, fmt.Errorf("failed to get kyc list: %w", err)
	}

	res.FromModels(kycs, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.KycResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	kyc, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(kyc)

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Kyc, error) {
	kyc, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get kyc")

		return kyc, fmt.Errorf("failed to get kyc: %w", err)
	}

	if kyc.ID == constant.Empty {
		return kyc, failure.NotFound("kyc not found") // nolint:wrapcheck
	}

	return kyc, nil
}
