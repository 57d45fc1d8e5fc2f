package adjustment

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-attendance/internal/engine"
	"go-attendance/internal/shared/apperror"
)

//go:generate mockgen -source=adjustment_service.go -destination=mock/adjustment_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateAdjustmentRequest) (AdjustmentResponse, error)
	GetByRange(ctx context.Context, from, to string) ([]AdjustmentResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo, logger: zap.L().Named("adjustment.service")}
}

func (s *service) Create(ctx context.Context, req CreateAdjustmentRequest) (AdjustmentResponse, error) {
	if !IsKnownType(req.Type) {
		return AdjustmentResponse{}, apperror.InvalidField("Type")
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return AdjustmentResponse{}, apperror.InvalidField("Date")
	}
	code := engine.NormalizeCode(req.EmployeeCode)
	if code == "" {
		return AdjustmentResponse{}, apperror.RequiredField("Employee Code")
	}

	row := &Adjustment{
		ID:           uuid.New(),
		EmployeeCode: code,
		Date:         date,
		Type:         req.Type,
		FromTime:     req.FromTime,
		ToTime:       req.ToTime,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AdjustmentResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, row); err != nil {
		s.logger.Error("create adjustment persist failed", zap.Error(err))
		return AdjustmentResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AdjustmentResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) GetByRange(ctx context.Context, from, to string) ([]AdjustmentResponse, error) {
	start, err := time.Parse("2006-01-02", from)
	if err != nil {
		return nil, apperror.InvalidField("From")
	}
	end, err := time.Parse("2006-01-02", to)
	if err != nil {
		return nil, apperror.InvalidField("To")
	}

	rows, err := s.repo.FindByRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	res := make([]AdjustmentResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.InvalidField("Id")
	}
	return s.repo.Delete(ctx, id)
}

func mapToResponse(a Adjustment) AdjustmentResponse {
	return AdjustmentResponse{
		ID:           a.ID.String(),
		EmployeeCode: a.EmployeeCode,
		Date:         a.Date.Format("2006-01-02"),
		Type:         a.Type,
		FromTime:     a.FromTime,
		ToTime:       a.ToTime,
	}
}
