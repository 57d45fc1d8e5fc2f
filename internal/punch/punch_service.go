package punch

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-attendance/internal/engine"
	"go-attendance/internal/shared/apperror"
)

//go:generate mockgen -source=punch_service.go -destination=mock/punch_service_mock.go -package=mock
type Service interface {
	Import(ctx context.Context, req ImportPunchesRequest) (ImportPunchesResponse, error)
	GetByEmployee(ctx context.Context, employeeCode, from, to string) ([]PunchResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo, logger: zap.L().Named("punch.service")}
}

func (s *service) Import(ctx context.Context, req ImportPunchesRequest) (ImportPunchesResponse, error) {
	rows := make([]Punch, 0, len(req.Punches))
	for _, p := range req.Punches {
		at, err := time.Parse(time.RFC3339, p.PunchDatetime)
		if err != nil {
			return ImportPunchesResponse{}, apperror.InvalidField("Punch Datetime")
		}
		code := engine.NormalizeCode(p.EmployeeCode)
		if code == "" {
			return ImportPunchesResponse{}, apperror.RequiredField("Employee Code")
		}
		rows = append(rows, Punch{
			ID:            uuid.New(),
			EmployeeCode:  code,
			PunchDatetime: at.UTC(),
		})
	}

	inserted, err := s.repo.CreateBatch(ctx, rows)
	if err != nil {
		s.logger.Error("punch import failed", zap.Error(err), zap.Int("count", len(rows)))
		return ImportPunchesResponse{}, err
	}

	s.logger.Info("punch import done",
		zap.Int("received", len(rows)),
		zap.Int64("inserted", inserted),
	)
	return ImportPunchesResponse{
		Imported: int(inserted),
		Skipped:  len(rows) - int(inserted),
	}, nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeCode, from, to string) ([]PunchResponse, error) {
	start, err := time.Parse("2006-01-02", from)
	if err != nil {
		return nil, apperror.InvalidField("From")
	}
	end, err := time.Parse("2006-01-02", to)
	if err != nil {
		return nil, apperror.InvalidField("To")
	}

	rows, err := s.repo.FindByEmployeeAndRange(ctx,
		engine.NormalizeCode(employeeCode), start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	res := make([]PunchResponse, len(rows))
	for i, r := range rows {
		res[i] = PunchResponse{
			ID:            r.ID.String(),
			EmployeeCode:  r.EmployeeCode,
			PunchDatetime: r.PunchDatetime.Format(time.RFC3339),
		}
	}
	return res, nil
}
