package leave

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-attendance/internal/shared/apperror"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	GetByRange(ctx context.Context, from, to string) ([]LeaveResponse, error)
	Delete(ctx context.Context, id string) error

	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	GetHolidays(ctx context.Context, from, to string) ([]HolidayResponse, error)
	DeleteHoliday(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo, logger: zap.L().Named("leave.service")}
}

func (s *service) Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error) {
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return LeaveResponse{}, apperror.InvalidField("Start Date")
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return LeaveResponse{}, apperror.InvalidField("End Date")
	}
	if end.Before(start) {
		return LeaveResponse{}, apperror.InvalidField("End Date")
	}

	scope := req.Scope
	if scope == "" {
		scope = "all"
	}

	row := &Leave{
		ID:         uuid.New(),
		Type:       req.Type,
		Scope:      scope,
		ScopeValue: req.ScopeValue,
		StartDate:  start,
		EndDate:    end,
		Note:       req.Note,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, row); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}
	return mapToLeaveResponse(*row), nil
}

func (s *service) GetByRange(ctx context.Context, from, to string) ([]LeaveResponse, error) {
	start, end, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.FindOverlappingRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	res := make([]LeaveResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToLeaveResponse(r)
	}
	return res, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.InvalidField("Id")
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return HolidayResponse{}, apperror.InvalidField("Date")
	}

	row := &OfficialHoliday{
		ID:   uuid.New(),
		Date: date,
		Name: req.Name,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return HolidayResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).CreateHoliday(ctx, row); err != nil {
		s.logger.Error("create holiday persist failed", zap.Error(err))
		return HolidayResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return HolidayResponse{}, err
	}
	return mapToHolidayResponse(*row), nil
}

func (s *service) GetHolidays(ctx context.Context, from, to string) ([]HolidayResponse, error) {
	start, end, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.FindHolidaysInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	res := make([]HolidayResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToHolidayResponse(r)
	}
	return res, nil
}

func (s *service) DeleteHoliday(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.InvalidField("Id")
	}
	return s.repo.DeleteHoliday(ctx, id)
}

func parseRange(from, to string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", from)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.InvalidField("From")
	}
	end, err := time.Parse("2006-01-02", to)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.InvalidField("To")
	}
	return start, end, nil
}

func mapToLeaveResponse(l Leave) LeaveResponse {
	return LeaveResponse{
		ID:         l.ID.String(),
		Type:       l.Type,
		Scope:      l.Scope,
		ScopeValue: l.ScopeValue,
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		Note:       l.Note,
	}
}

func mapToHolidayResponse(h OfficialHoliday) HolidayResponse {
	return HolidayResponse{
		ID:   h.ID.String(),
		Date: h.Date.Format("2006-01-02"),
		Name: h.Name,
	}
}
