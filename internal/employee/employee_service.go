package employee

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-attendance/internal/engine"
	"go-attendance/internal/shared/apperror"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByCode(ctx context.Context, code string) (EmployeeResponse, error)
	Update(ctx context.Context, code string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, code string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo, logger: zap.L().Named("employee.service")}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	code := engine.NormalizeCode(req.Code)
	if code == "" {
		return EmployeeResponse{}, apperror.RequiredField("Code")
	}

	existing, err := qtx.FindByCode(ctx, code)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return EmployeeResponse{}, err
	}
	if err == nil && existing != nil {
		return EmployeeResponse{}, apperror.New(apperror.CodeConflict, "employee code already exists", http.StatusConflict)
	}

	shiftStart := req.ShiftStart
	if shiftStart == "" {
		shiftStart = "09:00"
	}

	termination, err := parseOptionalDate(req.TerminationDate)
	if err != nil {
		return EmployeeResponse{}, apperror.InvalidField("Termination Date")
	}

	row := &Employee{
		ID:              uuid.New(),
		Code:            code,
		Name:            req.Name,
		Sector:          req.Sector,
		Department:      req.Department,
		Section:         req.Section,
		Branch:          req.Branch,
		ShiftStart:      shiftStart,
		TerminationDate: termination,
	}

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]EmployeeResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) GetByCode(ctx context.Context, code string) (EmployeeResponse, error) {
	row, err := s.repo.FindByCode(ctx, engine.NormalizeCode(code))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, apperror.ErrNotFound
		}
		return EmployeeResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, code string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByCode(ctx, engine.NormalizeCode(code))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, apperror.ErrNotFound
		}
		return EmployeeResponse{}, err
	}

	if req.Name != nil {
		row.Name = *req.Name
	}
	if req.Sector != nil {
		row.Sector = *req.Sector
	}
	if req.Department != nil {
		row.Department = *req.Department
	}
	if req.Section != nil {
		row.Section = *req.Section
	}
	if req.Branch != nil {
		row.Branch = *req.Branch
	}
	if req.ShiftStart != nil {
		row.ShiftStart = *req.ShiftStart
	}
	if req.TerminationDate != nil {
		termination, err := parseOptionalDate(req.TerminationDate)
		if err != nil {
			return EmployeeResponse{}, apperror.InvalidField("Termination Date")
		}
		row.TerminationDate = termination
	}

	if err := qtx.Update(ctx, row); err != nil {
		return EmployeeResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) Delete(ctx context.Context, code string) error {
	return s.repo.Delete(ctx, engine.NormalizeCode(code))
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:         e.ID.String(),
		Code:       e.Code,
		Name:       e.Name,
		Sector:     e.Sector,
		Department: e.Department,
		Section:    e.Section,
		Branch:     e.Branch,
		ShiftStart: e.ShiftStart,
	}
	if e.TerminationDate != nil {
		v := e.TerminationDate.Format("2006-01-02")
		resp.TerminationDate = &v
	}
	return resp
}
