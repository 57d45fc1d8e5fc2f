package rule

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-attendance/internal/engine"
	"go-attendance/internal/shared/apperror"
)

//go:generate mockgen -source=rule_service.go -destination=mock/rule_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateRuleRequest) (RuleResponse, error)
	GetAll(ctx context.Context) ([]RuleResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo, logger: zap.L().Named("rule.service")}
}

func (s *service) Create(ctx context.Context, req CreateRuleRequest) (RuleResponse, error) {
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return RuleResponse{}, apperror.InvalidField("Start Date")
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return RuleResponse{}, apperror.InvalidField("End Date")
	}
	if end.Before(start) {
		return RuleResponse{}, apperror.InvalidField("End Date")
	}

	scope := req.Scope
	if scope == "" {
		scope = "all"
	}

	params := req.Params
	if len(params) == 0 {
		params = json.RawMessage("{}")
	}

	row := &SpecialRule{
		ID:        uuid.New(),
		Scope:     scope,
		RuleType:  req.RuleType,
		StartDate: start,
		EndDate:   end,
		Priority:  req.Priority,
		Params:    params,
	}

	// Round-trip through the engine decoder so a rule that cannot be
	// interpreted is rejected at the door, not at processing time.
	if _, err := row.ToEngine(); err != nil {
		return RuleResponse{}, apperror.Wrap(err, apperror.CodeInvalidInput, "rule params do not match rule type", 400)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RuleResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, row); err != nil {
		s.logger.Error("create rule persist failed", zap.Error(err))
		return RuleResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return RuleResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context) ([]RuleResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]RuleResponse, len(rows))
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

// ToEngineRules converts rows, skipping (and logging) any that no longer
// decode rather than failing a whole processing run.
func ToEngineRules(rows []SpecialRule, logger *zap.Logger) []engine.SpecialRule {
	out := make([]engine.SpecialRule, 0, len(rows))
	for _, row := range rows {
		er, err := row.ToEngine()
		if err != nil {
			logger.Warn("skipping undecodable rule",
				zap.String("rule_id", row.ID.String()),
				zap.Error(err),
			)
			continue
		}
		out = append(out, er)
	}
	return out
}

func mapToResponse(r SpecialRule) RuleResponse {
	return RuleResponse{
		ID:        r.ID.String(),
		Scope:     r.Scope,
		RuleType:  r.RuleType,
		StartDate: r.StartDate.Format("2006-01-02"),
		EndDate:   r.EndDate.Format("2006-01-02"),
		Priority:  r.Priority,
		Params:    r.Params,
	}
}
