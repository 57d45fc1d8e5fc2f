package punch

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	rows     []Punch
	inserted int64
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) CreateBatch(ctx context.Context, punches []Punch) (int64, error) {
	f.rows = append(f.rows, punches...)
	return f.inserted, nil
}
func (f *fakeRepo) FindByRange(ctx context.Context, from, to time.Time) ([]Punch, error) {
	return f.rows, nil
}
func (f *fakeRepo) FindByEmployeeAndRange(ctx context.Context, code string, from, to time.Time) ([]Punch, error) {
	var out []Punch
	for _, r := range f.rows {
		if r.EmployeeCode == code {
			out = append(out, r)
		}
	}
	return out, nil
}

func TestService_Import_NormalizesAndCounts(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{inserted: 1}
	svc := NewService(db, repo)

	resp, err := svc.Import(context.Background(), ImportPunchesRequest{
		Punches: []PunchRecord{
			{EmployeeCode: "031", PunchDatetime: "2025-03-03T06:55:00Z"},
			{EmployeeCode: "031", PunchDatetime: "2025-03-03T06:55:00Z"},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Imported)
	assert.Equal(t, 1, resp.Skipped)

	// Leading zeros are stripped before persisting.
	assert.Equal(t, "31", repo.rows[0].EmployeeCode)
	assert.Equal(t, time.UTC, repo.rows[0].PunchDatetime.Location())
}

func TestService_Import_BadTimestampRejected(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{})

	_, err := svc.Import(context.Background(), ImportPunchesRequest{
		Punches: []PunchRecord{
			{EmployeeCode: "31", PunchDatetime: "03/03/2025 08:55"},
		},
	})
	assert.Error(t, err)
}

func TestService_GetByEmployee_MatchesNormalizedCode(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{inserted: 1}
	svc := NewService(db, repo)

	_, err := svc.Import(context.Background(), ImportPunchesRequest{
		Punches: []PunchRecord{
			{EmployeeCode: "31", PunchDatetime: "2025-03-03T06:55:00Z"},
		},
	})
	assert.NoError(t, err)

	rows, err := svc.GetByEmployee(context.Background(), "031", "2025-03-01", "2025-03-31")
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "31", rows[0].EmployeeCode)
}
