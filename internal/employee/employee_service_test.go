package employee

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"go-attendance/internal/shared/apperror"
)

type fakeRepo struct {
	byCode map[string]*Employee
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byCode: map[string]*Employee{}}
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, e *Employee) error {
	f.byCode[e.Code] = e
	return nil
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]Employee, error) {
	var out []Employee
	for _, e := range f.byCode {
		out = append(out, *e)
	}
	return out, nil
}
func (f *fakeRepo) FindByCode(ctx context.Context, code string) (*Employee, error) {
	if e, ok := f.byCode[code]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeRepo) Update(ctx context.Context, e *Employee) error {
	f.byCode[e.Code] = e
	return nil
}
func (f *fakeRepo) Delete(ctx context.Context, code string) error {
	delete(f.byCode, code)
	return nil
}

func TestService_Create_NormalizesCodeAndDefaultsShift(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeRepo()
	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Create(context.Background(), CreateEmployeeRequest{
		Code: "  031 ",
		Name: "أحمد حسن",
	})
	assert.NoError(t, err)
	assert.Equal(t, "31", resp.Code)
	assert.Equal(t, "09:00", resp.ShiftStart)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_DuplicateCodeConflict(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeRepo()
	repo.byCode["31"] = &Employee{Code: "31", Name: "أحمد"}
	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), CreateEmployeeRequest{
		Code: "031",
		Name: "آخر",
	})
	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetByCode_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, newFakeRepo())

	_, err := svc.GetByCode(context.Background(), "99")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestService_Update_PartialFields(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := newFakeRepo()
	repo.byCode["31"] = &Employee{Code: "31", Name: "أحمد", Sector: "المبيعات", ShiftStart: "09:00"}
	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()

	newShift := "08:00"
	resp, err := svc.Update(context.Background(), "031", UpdateEmployeeRequest{
		ShiftStart: &newShift,
	})
	assert.NoError(t, err)
	assert.Equal(t, "08:00", resp.ShiftStart)
	assert.Equal(t, "المبيعات", resp.Sector)
	assert.NoError(t, mock.ExpectationsWereMet())
}
