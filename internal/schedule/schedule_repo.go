package schedule

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=schedule_repo.go -destination=mock/schedule_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *ScheduleEvent) error
	FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]ScheduleEvent, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	db := r.db.Session(&gorm.Session{NewDB: true})
	db.Statement.ConnPool = tx
	return &repository{db: db, tx: tx}
}

func (r *repository) Create(ctx context.Context, e *ScheduleEvent) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// FindAllByEmployee returns the full per-employee history in insertion
// order: event_time ascending with created_at as the tie break, so the
// ledger's "later insertion wins" rule holds for identical timestamps.
func (r *repository) FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]ScheduleEvent, error) {
	var rows []ScheduleEvent
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Order("event_time ASC, created_at ASC").
		Find(&rows).Error
	return rows, err
}
