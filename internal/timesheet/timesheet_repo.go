package timesheet

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=timesheet_repo.go -destination=mock/timesheet_repo_mock.go -package=mock
type Repository interface {
	AddMinutes(ctx context.Context, companyID, employeeID uuid.UUID, workDate time.Time, minutes int) error
	FindByEmployeeSince(ctx context.Context, companyID, employeeID string, since time.Time) ([]TimesheetDay, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// AddMinutes upserts the daily row, accumulating on conflict. The
// unique key is (company_id, employee_id, work_date).
func (r *repository) AddMinutes(ctx context.Context, companyID, employeeID uuid.UUID, workDate time.Time, minutes int) error {
	row := TimesheetDay{
		ID:           uuid.New(),
		CompanyID:    companyID,
		EmployeeID:   employeeID,
		WorkDate:     workDate,
		TotalMinutes: minutes,
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "company_id"},
			{Name: "employee_id"},
			{Name: "work_date"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_minutes": gorm.Expr("timesheet_days.total_minutes + ?", minutes),
			"updated_at":    gorm.Expr("NOW()"),
		}),
	}).Create(&row).Error
}

func (r *repository) FindByEmployeeSince(ctx context.Context, companyID, employeeID string, since time.Time) ([]TimesheetDay, error) {
	var rows []TimesheetDay
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Where("work_date >= ?", since.Format("2006-01-02")).
		Order("work_date DESC").
		Find(&rows).Error
	return rows, err
}
