package geofence

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=geofence_repo.go -destination=mock/geofence_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, g *Geofence) error
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Geofence, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]Geofence, error)
	Update(ctx context.Context, g *Geofence) error
	Delete(ctx context.Context, companyID, id string) error
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

func (r *repository) Create(ctx context.Context, g *Geofence) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Geofence, error) {
	var g Geofence
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("id = ?", id).
		First(&g).Error
	return &g, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Geofence, error) {
	var rows []Geofence
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, g *Geofence) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("id = ?", id).
		Delete(&Geofence{}).Error
}
