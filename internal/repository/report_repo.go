package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportRepository interface {
	Create(ctx context.Context, report *model.GeneratedReport) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.GeneratedReport, error)
	List(ctx context.Context, orgID uuid.UUID, reportType string, page, limit int) ([]model.GeneratedReport, int64, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *model.GeneratedReport) error {
	return GetDB(ctx, r.db).Create(report).Error
}

func (r *reportRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.GeneratedReport, error) {
	var report model.GeneratedReport
	if err := GetDB(ctx, r.db).First(&report, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) List(ctx context.Context, orgID uuid.UUID, reportType string, page, limit int) ([]model.GeneratedReport, int64, error) {
	var reports []model.GeneratedReport
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.GeneratedReport{}).Where("organization_id = ?", orgID)
	if reportType != "" {
		query = query.Where("report_type = ?", reportType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	fetch := db.Where("organization_id = ?", orgID)
	if reportType != "" {
		fetch = fetch.Where("report_type = ?", reportType)
	}
	if err := fetch.Order("created_at desc").Offset(offset).Limit(limit).Find(&reports).Error; err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}
