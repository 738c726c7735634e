package repositories

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/daffahardhan/portfolio_api/dto"
	"github.com/daffahardhan/portfolio_api/model"
)

// VisitorRepository handles visitor tracking and page-view persistence
type VisitorRepository struct {
	BaseRepository
}

func NewVisitorRepository(db *gorm.DB) *VisitorRepository {
	return &VisitorRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// FindByIP returns the first visitor row matching the IP, or nil when none
// exists. The column is not unique-constrained; first match wins.
func (r *VisitorRepository) FindByIP(ipAddress string) (*model.Visitor, error) {
	var visitor model.Visitor
	err := r.db.Where("ip_address = ?", ipAddress).First(&visitor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &visitor, nil
}

func (r *VisitorRepository) Create(visitor *model.Visitor) (*model.Visitor, error) {
	if visitor.ID == "" {
		id, _ := uuid.NewV7()
		visitor.ID = id.String()
	}

	now := time.Now()
	if visitor.FirstVisit.IsZero() {
		visitor.FirstVisit = now
	}
	if visitor.LastVisit.IsZero() {
		visitor.LastVisit = now
	}

	if err := r.db.Create(visitor).Error; err != nil {
		return nil, err
	}
	return visitor, nil
}

func (r *VisitorRepository) UpdateLastVisit(id string) error {
	return r.db.Model(&model.Visitor{}).Where("id = ?", id).
		Update("last_visit", time.Now()).Error
}

func (r *VisitorRepository) CreatePageView(visitorID, page string) error {
	id, _ := uuid.NewV7()
	view := &model.PageView{
		ID:        id.String(),
		VisitorID: visitorID,
		Page:      page,
		ViewedAt:  time.Now(),
	}
	return r.db.Create(view).Error
}

func (r *VisitorRepository) TotalVisitors() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Visitor{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *VisitorRepository) TotalPageViews() (int64, error) {
	var count int64
	if err := r.db.Model(&model.PageView{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *VisitorRepository) UniqueVisitors() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Visitor{}).
		Distinct("ip_address").Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// TopPages aggregates view counts per page. Ties are broken by page name
// ascending so the ordering is deterministic.
func (r *VisitorRepository) TopPages(limit int) ([]dto.PageViewStats, error) {
	var stats []dto.PageViewStats
	if err := r.db.Model(&model.PageView{}).
		Select("page, COUNT(*) as count").
		Group("page").
		Order("count DESC, page ASC").
		Limit(limit).
		Scan(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// DeleteOlderThan removes visitors whose last visit is strictly before the
// cutoff, cascading to their page views, and returns the visitor count.
func (r *VisitorRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	var ids []string
	if err := r.db.Model(&model.Visitor{}).
		Where("last_visit < ?", cutoff).
		Pluck("id", &ids).Error; err != nil {
		return 0, err
	}

	if len(ids) == 0 {
		return 0, nil
	}

	if err := r.db.Where("visitor_id IN ?", ids).
		Delete(&model.PageView{}).Error; err != nil {
		return 0, err
	}

	res := r.db.Where("id IN ?", ids).Delete(&model.Visitor{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
