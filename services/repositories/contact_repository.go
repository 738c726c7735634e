package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/daffahardhan/portfolio_api/model"
)

// ContactRepository handles contact-form submission persistence
type ContactRepository struct {
	BaseRepository
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (r *ContactRepository) Create(contact *model.Contact) (*model.Contact, error) {
	if contact.ID == "" {
		id, _ := uuid.NewV7()
		contact.ID = id.String()
	}
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = time.Now()
	}

	if err := r.db.Create(contact).Error; err != nil {
		return nil, err
	}
	return contact, nil
}

func (r *ContactRepository) FindAll() ([]model.Contact, error) {
	var contacts []model.Contact
	if err := r.db.Order("created_at DESC").Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *ContactRepository) FindByID(id string) (*model.Contact, error) {
	var contact model.Contact
	if err := r.db.Where("id = ?", id).First(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

// Delete removes a submission by id. gorm reports no error when nothing
// matches, so a zero-row delete is surfaced as ErrRecordNotFound for callers
// that checked existence first and lost the race.
func (r *ContactRepository) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&model.Contact{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ContactRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Contact{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
