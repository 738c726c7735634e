package services

import (
	"errors"
	"strings"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/daffahardhan/portfolio_api/dto"
	"github.com/daffahardhan/portfolio_api/model"
	"github.com/daffahardhan/portfolio_api/shared"
)

type contactStore interface {
	Create(contact *model.Contact) (*model.Contact, error)
	FindAll() ([]model.Contact, error)
	FindByID(id string) (*model.Contact, error)
	Delete(id string) error
	Count() (int64, error)
}

type contactNotifier interface {
	SendContactNotification(contact *model.Contact) error
}

// ContactService owns the contact-form workflow: validation, sanitization,
// persistence and the best-effort owner notification. Validation here is
// authoritative; the HTTP middleware performing the same checks only exists
// to reject junk before it reaches this layer.
type ContactService struct {
	context.DefaultService

	store    contactStore
	notifier contactNotifier

	dbErr func(error) error
}

const CONTACT_SVC = "contact_svc"

func (svc ContactService) Id() string {
	return CONTACT_SVC
}

func (svc *ContactService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ContactService) Start() error {
	pg := svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.store = pg.Contacts()
	svc.dbErr = pg.HandleError
	svc.notifier = svc.Service(EMAIL_SVC).(*EmailService)
	return nil
}

// wrapDB classifies and logs a storage error before it is wrapped for the
// client.
func (svc *ContactService) wrapDB(err error) error {
	if svc.dbErr != nil {
		return svc.dbErr(err)
	}
	return err
}

// CreateContact validates and sanitizes the submission, persists it, and
// fires the owner notification in the background. A notification failure
// never fails the submission.
func (svc *ContactService) CreateContact(req dto.CreateContactRequest) (*model.Contact, error) {
	if err := req.Validate(); err != nil {
		return nil, shared.NewBadRequestError(err, dto.FirstValidationMessage(err))
	}

	contact := &model.Contact{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}

	created, err := svc.store.Create(contact)
	if err != nil {
		log.WithError(err).Error("Failed to save contact message")
		return nil, shared.NewInternalError(svc.wrapDB(err), "Failed to save contact message")
	}

	go func(c model.Contact) {
		if err := svc.notifier.SendContactNotification(&c); err != nil {
			log.WithError(err).WithField("contact_id", c.ID).Error("Failed to send contact notification")
		}
	}(*created)

	return created, nil
}

func (svc *ContactService) GetContacts() ([]model.Contact, error) {
	contacts, err := svc.store.FindAll()
	if err != nil {
		return nil, shared.NewInternalError(svc.wrapDB(err), "Failed to fetch contact messages")
	}
	return contacts, nil
}

func (svc *ContactService) GetContact(id string) (*model.Contact, error) {
	contact, err := svc.store.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Contact message not found")
		}
		return nil, shared.NewInternalError(svc.wrapDB(err), "Failed to fetch contact message")
	}
	return contact, nil
}

// DeleteContact removes a submission by id. Deleting an id that does not
// exist is a not-found error, including when another request deleted it
// between the lookup and the delete.
func (svc *ContactService) DeleteContact(id string) error {
	if _, err := svc.GetContact(id); err != nil {
		return err
	}

	if err := svc.store.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.NewNotFoundError(err, "Contact message not found")
		}
		return shared.NewInternalError(svc.wrapDB(err), "Failed to delete contact message")
	}
	return nil
}

func (svc *ContactService) CountContacts() (int64, error) {
	count, err := svc.store.Count()
	if err != nil {
		return 0, shared.NewInternalError(svc.wrapDB(err), "Failed to count contact messages")
	}
	return count, nil
}
