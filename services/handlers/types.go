package handlers

import (
	"context"

	"github.com/daffahardhan/portfolio_api/dto"
	"github.com/daffahardhan/portfolio_api/model"
)

type ContactServiceInterface interface {
	CreateContact(req dto.CreateContactRequest) (*model.Contact, error)
	GetContacts() ([]model.Contact, error)
	GetContact(id string) (*model.Contact, error)
	DeleteContact(id string) error
	CountContacts() (int64, error)
}

type AnalyticsServiceInterface interface {
	TrackVisit(ctx context.Context, ipAddress, userAgent string, req dto.TrackVisitRequest) error
	GetSummary(ctx context.Context) (*dto.AnalyticsSummary, error)
	Cleanup(ctx context.Context, days int) (int64, error)
}
