package services

import (
	"context"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/daffahardhan/portfolio_api/dto"
	"github.com/daffahardhan/portfolio_api/model"
	"github.com/daffahardhan/portfolio_api/shared"
)

type visitorStore interface {
	FindByIP(ipAddress string) (*model.Visitor, error)
	Create(visitor *model.Visitor) (*model.Visitor, error)
	UpdateLastVisit(id string) error
	CreatePageView(visitorID, page string) error
	TotalVisitors() (int64, error)
	TotalPageViews() (int64, error)
	UniqueVisitors() (int64, error)
	TopPages(limit int) ([]dto.PageViewStats, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

type summaryCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// AnalyticsService records page visits and aggregates the traffic summary.
// Visitors are keyed by IP address: a returning IP updates its last-visit
// timestamp instead of creating a new row, while every tracked visit always
// adds a page view.
type AnalyticsService struct {
	appContext.DefaultService

	store visitorStore
	cache summaryCache

	dbErr func(error) error
}

const ANALYTICS_SVC = "analytics_svc"

const (
	summaryCacheKey = "analytics:summary"
	summaryCacheTTL = 30 * time.Second

	topPagesLimit = 10

	// DefaultRetentionDays is the cleanup cutoff used when the caller does
	// not provide one.
	DefaultRetentionDays = 90
)

func (svc AnalyticsService) Id() string {
	return ANALYTICS_SVC
}

func (svc *AnalyticsService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *AnalyticsService) Start() error {
	pg := svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.store = pg.Visitors()
	svc.dbErr = pg.HandleError
	svc.cache = svc.Service(REDIS_SVC).(*RedisService)
	return nil
}

func (svc *AnalyticsService) wrapDB(err error) error {
	if svc.dbErr != nil {
		return svc.dbErr(err)
	}
	return err
}

// TrackVisit records a page view for the client. The visitor row and the
// page view are written in two steps without a transaction; a crash in
// between leaves a visitor with one view fewer, which is acceptable for
// traffic stats.
func (svc *AnalyticsService) TrackVisit(ctx context.Context, ipAddress, userAgent string, req dto.TrackVisitRequest) error {
	if err := req.Validate(); err != nil {
		return shared.NewBadRequestError(err, dto.FirstValidationMessage(err))
	}

	visitor, err := svc.store.FindByIP(ipAddress)
	if err != nil {
		return shared.NewInternalError(svc.wrapDB(err), "Failed to track visit")
	}

	if visitor == nil {
		visitor, err = svc.store.Create(&model.Visitor{
			IPAddress: ipAddress,
			UserAgent: userAgent,
		})
		if err != nil {
			return shared.NewInternalError(svc.wrapDB(err), "Failed to track visit")
		}
	} else {
		if err := svc.store.UpdateLastVisit(visitor.ID); err != nil {
			return shared.NewInternalError(svc.wrapDB(err), "Failed to track visit")
		}
	}

	if err := svc.store.CreatePageView(visitor.ID, req.Page); err != nil {
		return shared.NewInternalError(svc.wrapDB(err), "Failed to track visit")
	}

	if err := svc.cache.Delete(ctx, summaryCacheKey); err != nil {
		log.WithError(err).Warn("Failed to invalidate analytics summary cache")
	}

	return nil
}

// GetSummary returns the aggregate traffic stats, served from cache when a
// fresh copy exists. Cache failures fall through to the database.
func (svc *AnalyticsService) GetSummary(ctx context.Context) (*dto.AnalyticsSummary, error) {
	var cached dto.AnalyticsSummary
	hit, err := svc.cache.GetJSON(ctx, summaryCacheKey, &cached)
	if err != nil {
		log.WithError(err).Warn("Failed to read analytics summary cache")
	} else if hit {
		return &cached, nil
	}

	summary := &dto.AnalyticsSummary{}

	if summary.TotalVisitors, err = svc.store.TotalVisitors(); err != nil {
		return nil, shared.NewInternalError(svc.wrapDB(err), "Failed to fetch analytics summary")
	}
	if summary.TotalPageViews, err = svc.store.TotalPageViews(); err != nil {
		return nil, shared.NewInternalError(svc.wrapDB(err), "Failed to fetch analytics summary")
	}
	if summary.UniqueVisitors, err = svc.store.UniqueVisitors(); err != nil {
		return nil, shared.NewInternalError(svc.wrapDB(err), "Failed to fetch analytics summary")
	}

	topPages, err := svc.store.TopPages(topPagesLimit)
	if err != nil {
		return nil, shared.NewInternalError(svc.wrapDB(err), "Failed to fetch analytics summary")
	}
	if topPages == nil {
		topPages = []dto.PageViewStats{}
	}
	summary.TopPages = topPages

	if err := svc.cache.Set(ctx, summaryCacheKey, summary, summaryCacheTTL); err != nil {
		log.WithError(err).Warn("Failed to cache analytics summary")
	}

	return summary, nil
}

// Cleanup deletes visitors whose last visit is strictly older than the given
// number of days, along with their page views. Returns how many visitors
// were removed.
func (svc *AnalyticsService) Cleanup(ctx context.Context, days int) (int64, error) {
	if days < 0 {
		return 0, shared.NewBadRequestError(nil, "Invalid days parameter")
	}

	cutoff := time.Now().AddDate(0, 0, -days)

	deleted, err := svc.store.DeleteOlderThan(cutoff)
	if err != nil {
		return 0, shared.NewInternalError(svc.wrapDB(err), "Failed to clean up visitor data")
	}

	if deleted > 0 {
		if err := svc.cache.Delete(ctx, summaryCacheKey); err != nil {
			log.WithError(err).Warn("Failed to invalidate analytics summary cache")
		}
	}

	log.WithFields(log.Fields{"days": days, "deleted": deleted}).Info("Visitor data cleanup complete")
	return deleted, nil
}
