package dto

type TrackVisitRequest struct {
	Page string `json:"page" validate:"required,max=255"`
}

func (t TrackVisitRequest) Validate() error {
	return GetValidator().Struct(t)
}

type PageViewStats struct {
	Page  string `json:"page"`
	Count int64  `json:"count"`
}

type AnalyticsSummary struct {
	TotalVisitors  int64           `json:"totalVisitors"`
	TotalPageViews int64           `json:"totalPageViews"`
	UniqueVisitors int64           `json:"uniqueVisitors"`
	TopPages       []PageViewStats `json:"topPages"`
}

type CleanupResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}
