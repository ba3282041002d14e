package category

import (
	"context"

	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/category"
)

// StatisticsHandler handles the CategoryStatistics query.
type StatisticsHandler struct {
	service *category.Service
}

// NewStatisticsHandler creates a new StatisticsHandler.
func NewStatisticsHandler(service *category.Service) *StatisticsHandler {
	return &StatisticsHandler{service: service}
}

// Handle returns total, active and inactive category counts.
func (h *StatisticsHandler) Handle(ctx context.Context) (category.Statistics, error) {
	return h.service.Statistics(ctx)
}
