package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/releasepage/pkg/domain/model"
	"github.com/m-mizutani/releasepage/pkg/domain/types"
	"github.com/m-mizutani/releasepage/pkg/utils/logging"
)

// healthHandler handles health check requests
func healthHandler(site model.Site) http.HandlerFunc {
	repository := site.WithDefaults().FullName()

	return func(w http.ResponseWriter, r *http.Request) {
		status := &model.HealthStatus{
			Status:     "healthy",
			Service:    "releasepage",
			Version:    types.Version,
			Repository: repository,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(status); err != nil {
			logging.From(r.Context()).Error("Failed to encode health response", "error", err)
		}
	}
}
