package handler

import (
	"net/http"

	"github.com/mayabazar/booking-api/api"
	"github.com/mayabazar/booking-api/internal/config"
	"github.com/mayabazar/booking-api/internal/jsonutil"
	"github.com/mayabazar/booking-api/internal/vcs"
)

type HealthcheckHandler struct {
	cfg config.Config
}

func NewHealthcheckHandler(cfg config.Config) *HealthcheckHandler {
	return &HealthcheckHandler{
		cfg: cfg,
	}
}

func (h *HealthcheckHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := api.HealthcheckResponse{
		Status: "UP",
		SystemInfo: api.SystemInfo{
			Version:     vcs.Version(),
			Environment: h.cfg.Env,
		},
	}

	jsonutil.WriteJSON(w, http.StatusOK, resp, nil)
}
