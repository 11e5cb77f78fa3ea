package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/topicdesk/topicdesk-backend/api/responses"
	"github.com/topicdesk/topicdesk-backend/pkg/config"
	"github.com/topicdesk/topicdesk-backend/pkg/db"
	pkgerrors "github.com/topicdesk/topicdesk-backend/pkg/errors"
	"github.com/topicdesk/topicdesk-backend/pkg/logger"
)

const envHeader = "X-TopicDesk-Env"

const readinessTimeout = 2 * time.Second

// ReadinessCheck names one dependency probed by /health/ready.
type ReadinessCheck struct {
	Name   string
	Pinger db.Pinger
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every dependency and fails with DEPENDENCY_ERROR if any
// of them is unreachable.
func HealthReady(cfg *config.Config, logg *logger.Logger, checks ...ReadinessCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		failed := map[string]any{}
		for _, check := range checks {
			if check.Pinger == nil {
				continue
			}
			if err := check.Pinger.Ping(ctx); err != nil {
				failed[check.Name] = "unreachable"
				if logg != nil {
					logg.Warn(logg.WithField(r.Context(), "dependency", check.Name), "health.ready.failed")
				}
			}
		}
		if len(failed) > 0 {
			responses.WriteError(r.Context(), nil, w, pkgerrors.New(pkgerrors.CodeDependency, "not ready").WithDetails(failed))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
