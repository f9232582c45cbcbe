package health

import (
	e "authflow/internal/core/domain/errors"
	"authflow/internal/core/domain/logging"
	"authflow/internal/http/handlers/response"
	"context"
	"net/http"
	"time"
)

const pingTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	log    logging.Logger
	pinger Pinger
}

func New(log logging.Logger, pinger Pinger) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if pinger == nil {
		panic(e.NewNilArgumentError("pinger"))
	}
	return &Handler{log: log, pinger: pinger}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		h.log.Warning(ctx, "Database is unreachable.", logging.Entry("err", err))
		response.RenderMessage(rw, "Database is unreachable", http.StatusServiceUnavailable)
		return
	}
	response.RenderMessage(rw, "ok", http.StatusOK)
}
