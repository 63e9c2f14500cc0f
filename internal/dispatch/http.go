package dispatch

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/meridian-erp/meridian/internal/platform/httpx"
	"github.com/meridian-erp/meridian/internal/shared"
)

// Handler exposes the dispatcher over HTTP.
type Handler struct {
	logger     *slog.Logger
	dispatcher *Dispatcher
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, dispatcher *Dispatcher) *Handler {
	return &Handler{logger: logger, dispatcher: dispatcher}
}

// MountRoutes registers dispatch routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/operations", h.listOperations)
	r.Post("/calls/{op}", h.handleCall)
}

type callRequest struct {
	Args []any `json:"args"`
}

type callResponse struct {
	CallID string `json:"callId"`
	Result any    `json:"result"`
}

func (h *Handler) handleCall(w http.ResponseWriter, r *http.Request) {
	op := chi.URLParam(r, "op")

	var req callRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Malformed Request", "body must be a JSON object with an args array")
		return
	}

	callID := uuid.NewString()
	ctx := shared.ContextWithCallID(r.Context(), callID)

	result, err := h.dispatcher.Dispatch(ctx, op, req.Args)
	if err != nil {
		if h.logger != nil {
			h.logger.Info("call failed",
				slog.String("call_id", callID),
				slog.String("op", op),
				slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, callResponse{CallID: callID, Result: result})
}

func (h *Handler) listOperations(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]any{"operations": h.dispatcher.Operations()})
}
