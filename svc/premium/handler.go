package premium

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/premiumkit/pkg/billing"
	"github.com/dmitrymomot/premiumkit/pkg/binder"
	"github.com/dmitrymomot/premiumkit/pkg/entitlement"
	"github.com/dmitrymomot/premiumkit/pkg/handler"
	"github.com/dmitrymomot/premiumkit/pkg/logger"
)

// PurchaseRequest is the body of POST /purchases.
type PurchaseRequest struct {
	ProductID string `json:"product_id"`
}

// PushTokenRequest is the body of POST /push-token. Token is base64 in JSON.
type PushTokenRequest struct {
	Token []byte `json:"token"`
}

// OperationResult reports a provider outcome together with the state that
// followed it.
type OperationResult struct {
	Result any               `json:"result,omitempty"`
	Error  string            `json:"error,omitempty"`
	State  entitlement.State `json:"state"`
}

// Handler exposes a Manager over HTTP.
type Handler struct {
	manager *Manager
	bind    func(r *http.Request, v any) error
	fail    handler.ErrorHandler
}

// NewHandler creates an HTTP handler for m. Panics if m is nil.
func NewHandler(m *Manager) *Handler {
	if m == nil {
		panic("premium: manager is required")
	}
	return &Handler{
		manager: m,
		bind:    binder.JSON(),
		fail:    handler.NewErrorHandler(m.log, classify),
	}
}

// Handle returns the router.
//
//	r := chi.NewRouter()
//	r.Mount("/premium", premium.NewHandler(manager).Handle())
func (h *Handler) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/state", h.state)
	r.Post("/products/refresh", h.refreshProducts)
	r.Post("/status/refresh", h.refreshStatus)
	r.Post("/purchases", h.purchase)
	r.Post("/restore", h.restore)
	r.Post("/push-token", h.pushToken)
	r.Post("/notifications", h.notification)

	return r
}

func (h *Handler) state(w http.ResponseWriter, r *http.Request) {
	h.ok(w, r, "state", h.manager.Snapshot())
}

func (h *Handler) refreshProducts(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.FetchProducts(r.Context()); err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, "products", h.manager.Snapshot())
}

func (h *Handler) refreshStatus(w http.ResponseWriter, r *http.Request) {
	if _, err := h.manager.RefreshStatus(r.Context()); err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, "status", h.manager.Snapshot())
}

func (h *Handler) purchase(w http.ResponseWriter, r *http.Request) {
	var req PurchaseRequest
	if err := h.bind(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if strings.TrimSpace(req.ProductID) == "" {
		h.fail(w, r, handler.ValidationError{"product_id": {"is required"}})
		return
	}

	result, err := h.manager.PurchaseByID(r.Context(), req.ProductID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, "purchase", OperationResult{
		Result: result,
		Error:  errString(result.Err),
		State:  h.manager.Snapshot(),
	})
}

func (h *Handler) restore(w http.ResponseWriter, r *http.Request) {
	result, err := h.manager.RestorePurchases(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, "restore", OperationResult{
		Result: result,
		Error:  errString(result.Err),
		State:  h.manager.Snapshot(),
	})
}

func (h *Handler) pushToken(w http.ResponseWriter, r *http.Request) {
	var req PushTokenRequest
	if err := h.bind(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if len(req.Token) == 0 {
		h.fail(w, r, handler.ValidationError{"token": {"is required"}})
		return
	}
	if err := h.manager.SubmitPushToken(r.Context(), req.Token); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) notification(w http.ResponseWriter, r *http.Request) {
	payload, err := binder.ReadLimited(r, binder.DefaultMaxJSONSize)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	headers := make(map[string]string, len(r.Header))
	for k := range r.Header {
		headers[k] = r.Header.Get(k)
	}

	handled, err := h.manager.HandlePushNotification(r.Context(), billing.Notification{
		Payload:   payload,
		Signature: signatureOf(r),
		Headers:   headers,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, r, "notification", map[string]bool{"handled": handled})
}

func (h *Handler) ok(w http.ResponseWriter, r *http.Request, op string, data any) {
	resp := handler.JSON(data, handler.WithJSONMeta(map[string]any{"op": op}))
	if err := resp.Render(w, r); err != nil {
		h.manager.log.WarnContext(r.Context(), "failed to write response", logger.Error(err))
	}
}

// classify maps manager, provider and binding errors to HTTP errors.
func classify(err error) error {
	switch {
	case errors.Is(err, binder.ErrBodyTooLarge):
		return handler.ErrRequestEntityTooLarge.Wrap(err)
	case errors.Is(err, binder.ErrMissingContentType), errors.Is(err, binder.ErrUnsupportedMediaType):
		return handler.ErrUnsupportedMediaType.Wrap(err)
	case errors.Is(err, binder.ErrFailedToParseJSON):
		return handler.ErrBadRequest.Wrap(err)
	case errors.Is(err, ErrNotConfigured):
		return handler.HTTPError{Code: http.StatusServiceUnavailable, Key: "not_configured", Err: err}
	case errors.Is(err, ErrProductNotFound):
		return handler.HTTPError{Code: http.StatusNotFound, Key: "product_not_found", Err: err}
	case errors.Is(err, billing.ErrInvalidSignature):
		return handler.HTTPError{Code: http.StatusUnauthorized, Key: "invalid_signature", Err: err}
	case errors.Is(err, billing.ErrUnsupported):
		return handler.HTTPError{Code: http.StatusNotImplemented, Key: "unsupported", Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return handler.ErrGatewayTimeout.Wrap(err)
	case errors.Is(err, context.Canceled):
		return handler.HTTPError{Code: http.StatusRequestTimeout, Key: "canceled", Err: err}
	default:
		return err
	}
}

func signatureOf(r *http.Request) string {
	for _, name := range []string{"Paddle-Signature", "X-Signature"} {
		if v := r.Header.Get(name); v != "" {
			return v
		}
	}
	return ""
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
