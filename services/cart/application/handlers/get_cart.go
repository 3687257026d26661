package handlers

import (
	"net/http"

	"github.com/ghuser/cartengine/pkg/httpx"
	appsvcs "github.com/ghuser/cartengine/services/cart/application/services"
	"github.com/ghuser/cartengine/services/cart/application/views"
)

// GetCartHandler handles GET /cart requests.
type GetCartHandler struct {
	svc *appsvcs.Services
}

// NewGetCartHandler returns a GetCartHandler backed by the given services.
func NewGetCartHandler(svc *appsvcs.Services) *GetCartHandler {
	return &GetCartHandler{svc: svc}
}

// Execute returns the current cart summary.
func (h *GetCartHandler) Execute(w http.ResponseWriter, r *http.Request) {
	outcome := h.svc.Cart.Summary(r.Context())
	httpx.JSON(w, outcome.HTTPStatus(), views.From(outcome))
}
