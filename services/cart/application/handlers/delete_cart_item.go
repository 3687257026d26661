package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/cartengine/pkg/httpx"
	appsvcs "github.com/ghuser/cartengine/services/cart/application/services"
	"github.com/ghuser/cartengine/services/cart/application/views"
	"github.com/ghuser/cartengine/services/cart/domain/models"
)

// DeleteCartItemHandler handles DELETE /cart/items/{name} requests.
type DeleteCartItemHandler struct {
	svc *appsvcs.Services
}

// NewDeleteCartItemHandler returns a DeleteCartItemHandler backed by the given services.
func NewDeleteCartItemHandler(svc *appsvcs.Services) *DeleteCartItemHandler {
	return &DeleteCartItemHandler{svc: svc}
}

// Execute removes a product from the cart. Removing a product that is not in
// the cart succeeds with the unchanged summary.
func (h *DeleteCartItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req := models.ProductRm{Name: chi.URLParam(r, "name")}

	outcome := h.svc.Cart.RemoveFromCart(r.Context(), req)
	httpx.JSON(w, outcome.HTTPStatus(), views.From(outcome))
}
