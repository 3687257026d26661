package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ghuser/cartengine/pkg/errhttp"
	"github.com/ghuser/cartengine/pkg/httpx"
	appsvcs "github.com/ghuser/cartengine/services/cart/application/services"
	"github.com/ghuser/cartengine/services/cart/application/views"
	"github.com/ghuser/cartengine/services/cart/domain/models"
)

// PostCartItemHandler handles POST /cart/items requests.
type PostCartItemHandler struct {
	svc *appsvcs.Services
}

// NewPostCartItemHandler returns a PostCartItemHandler backed by the given services.
func NewPostCartItemHandler(svc *appsvcs.Services) *PostCartItemHandler {
	return &PostCartItemHandler{svc: svc}
}

// Execute adds a product to the cart. Constraint violations and lookup
// failures come back as a classified error on the summary body, so the only
// raw error path here is an unreadable request body.
func (h *PostCartItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var req models.ProductIn
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	outcome := h.svc.Cart.AddToCart(r.Context(), req)
	httpx.JSON(w, outcome.HTTPStatus(), views.From(outcome))
}
