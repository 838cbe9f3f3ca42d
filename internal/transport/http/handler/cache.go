package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shop-access-core/internal/infrastructure/cache"
)

// CacheHandler exposes the invalidation bus to external write paths (catalog
// CRUD, order capture) that mutate underlying data out-of-process.
type CacheHandler struct {
	inval *cache.Invalidator
}

func NewCacheHandler(inval *cache.Invalidator) *CacheHandler {
	return &CacheHandler{inval: inval}
}

type invalidateRequest struct {
	Scope string `json:"scope" validate:"required"`
	ID    string `json:"id"`
}

func (h *CacheHandler) Invalidate(w http.ResponseWriter, r *http.Request) {
	var req invalidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch req.Scope {
	case "products":
		h.inval.Products()
	case "product":
		if req.ID == "" {
			writeError(w, http.StatusBadRequest, "product scope requires an id")
			return
		}
		h.inval.Product(req.ID)
	case "reviews":
		h.inval.Reviews(req.ID)
	case "orders":
		h.inval.Orders()
	case "analytics":
		h.inval.Analytics()
	case "settings":
		h.inval.Settings()
	case "all":
		h.inval.All()
	default:
		writeError(w, http.StatusBadRequest, "unknown scope")
		return
	}

	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "invalidated"})
}
