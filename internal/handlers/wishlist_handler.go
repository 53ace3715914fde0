package handlers

import (
	"net/http"

	"societyBack/internal/models"
	"societyBack/internal/services"
)

type WishlistHandler struct {
	Service *services.WishlistService
}

func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	list, err := h.Service.List(r.Context(), userID)
	if err != nil {
		writeError(w, "Wishlist", err, "Failed to load wishlist")
		return
	}
	if list == nil {
		list = []models.ServiceOffering{}
	}
	writeJSON(w, http.StatusOK, models.WishlistResponse{Wishlist: list})
}

func (h *WishlistHandler) target(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	userID, _, ok := caller(w, r)
	if !ok {
		return 0, 0, false
	}
	serviceID, ok := idParam(r, "serviceId")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid service id")
		return 0, 0, false
	}
	return userID, serviceID, true
}

func (h *WishlistHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, serviceID, ok := h.target(w, r)
	if !ok {
		return
	}
	in, err := h.Service.Contains(r.Context(), userID, serviceID)
	if err != nil {
		writeError(w, "WishlistStatus", err, "Failed to check wishlist")
		return
	}
	writeJSON(w, http.StatusOK, models.WishlistStatus{InWishlist: in})
}

func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, serviceID, ok := h.target(w, r)
	if !ok {
		return
	}
	if err := h.Service.Add(r.Context(), userID, serviceID); err != nil {
		writeError(w, "WishlistAdd", err, "Failed to add to wishlist")
		return
	}
	writeMessage(w, http.StatusOK, "added to wishlist")
}

func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, serviceID, ok := h.target(w, r)
	if !ok {
		return
	}
	if err := h.Service.Remove(r.Context(), userID, serviceID); err != nil {
		writeError(w, "WishlistRemove", err, "Failed to remove from wishlist")
		return
	}
	writeMessage(w, http.StatusOK, "removed from wishlist")
}
