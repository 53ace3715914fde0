package handlers

import (
	"net/http"

	"societyBack/internal/models"
	"societyBack/internal/services"
)

const defaultMaxUpload = 10 << 20 // 10MB

type ProviderHandler struct {
	Service        *services.ProviderService
	MaxUploadBytes int64
}

func (h *ProviderHandler) ListProviders(w http.ResponseWriter, r *http.Request) {
	providers, err := h.Service.ListProviders(r.Context())
	if err != nil {
		writeError(w, "ListProviders", err, "Failed to load providers")
		return
	}
	writeJSON(w, http.StatusOK, models.ProvidersResponse{Providers: providers})
}

func (h *ProviderHandler) GetProvider(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid provider id")
		return
	}
	p, err := h.Service.GetProvider(r.Context(), id)
	if err != nil {
		writeError(w, "GetProvider", err, "Failed to load provider")
		return
	}
	writeJSON(w, http.StatusOK, models.ProviderResponse{Provider: p})
}

func (h *ProviderHandler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := caller(w, r)
	if !ok {
		return
	}
	var req models.ProviderProfileRequest
	if !decodeJSON(r, &req) {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := h.Service.UpsertProfile(r.Context(), userID, role, req)
	if err != nil {
		writeError(w, "UpsertProfile", err, "Failed to save profile")
		return
	}
	writeJSON(w, http.StatusOK, models.ProviderResponse{Provider: p})
}

func (h *ProviderHandler) AddOffering(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	var req models.OfferingRequest
	if !decodeJSON(r, &req) {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	o, err := h.Service.AddOffering(r.Context(), userID, req)
	if err != nil {
		writeError(w, "AddOffering", err, "Failed to add service")
		return
	}
	writeJSON(w, http.StatusCreated, models.OfferingResponse{Service: o})
}

func (h *ProviderHandler) UpdateOffering(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := idParam(r, "id")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid service id")
		return
	}
	var req models.OfferingRequest
	if !decodeJSON(r, &req) {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	o, err := h.Service.UpdateOffering(r.Context(), userID, id, req)
	if err != nil {
		writeError(w, "UpdateOffering", err, "Failed to update service")
		return
	}
	writeJSON(w, http.StatusOK, models.OfferingResponse{Service: o})
}

func (h *ProviderHandler) DeleteOffering(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := idParam(r, "id")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid service id")
		return
	}
	if err := h.Service.DeleteOffering(r.Context(), userID, id); err != nil {
		writeError(w, "DeleteOffering", err, "Failed to delete service")
		return
	}
	writeMessage(w, http.StatusOK, "service deleted")
}

// UploadImages appends every uploaded portfolio image to the offering and
// answers with the updated offering.
func (h *ProviderHandler) UploadImages(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := idParam(r, "id")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid service id")
		return
	}

	maxBytes := h.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxUpload
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	images, err := readImages(collectImageFiles(r.MultipartForm, imageFormKeys...))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "failed to read image")
		return
	}
	if len(images) == 0 {
		writeMessage(w, http.StatusBadRequest, "no image provided")
		return
	}

	var o models.ServiceOffering
	for _, img := range images {
		o, err = h.Service.AddOfferingImage(r.Context(), userID, id, img.ContentType, img.Data)
		if err != nil {
			writeError(w, "UploadImages", err, "Failed to upload image")
			return
		}
	}
	writeJSON(w, http.StatusOK, models.OfferingResponse{Service: o})
}
