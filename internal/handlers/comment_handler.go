package handlers

import (
	"net/http"

	"societyBack/internal/models"
	"societyBack/internal/services"
)

type CommentHandler struct {
	Service *services.CommentService
}

func (h *CommentHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	serviceID, ok := idParam(r, "serviceId")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid service id")
		return
	}
	comments, err := h.Service.GetComments(r.Context(), serviceID)
	if err != nil {
		writeError(w, "GetComments", err, "Failed to load reviews")
		return
	}
	writeJSON(w, http.StatusOK, models.CommentsResponse{Comments: comments})
}

func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	serviceID, ok := idParam(r, "serviceId")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid service id")
		return
	}
	var req models.CommentRequest
	if !decodeJSON(r, &req) {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c, err := h.Service.CreateComment(r.Context(), userID, serviceID, req)
	if err != nil {
		writeError(w, "CreateComment", err, "Failed to submit review")
		return
	}
	writeJSON(w, http.StatusCreated, models.CommentResponse{Comment: c})
}

func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	commentID, ok := idParam(r, "commentId")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid comment id")
		return
	}
	var req models.CommentRequest
	if !decodeJSON(r, &req) {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c, err := h.Service.UpdateComment(r.Context(), userID, commentID, req)
	if err != nil {
		writeError(w, "UpdateComment", err, "Failed to update review")
		return
	}
	writeJSON(w, http.StatusOK, models.CommentResponse{Comment: c})
}

func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := caller(w, r)
	if !ok {
		return
	}
	commentID, ok := idParam(r, "commentId")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid comment id")
		return
	}
	if err := h.Service.DeleteComment(r.Context(), userID, role, commentID); err != nil {
		writeError(w, "DeleteComment", err, "Failed to delete review")
		return
	}
	writeMessage(w, http.StatusOK, "review deleted")
}

func (h *CommentHandler) replyRequest(w http.ResponseWriter, r *http.Request) (userID, commentID int, text string, ok bool) {
	userID, _, ok = caller(w, r)
	if !ok {
		return 0, 0, "", false
	}
	commentID, ok = idParam(r, "commentId")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid comment id")
		return 0, 0, "", false
	}
	var req models.ReplyRequest
	if !decodeJSON(r, &req) {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return 0, 0, "", false
	}
	return userID, commentID, req.Reply, true
}

func (h *CommentHandler) AddReply(w http.ResponseWriter, r *http.Request) {
	userID, commentID, text, ok := h.replyRequest(w, r)
	if !ok {
		return
	}
	c, err := h.Service.AddReply(r.Context(), userID, commentID, text)
	if err != nil {
		writeError(w, "AddReply", err, "Failed to add reply")
		return
	}
	writeJSON(w, http.StatusCreated, models.CommentResponse{Comment: c})
}

func (h *CommentHandler) UpdateReply(w http.ResponseWriter, r *http.Request) {
	userID, commentID, text, ok := h.replyRequest(w, r)
	if !ok {
		return
	}
	c, err := h.Service.UpdateReply(r.Context(), userID, commentID, text)
	if err != nil {
		writeError(w, "UpdateReply", err, "Failed to update reply")
		return
	}
	writeJSON(w, http.StatusOK, models.CommentResponse{Comment: c})
}

func (h *CommentHandler) DeleteReply(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := caller(w, r)
	if !ok {
		return
	}
	commentID, ok := idParam(r, "commentId")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid comment id")
		return
	}
	c, err := h.Service.DeleteReply(r.Context(), userID, commentID)
	if err != nil {
		writeError(w, "DeleteReply", err, "Failed to delete reply")
		return
	}
	writeJSON(w, http.StatusOK, models.CommentResponse{Comment: c})
}
