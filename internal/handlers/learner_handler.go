// internal/handlers/learner_handler.go
package handlers

import (
	"net/http"

	"vocab_review_keep/internal/middleware"
	"vocab_review_keep/internal/model"
	"vocab_review_keep/internal/service"
	"vocab_review_keep/internal/webutil"
)

type LearnerHandler struct {
	service service.LearnerService
}

func NewLearnerHandler(s service.LearnerService) *LearnerHandler {
	return &LearnerHandler{service: s}
}

func (h *LearnerHandler) Register(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.RegisterRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	learner, err := h.service.Register(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	resp := model.LearnerResponse{
		LearnerID: learner.LearnerID,
		Name:      learner.Name,
		Email:     learner.Email,
		IsActive:  learner.IsActive,
		CreatedAt: learner.CreatedAt,
	}
	webutil.RespondWithJSON(w, http.StatusCreated, resp)
}

func (h *LearnerHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.LoginRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp)
}

// Me は認証済み学習者自身の情報を返します
func (h *LearnerHandler) Me(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	learnerID, err := middleware.GetLearnerIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	learner, err := h.service.GetLearner(r.Context(), learnerID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	resp := model.LearnerResponse{
		LearnerID: learner.LearnerID,
		Name:      learner.Name,
		Email:     learner.Email,
		IsActive:  learner.IsActive,
		CreatedAt: learner.CreatedAt,
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp)
}
