// internal/handlers/review_handler.go
package handlers

import (
	"net/http"
	"strconv"

	"vocab_review_keep/internal/middleware"
	"vocab_review_keep/internal/model"
	"vocab_review_keep/internal/service"
	"vocab_review_keep/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	service service.ReviewService
}

func NewReviewHandler(s service.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: s}
}

// GetReviewItems は本日レビュー可能なアイテムのバッチを返します。
// クォータ消化済みの場合も 200 + 空配列（「すべて完了」はエラーではない）。
func (h *ReviewHandler) GetReviewItems(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	learnerID, err := middleware.GetLearnerIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	limit := 0 // 0 は設定のバッチ上限に従う
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			webutil.HandleError(w, logger, model.NewAppError("INVALID_QUERY", "limitは1以上の整数で指定してください。", "limit", model.ErrInvalidInput))
			return
		}
		limit = parsed
	}

	items, err := h.service.GetReviewItems(r.Context(), learnerID, limit)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if items == nil {
		items = []*model.ReviewItemResponse{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, items)
}

// GetNextReviewItem は次にレビューすべきアイテムを1件返します。
// 対象がない場合は 204 No Content。
func (h *ReviewHandler) GetNextReviewItem(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	learnerID, err := middleware.GetLearnerIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	item, err := h.service.GetNextReviewItem(r.Context(), learnerID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if item == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, item)
}

func (h *ReviewHandler) GetReviewItemCount(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	learnerID, err := middleware.GetLearnerIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	count, err := h.service.GetReviewItemCount(r.Context(), learnerID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.ReviewCountResponse{Count: count})
}

func (h *ReviewHandler) SubmitReviewResult(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	learnerID, err := middleware.GetLearnerIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "item_id"))
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_ID", "アイテムIDの形式が不正です。", "item_id", model.ErrInvalidInput))
		return
	}

	var req model.SubmitReviewRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	item, err := h.service.SubmitReviewResult(r.Context(), learnerID, itemID, *req.Remembered)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, item)
}

func (h *ReviewHandler) MarkMastered(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	learnerID, err := middleware.GetLearnerIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "item_id"))
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_ID", "アイテムIDの形式が不正です。", "item_id", model.ErrInvalidInput))
		return
	}

	item, err := h.service.MarkMastered(r.Context(), learnerID, itemID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, item)
}
