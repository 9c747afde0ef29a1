// internal/handlers/item_handler.go
package handlers

import (
	"net/http"

	"vocab_review_keep/internal/middleware"
	"vocab_review_keep/internal/model"
	"vocab_review_keep/internal/service"
	"vocab_review_keep/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ItemHandler struct {
	service service.ItemService
}

func NewItemHandler(s service.ItemService) *ItemHandler {
	return &ItemHandler{service: s}
}

func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	learnerID, err := middleware.GetLearnerIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.CreateItemRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	item, err := h.service.CreateItem(r.Context(), learnerID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, item)
}

func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
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

	item, err := h.service.GetItem(r.Context(), learnerID, itemID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	learnerID, err := middleware.GetLearnerIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	items, err := h.service.ListItems(r.Context(), learnerID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if items == nil {
		items = []*model.VocabularyItem{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, items)
}

// PutItem は単語を全体更新します（スケジュール状態は変更しません）
func (h *ItemHandler) PutItem(w http.ResponseWriter, r *http.Request) {
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

	var req model.PutItemRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	// PUT は PATCH と同じ更新経路を通す
	patch := &model.PatchItemRequest{
		Word:    &req.Word,
		Reading: &req.Reading,
		Meaning: &req.Meaning,
	}
	item, err := h.service.UpdateItem(r.Context(), learnerID, itemID, patch)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) PatchItem(w http.ResponseWriter, r *http.Request) {
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

	var req model.PatchItemRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	item, err := h.service.UpdateItem(r.Context(), learnerID, itemID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
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

	if err := h.service.DeleteItem(r.Context(), learnerID, itemID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
