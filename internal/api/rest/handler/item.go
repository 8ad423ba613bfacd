package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dtroode/basebackend-server/internal/logger"
	"github.com/dtroode/basebackend-server/internal/model"
)

type ItemService interface {
	Create(ctx context.Context, creatorID uuid.UUID, params model.CreateItemParams) (model.Item, error)
	List(ctx context.Context, creatorID uuid.UUID) ([]model.Item, error)
	Get(ctx context.Context, creatorID, id uuid.UUID) (model.Item, error)
	Update(ctx context.Context, creatorID, id uuid.UUID, params model.UpdateItemParams) (model.Item, error)
}

type createItemRequest struct {
	Headline    string `json:"headline"`
	Description string `json:"description"`
	Price       string `json:"price"`
}

type updateItemRequest struct {
	Headline    *string `json:"headline"`
	Description *string `json:"description"`
	Price       *string `json:"price"`
}

type itemEnvelope struct {
	Item itemResponse `json:"item"`
}

type itemsEnvelope struct {
	Items []itemResponse `json:"items"`
}

// Item handles item endpoints. Every route requires an authenticated user.
type Item struct {
	itemService    ItemService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewItem(itemService ItemService, contextManager model.ContextManager, logger *logger.Logger) *Item {
	return &Item{
		itemService:    itemService,
		contextManager: contextManager,
		logger:         logger,
	}
}

func (h *Item) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		WriteUnauthenticated(w)
		return
	}

	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	item, err := h.itemService.Create(r.Context(), user.ID, model.CreateItemParams{
		Headline:    req.Headline,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		h.logger.Info("Item handler: create failed",
			"user_id", user.ID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newItemResponse(item))
}

func (h *Item) List(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		WriteUnauthenticated(w)
		return
	}

	items, err := h.itemService.List(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("Item handler: list failed",
			"user_id", user.ID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	resp := itemsEnvelope{Items: make([]itemResponse, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, newItemResponse(item))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Item) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		WriteUnauthenticated(w)
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}

	item, err := h.itemService.Get(r.Context(), user.ID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, itemEnvelope{Item: newItemResponse(item)})
}

// Update applies a partial update. Fields missing from the body are left as they are.
func (h *Item) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		WriteUnauthenticated(w)
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}

	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	item, err := h.itemService.Update(r.Context(), user.ID, id, model.UpdateItemParams{
		Headline:    req.Headline,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		h.logger.Info("Item handler: update failed",
			"user_id", user.ID,
			"item_id", id,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, itemEnvelope{Item: newItemResponse(item)})
}
