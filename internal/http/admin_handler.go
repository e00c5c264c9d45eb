package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Omerrrrrrr/tamer-shop/internal/catalog"
	"github.com/Omerrrrrrr/tamer-shop/internal/domain"
	"github.com/Omerrrrrrr/tamer-shop/internal/repository"
	"github.com/go-chi/chi/v5"
)

// AdminStore is everything the admin surface writes to.
type AdminStore interface {
	CreateProduct(ctx context.Context, p *domain.Product) (int64, error)
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id int64) error
	CreateCategory(ctx context.Context, cat domain.Category) error
	DeleteCategory(ctx context.Context, id string) error
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	ReplyComment(ctx context.Context, id int64, reply string) error
	UpdateCommentContent(ctx context.Context, id int64, content string) error
	DeleteComment(ctx context.Context, id int64) error
}

type AdminHandler struct {
	store   AdminStore
	catalog CatalogService
	timeout time.Duration
}

func NewAdminHandler(store AdminStore, catalog CatalogService, timeout time.Duration) *AdminHandler {
	return &AdminHandler{
		store:   store,
		catalog: catalog,
		timeout: timeout,
	}
}

type ProductRequestDTO struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	Stock           int      `json:"stock"`
	Price           float64  `json:"price"`
	DiscountPercent float64  `json:"discount_percent"`
	Images          []string `json:"images"`
}

func (dto *ProductRequestDTO) validate() []string {
	var errs []string
	if strings.TrimSpace(dto.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(dto.Category) == "" {
		errs = append(errs, "category is required")
	}
	if dto.Stock < 0 {
		errs = append(errs, "stock cannot be negative")
	}
	if dto.Price <= 0 {
		errs = append(errs, "price must be positive")
	}
	if dto.DiscountPercent < 0 || dto.DiscountPercent > 90 {
		errs = append(errs, "discount must be between 0 and 90")
	}
	return errs
}

func (dto *ProductRequestDTO) toDomain(id int64) *domain.Product {
	return &domain.Product{
		ID:              id,
		Name:            strings.TrimSpace(dto.Name),
		Description:     strings.TrimSpace(dto.Description),
		Category:        dto.Category,
		Stock:           dto.Stock,
		Price:           dto.Price,
		DiscountPercent: dto.DiscountPercent,
		Images:          dto.Images,
	}
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ProductRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		respondValidationErrors(w, errs)
		return
	}

	id, err := h.store.CreateProduct(ctx, req.toDomain(0))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not create product")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var req ProductRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		respondValidationErrors(w, errs)
		return
	}

	err := h.store.UpdateProduct(ctx, req.toDomain(id))
	if errors.Is(err, repository.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not update product")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	err := h.store.DeleteProduct(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not delete product")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type CategoryRequestDTO struct {
	Label    string `json:"label"`
	ImageURL string `json:"image_url"`
}

func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CategoryRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	id := catalog.Slugify(req.Label)
	if id == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "category label is required")
		return
	}

	err := h.store.CreateCategory(ctx, domain.Category{
		ID:       id,
		Label:    strings.TrimSpace(req.Label),
		ImageURL: req.ImageURL,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not create category")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")
	err := h.store.DeleteCategory(ctx, id)
	if errors.Is(err, repository.ErrCategoryInUse) {
		respondError(w, http.StatusConflict, "category_in_use", "category still has products")
		return
	}
	if errors.Is(err, repository.ErrCategoryNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "category not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not delete category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orders, err := h.store.ListOrders(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load orders")
		return
	}
	respondJSON(w, http.StatusOK, map[string][]*domain.Order{"orders": orders})
}

type ReplyCommentRequestDTO struct {
	Reply string `json:"reply"`
}

func (h *AdminHandler) ReplyComment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var req ReplyCommentRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.store.ReplyComment(ctx, id, strings.TrimSpace(req.Reply))
	if errors.Is(err, repository.ErrCommentNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "comment not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not save reply")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type UpdateCommentRequestDTO struct {
	Content string `json:"content"`
}

// UpdateComment rewrites a comment's content, for moderation.
func (h *AdminHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateCommentRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "comment content is required")
		return
	}

	err := h.store.UpdateCommentContent(ctx, id, content)
	if errors.Is(err, repository.ErrCommentNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "comment not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not update comment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	err := h.store.DeleteComment(ctx, id)
	if errors.Is(err, repository.ErrCommentNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "comment not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not delete comment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
