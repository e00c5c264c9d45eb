package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Omerrrrrrr/tamer-shop/internal/domain"
	"github.com/Omerrrrrrr/tamer-shop/internal/repository"
	"github.com/go-chi/chi/v5"
)

// CatalogService is the storefront read side consumed by the handlers.
type CatalogService interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context, category, search string) ([]*domain.Product, error)
	Featured(ctx context.Context, limit int) ([]*domain.Product, error)
	Related(ctx context.Context, p *domain.Product, limit int) ([]*domain.Product, error)
	Stats(ctx context.Context) (domain.CatalogStats, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	ValidCategory(ctx context.Context, id string) (bool, error)
}

// CommentStore is the comment slice of the repository.
type CommentStore interface {
	AddComment(ctx context.Context, c *domain.Comment) (int64, error)
	GetComments(ctx context.Context, productID int64) ([]domain.Comment, error)
	GetComment(ctx context.Context, id int64) (*domain.Comment, error)
	DeleteComment(ctx context.Context, id int64) error
}

type ProductHandler struct {
	catalog  CatalogService
	comments CommentStore
	timeout  time.Duration
}

func NewProductHandler(catalog CatalogService, comments CommentStore, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		catalog:  catalog,
		comments: comments,
		timeout:  timeout,
	}
}

type HomeResponse struct {
	Featured   []*domain.Product   `json:"featured"`
	Categories []domain.Category   `json:"categories"`
	Stats      domain.CatalogStats `json:"stats"`
}

// Home serves the landing page data: featured products plus shop stats.
func (h *ProductHandler) Home(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	featured, err := h.catalog.Featured(ctx, 4)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load featured products")
		return
	}
	categories, err := h.catalog.Categories(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load categories")
		return
	}
	stats, err := h.catalog.Stats(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load stats")
		return
	}

	respondJSON(w, http.StatusOK, HomeResponse{
		Featured:   featured,
		Categories: categories,
		Stats:      stats,
	})
}

type ProductListResponse struct {
	Products       []*domain.Product `json:"products"`
	ActiveCategory string            `json:"active_category"`
	SearchTerm     string            `json:"search_term"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	category := r.URL.Query().Get("cat")
	if category == "" {
		category = "all"
	}
	search := r.URL.Query().Get("q")

	// unknown category filters fall back to the full listing
	if category != "all" {
		ok, err := h.catalog.ValidCategory(ctx, category)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "internal_error", "could not load categories")
			return
		}
		if !ok {
			category = "all"
		}
	}

	products, err := h.catalog.ListProducts(ctx, category, search)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load products")
		return
	}

	respondJSON(w, http.StatusOK, ProductListResponse{
		Products:       products,
		ActiveCategory: category,
		SearchTerm:     search,
	})
}

type ProductDetailResponse struct {
	Product  *domain.Product   `json:"product"`
	Related  []*domain.Product `json:"related"`
	Comments []domain.Comment  `json:"comments"`
}

func (h *ProductHandler) Detail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	product, err := h.catalog.GetProduct(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load product")
		return
	}

	related, err := h.catalog.Related(ctx, product, 4)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load related products")
		return
	}
	comments, err := h.comments.GetComments(ctx, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load comments")
		return
	}

	respondJSON(w, http.StatusOK, ProductDetailResponse{
		Product:  product,
		Related:  related,
		Comments: comments,
	})
}

func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	categories, err := h.catalog.Categories(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load categories")
		return
	}
	respondJSON(w, http.StatusOK, map[string][]domain.Category{"categories": categories})
}

type AddCommentRequestDTO struct {
	Name    string `json:"name"`
	Content string `json:"content"`
	UserID  int64  `json:"user_id,omitempty"`
}

func (h *ProductHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var req AddCommentRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "comment content is required")
		return
	}

	if _, err := h.catalog.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load product")
		return
	}

	author := strings.TrimSpace(req.Name)
	if author == "" {
		author = "Guest"
	}

	id, err := h.comments.AddComment(ctx, &domain.Comment{
		ProductID:  productID,
		AuthorName: author,
		Content:    content,
		UserID:     req.UserID,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not save comment")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// DeleteComment removes a comment, but only for the user who wrote it.
func (h *ProductHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	commentID, ok := parseID(w, r, "commentID")
	if !ok {
		return
	}

	var req struct {
		UserID int64 `json:"user_id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.comments.GetComment(ctx, commentID)
	if errors.Is(err, repository.ErrCommentNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "comment not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load comment")
		return
	}

	if req.UserID == 0 || comment.UserID != req.UserID {
		respondError(w, http.StatusForbidden, "forbidden", "you can only delete your own comments")
		return
	}

	if err := h.comments.DeleteComment(ctx, commentID); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not delete comment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_id", "invalid id")
		return 0, false
	}
	return id, true
}
