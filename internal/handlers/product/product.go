package product

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"shopeasy/internal/models"
	serviceerrors "shopeasy/internal/service"
	"shopeasy/pkg/lib/logger/sl"

	"github.com/go-playground/validator/v10"
)

const StatusClientClosedRequest = 499

type ProductService interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, input models.ProductInput) (models.Product, error)
	UpdateProduct(ctx context.Context, id string, input models.ProductInput) (models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type Handler struct {
	log      *slog.Logger
	service  ProductService
	validate *validator.Validate
}

func New(log *slog.Logger, service ProductService) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// GET /api/product
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.ListProducts"
	log := h.log.With("op", op)

	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		if errors.Is(err, serviceerrors.ErrContextCanceled) {
			log.Warn("Context canceled", sl.Err(serviceerrors.ErrContextCanceled))
			http.Error(w, "Context canceled", StatusClientClosedRequest)
			return
		} else if errors.Is(err, serviceerrors.ErrDeadlineExceeded) {
			log.Warn("Deadline exceeded", sl.Err(serviceerrors.ErrDeadlineExceeded))
			http.Error(w, "Deadline exceeded", http.StatusGatewayTimeout)
			return
		} else {
			log.Error("Failed to list products", sl.Err(err))
			http.Error(w, "Failed to list products", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(products); err != nil {
		log.Error("Failed to responde user", sl.Err(err))
		http.Error(w, "Failed to responde user", http.StatusInternalServerError)
		return
	}
}

// POST /api/postProduct
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.CreateProduct"
	log := h.log.With("op", op)

	input, ok := h.decodeInput(w, r, log)
	if !ok {
		return
	}

	created, err := h.service.CreateProduct(r.Context(), input)
	if err != nil {
		if errors.Is(err, serviceerrors.ErrContextCanceled) {
			log.Warn("Context canceled", sl.Err(serviceerrors.ErrContextCanceled))
			http.Error(w, "Context canceled", StatusClientClosedRequest)
			return
		} else if errors.Is(err, serviceerrors.ErrDeadlineExceeded) {
			log.Warn("Deadline exceeded", sl.Err(serviceerrors.ErrDeadlineExceeded))
			http.Error(w, "Deadline exceeded", http.StatusGatewayTimeout)
			return
		} else {
			log.Error("Failed to create product", sl.Err(err))
			http.Error(w, "Failed to create product", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		log.Error("Failed to responde user", sl.Err(err))
		http.Error(w, "Failed to responde user", http.StatusInternalServerError)
		return
	}
}

// PUT /api/updateProduct/{id}
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request, id string) {
	const op = "handlers.product.UpdateProduct"
	log := h.log.With("op", op)

	input, ok := h.decodeInput(w, r, log)
	if !ok {
		return
	}

	updated, err := h.service.UpdateProduct(r.Context(), id, input)
	if err != nil {
		if errors.Is(err, serviceerrors.ErrContextCanceled) {
			log.Warn("Context canceled", sl.Err(serviceerrors.ErrContextCanceled))
			http.Error(w, "Context canceled", StatusClientClosedRequest)
			return
		} else if errors.Is(err, serviceerrors.ErrDeadlineExceeded) {
			log.Warn("Deadline exceeded", sl.Err(serviceerrors.ErrDeadlineExceeded))
			http.Error(w, "Deadline exceeded", http.StatusGatewayTimeout)
			return
		} else if errors.Is(err, serviceerrors.ErrNotFound) {
			log.Warn("Product not found", sl.Err(serviceerrors.ErrNotFound))
			http.NotFound(w, r)
			return
		} else {
			log.Error("Failed to update product", sl.Err(err))
			http.Error(w, "Failed to update product", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(updated); err != nil {
		log.Error("Failed to responde user", sl.Err(err))
		http.Error(w, "Failed to responde user", http.StatusInternalServerError)
		return
	}
}

// DELETE /api/deleteProduct/{id}
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request, id string) {
	const op = "handlers.product.DeleteProduct"
	log := h.log.With("op", op)

	err := h.service.DeleteProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, serviceerrors.ErrContextCanceled) {
			log.Warn("Context canceled", sl.Err(serviceerrors.ErrContextCanceled))
			http.Error(w, "Context canceled", StatusClientClosedRequest)
			return
		} else if errors.Is(err, serviceerrors.ErrDeadlineExceeded) {
			log.Warn("Deadline exceeded", sl.Err(serviceerrors.ErrDeadlineExceeded))
			http.Error(w, "Deadline exceeded", http.StatusGatewayTimeout)
			return
		} else if errors.Is(err, serviceerrors.ErrNotFound) {
			log.Warn("Product not found", sl.Err(serviceerrors.ErrNotFound))
			http.NotFound(w, r)
			return
		} else {
			log.Error("Failed to delete product", sl.Err(err))
			http.Error(w, "Failed to delete product", http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decodeInput(w http.ResponseWriter, r *http.Request, log *slog.Logger) (models.ProductInput, bool) {
	requestBody, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("Cannot read request body", sl.Err(err))
		http.Error(w, "Cannot read request body", http.StatusBadRequest)
		return models.ProductInput{}, false
	}
	defer r.Body.Close()

	var input models.ProductInput
	if err := json.Unmarshal(requestBody, &input); err != nil {
		log.Error("Cannot unmarshal request body", sl.Err(err))
		http.Error(w, "Cannot unmarshal request body", http.StatusBadRequest)
		return models.ProductInput{}, false
	}

	if err := h.validate.Struct(input); err != nil {
		log.Error("Failed to validate", sl.Err(err))
		http.Error(w, "Failed to validate", http.StatusBadRequest)
		return models.ProductInput{}, false
	}

	return input, true
}
