package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"warehouse/internal/core/domain"
	"warehouse/internal/core/service"
)

type HTTPHandler struct {
	products *service.ProductService
	stock    *service.StockService
	history  *service.HistoryService
}

func NewHTTPHandler(products *service.ProductService, stock *service.StockService, history *service.HistoryService) *HTTPHandler {
	return &HTTPHandler{products: products, stock: stock, history: history}
}

type productRequest struct {
	Name  string          `json:"name"`
	SKU   string          `json:"sku"`
	Price decimal.Decimal `json:"price"`
}

type productResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	SKU             string          `json:"sku"`
	Price           decimal.Decimal `json:"price"`
	CurrentQuantity int             `json:"currentQuantity"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

type transactionResponse struct {
	OccurredAt      time.Time `json:"occurredAt"`
	Type            string    `json:"type"`
	QuantityChanged int       `json:"quantityChanged"`
	NewTotal        int       `json:"newTotal"`
}

type levelResponse struct {
	Quantity int `json:"quantity"`
}

type stockAtResponse struct {
	StockAtGivenTime int `json:"stockAtGivenTime"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *HTTPHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.SKU == "" {
		writeError(w, http.StatusBadRequest, "name and sku are required")
		return
	}

	product, err := h.products.Create(r.Context(), req.Name, req.SKU, req.Price)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProductResponse(product))
}

func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.GetAll(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	responses := make([]productResponse, 0, len(products))
	for i := range products {
		responses = append(responses, toProductResponse(&products[i]))
	}
	writeJSON(w, http.StatusOK, responses)
}

func (h *HTTPHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseProductID(w, r)
	if !ok {
		return
	}

	product, err := h.products.GetByID(r.Context(), productID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(product))
}

func (h *HTTPHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseProductID(w, r)
	if !ok {
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.SKU == "" {
		writeError(w, http.StatusBadRequest, "name and sku are required")
		return
	}

	product, err := h.products.Update(r.Context(), productID, req.Name, req.SKU, req.Price)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(product))
}

func (h *HTTPHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseProductID(w, r)
	if !ok {
		return
	}

	if err := h.products.Delete(r.Context(), productID); err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *HTTPHandler) AddStock(w http.ResponseWriter, r *http.Request) {
	h.mutateStock(w, r, h.stock.Add)
}

func (h *HTTPHandler) RemoveStock(w http.ResponseWriter, r *http.Request) {
	h.mutateStock(w, r, h.stock.Remove)
}

func (h *HTTPHandler) GetStockLevel(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseProductID(w, r)
	if !ok {
		return
	}

	level, err := h.stock.Level(r.Context(), productID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, levelResponse{Quantity: level})
}

func (h *HTTPHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseProductID(w, r)
	if !ok {
		return
	}

	if _, err := h.products.GetByID(r.Context(), productID); err != nil {
		h.writeServiceError(w, err)
		return
	}

	history, err := h.history.History(r.Context(), productID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	responses := make([]transactionResponse, 0, len(history))
	for _, trx := range history {
		responses = append(responses, transactionResponse{
			OccurredAt:      trx.OccurredAt,
			Type:            string(trx.Type),
			QuantityChanged: trx.QuantityChanged,
			NewTotal:        trx.NewTotal,
		})
	}
	writeJSON(w, http.StatusOK, responses)
}

func (h *HTTPHandler) GetStockAt(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseProductID(w, r)
	if !ok {
		return
	}

	// the timestamp must carry an explicit offset; comparison happens in UTC
	at, err := time.Parse(time.RFC3339, r.URL.Query().Get("at"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "query parameter 'at' must be an RFC 3339 timestamp")
		return
	}

	if _, err := h.products.GetByID(r.Context(), productID); err != nil {
		h.writeServiceError(w, err)
		return
	}

	level, err := h.history.StockAt(r.Context(), productID, at)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stockAtResponse{StockAtGivenTime: level})
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) mutateStock(w http.ResponseWriter, r *http.Request, mutate func(ctx context.Context, productID uuid.UUID, quantity int) (*domain.StockTransaction, error)) {
	productID, ok := parseProductID(w, r)
	if !ok {
		return
	}

	var req quantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	trx, err := mutate(r.Context(), productID, req.Quantity)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, transactionResponse{
		OccurredAt:      trx.OccurredAt,
		Type:            string(trx.Type),
		QuantityChanged: trx.QuantityChanged,
		NewTotal:        trx.NewTotal,
	})
}

func (h *HTTPHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, domain.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, domain.ErrInvalidQuantity.Error())
	case errors.Is(err, domain.ErrInsufficientStock):
		writeError(w, http.StatusBadRequest, "stock cannot drop below zero")
	case errors.Is(err, domain.ErrSKUAlreadyExists):
		writeError(w, http.StatusConflict, domain.ErrSKUAlreadyExists.Error())
	case errors.Is(err, domain.ErrConcurrentModification):
		writeError(w, http.StatusConflict, "product was modified concurrently, retry the operation")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func parseProductID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["productID"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return uuid.Nil, false
	}
	return id, true
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:              p.ID.String(),
		Name:            p.Name,
		SKU:             p.SKU,
		Price:           p.Price,
		CurrentQuantity: p.CurrentQuantity,
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
