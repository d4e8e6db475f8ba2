package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

func NewRouter(h *HTTPHandler) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/products", h.CreateProduct).Methods(http.MethodPost)
	api.HandleFunc("/products", h.ListProducts).Methods(http.MethodGet)
	api.HandleFunc("/products/{productID}", h.GetProduct).Methods(http.MethodGet)
	api.HandleFunc("/products/{productID}", h.UpdateProduct).Methods(http.MethodPut)
	api.HandleFunc("/products/{productID}", h.DeleteProduct).Methods(http.MethodDelete)

	api.HandleFunc("/products/{productID}/stock", h.GetStockLevel).Methods(http.MethodGet)
	api.HandleFunc("/products/{productID}/stock/add-stock", h.AddStock).Methods(http.MethodPost)
	api.HandleFunc("/products/{productID}/stock/remove-stock", h.RemoveStock).Methods(http.MethodPost)

	api.HandleFunc("/products/{productID}/history", h.GetHistory).Methods(http.MethodGet)
	api.HandleFunc("/products/{productID}/history/stock-at", h.GetStockAt).Methods(http.MethodGet)

	return logMiddleware(r)
}

func logMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.WithFields(log.Fields{
			"method":     r.Method,
			"url":        r.URL,
			"remoteAddr": r.RemoteAddr,
		}).Info("got a new request")
		h.ServeHTTP(w, r)
	})
}
