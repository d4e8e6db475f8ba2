// Load driver for the warehouse API: creates a product, seeds it with stock,
// then fires concurrent remove-stock requests and reports how many committed,
// how many were rejected for insufficient stock and how many lost the
// optimistic race.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	baseURL       = "http://localhost:8080/api"
	initialStock  = 20
	totalRequests = 50
)

func main() {
	client := &http.Client{Timeout: 5 * time.Second}

	sku := fmt.Sprintf("STRESS-%d", time.Now().UnixNano())
	productID, err := createProduct(client, sku)
	if err != nil {
		log.WithError(err).Fatal("failed to create product")
	}
	log.WithField("productID", productID).Info("created product")

	if status, err := postQuantity(client, productID, "add-stock", initialStock); err != nil || status != http.StatusOK {
		log.WithError(err).WithField("status", status).Fatal("failed to seed stock")
	}

	var committed, rejected, conflicted atomic.Int32
	var wg sync.WaitGroup

	start := time.Now()
	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			status, err := postQuantity(client, productID, "remove-stock", 1)
			if err != nil {
				log.WithError(err).Error("request failed")
				return
			}

			switch status {
			case http.StatusOK:
				committed.Add(1)
			case http.StatusBadRequest:
				rejected.Add(1)
			case http.StatusConflict:
				conflicted.Add(1)
			}
		}()
	}
	wg.Wait()

	log.WithFields(log.Fields{
		"total":      totalRequests,
		"committed":  committed.Load(),
		"rejected":   rejected.Load(),
		"conflicted": conflicted.Load(),
		"elapsed":    time.Since(start),
	}).Info("done")
}

func createProduct(client *http.Client, sku string) (string, error) {
	body, _ := json.Marshal(map[string]any{
		"name":  "stress test product",
		"sku":   sku,
		"price": "9.99",
	})

	resp, err := client.Post(baseURL+"/products", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var product struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return "", err
	}
	return product.ID, nil
}

func postQuantity(client *http.Client, productID, op string, quantity int) (int, error) {
	body, _ := json.Marshal(map[string]int{"quantity": quantity})

	url := fmt.Sprintf("%s/products/%s/stock/%s", baseURL, productID, op)
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}
