// internal/controller/order_controller.go
package controller

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Hemannshu/xeno-crm/internal/model"
	"github.com/Hemannshu/xeno-crm/internal/service"
)

type OrderController struct {
	OrderService *service.OrderService
}

// IngestOrder publishes an order event to the bus; persistence happens
// asynchronously in the projector.
func (c *OrderController) IngestOrder(w http.ResponseWriter, r *http.Request) {
	var event model.OrderEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if err := c.OrderService.IngestOrder(&event); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"order_number": event.OrderNumber})
}

func (c *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}
	order, err := c.OrderService.GetOrder(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (c *OrderController) ListOrders(w http.ResponseWriter, r *http.Request) {
	customerIDStr := r.URL.Query().Get("customer_id")
	if customerIDStr == "" {
		http.Error(w, "customer_id query parameter is required", http.StatusBadRequest)
		return
	}
	customerID, err := strconv.Atoi(customerIDStr)
	if err != nil {
		http.Error(w, "invalid customer_id", http.StatusBadRequest)
		return
	}
	orders, err := c.OrderService.ListOrdersByCustomer(customerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}
