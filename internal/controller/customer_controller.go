// internal/controller/customer_controller.go
package controller

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Hemannshu/xeno-crm/internal/model"
	"github.com/Hemannshu/xeno-crm/internal/service"
)

type CustomerController struct {
	CustomerService *service.CustomerService
}

func customerID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

// CreateCustomer publishes a customer event; the row appears once the
// projector consumes it, so the response echoes the event payload.
func (c *CustomerController) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var customer model.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	event, err := c.CustomerService.CreateCustomer(&customer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, event)
}

func (c *CustomerController) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := customerID(r)
	if err != nil {
		http.Error(w, "invalid customer id", http.StatusBadRequest)
		return
	}
	customer, err := c.CustomerService.GetCustomer(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (c *CustomerController) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := c.CustomerService.ListCustomers()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func (c *CustomerController) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := customerID(r)
	if err != nil {
		http.Error(w, "invalid customer id", http.StatusBadRequest)
		return
	}
	var details model.Customer
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	customer, err := c.CustomerService.UpdateCustomer(id, &details)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (c *CustomerController) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := customerID(r)
	if err != nil {
		http.Error(w, "invalid customer id", http.StatusBadRequest)
		return
	}
	if err := c.CustomerService.DeleteCustomer(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *CustomerController) GetCustomersBySegment(w http.ResponseWriter, r *http.Request) {
	segment := chi.URLParam(r, "segment")
	customers, err := c.CustomerService.GetCustomersBySegment(segment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func (c *CustomerController) GetInactiveCustomers(w http.ResponseWriter, r *http.Request) {
	months := 6
	if v := r.URL.Query().Get("months_threshold"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 {
			http.Error(w, "invalid months_threshold", http.StatusBadRequest)
			return
		}
		months = m
	}
	customers, err := c.CustomerService.GetInactiveCustomers(months)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func (c *CustomerController) GetHighValueCustomers(w http.ResponseWriter, r *http.Request) {
	minSpend := 10000.0
	if v := r.URL.Query().Get("min_spend"); v != "" {
		m, err := strconv.ParseFloat(v, 64)
		if err != nil {
			http.Error(w, "invalid min_spend", http.StatusBadRequest)
			return
		}
		minSpend = m
	}
	customers, err := c.CustomerService.GetHighValueCustomers(minSpend)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func (c *CustomerController) GetFrequentCustomers(w http.ResponseWriter, r *http.Request) {
	minOrders := 5
	if v := r.URL.Query().Get("min_orders"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "invalid min_orders", http.StatusBadRequest)
			return
		}
		minOrders = m
	}
	customers, err := c.CustomerService.GetFrequentCustomers(minOrders)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func (c *CustomerController) GetCommunicationHistory(w http.ResponseWriter, r *http.Request) {
	id, err := customerID(r)
	if err != nil {
		http.Error(w, "invalid customer id", http.StatusBadRequest)
		return
	}
	logs, err := c.CustomerService.GetCommunicationHistory(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (c *CustomerController) GetCustomerStats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.CustomerService.GetCustomerStats()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (c *CustomerController) UpdateCustomerSegment(w http.ResponseWriter, r *http.Request) {
	id, err := customerID(r)
	if err != nil {
		http.Error(w, "invalid customer id", http.StatusBadRequest)
		return
	}
	var body struct {
		Segment string `json:"segment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if err := c.CustomerService.UpdateCustomerSegment(id, body.Segment); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *CustomerController) UpdateCustomerTags(w http.ResponseWriter, r *http.Request) {
	id, err := customerID(r)
	if err != nil {
		http.Error(w, "invalid customer id", http.StatusBadRequest)
		return
	}
	var body struct {
		Tags string `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if err := c.CustomerService.UpdateCustomerTags(id, body.Tags); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
