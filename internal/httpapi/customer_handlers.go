package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Rizwan2611/CLV-calculator/internal/clv"
)

type customerRequest struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	AveragePurchaseValue float64 `json:"averagePurchaseValue"`
	PurchaseFrequency    float64 `json:"purchaseFrequency"`
	CustomerLifespan     float64 `json:"customerLifespan"`
}

func (req customerRequest) customer() clv.Customer {
	return clv.Customer{
		ID:                   req.ID,
		Name:                 req.Name,
		AveragePurchaseValue: req.AveragePurchaseValue,
		PurchaseFrequency:    req.PurchaseFrequency,
		CustomerLifespan:     req.CustomerLifespan,
	}
}

func (a *API) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers := a.customers.All()
	if customers == nil {
		customers = []clv.Customer{}
	}
	writeEnvelope(w, map[string]any{
		"customers": customers,
		"status":    "success",
	})
}

func (a *API) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEnvelope(w, errorEnvelope("Invalid customer data"))
		return
	}
	a.addCustomer(w, r, req, "Invalid customer data")
}

// addCustomerQuery accepts the same payload through query parameters, a
// holdover from the dashboard's GET-based form submission.
func (a *API) addCustomerQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := customerRequest{
		ID:   q.Get("id"),
		Name: q.Get("name"),
	}
	req.AveragePurchaseValue, _ = strconv.ParseFloat(q.Get("averagePurchaseValue"), 64)
	req.PurchaseFrequency, _ = strconv.ParseFloat(q.Get("purchaseFrequency"), 64)
	req.CustomerLifespan, _ = strconv.ParseFloat(q.Get("customerLifespan"), 64)

	a.addCustomer(w, r, req, "Invalid customer data - missing required fields")
}

func (a *API) addCustomer(w http.ResponseWriter, r *http.Request, req customerRequest, invalidMsg string) {
	cust, err := a.customers.Add(r.Context(), req.customer())
	switch {
	case errors.Is(err, clv.ErrDuplicateID):
		writeEnvelope(w, errorEnvelope("Customer ID already exists"))
		return
	case err != nil:
		writeEnvelope(w, errorEnvelope(invalidMsg))
		return
	}
	writeEnvelope(w, map[string]any{
		"status":   "success",
		"message":  "Customer added successfully",
		"customer": cust,
	})
}

func (a *API) analytics(w http.ResponseWriter, r *http.Request) {
	customers := a.customers.All()

	analytics := map[string]any{
		"totalCustomers": len(customers),
		"message":        "Analytics data retrieved",
	}
	if len(customers) > 0 {
		sum := clv.Summarize(customers)
		analytics["averageClv"] = sum.Average
		analytics["highestClv"] = sum.Max
		analytics["lowestClv"] = sum.Min
		analytics["totalClv"] = sum.Sum
	}

	writeEnvelope(w, map[string]any{
		"status":    "success",
		"analytics": analytics,
	})
}
