package models

import "time"

// InvoiceItem is a computed line item: the raw form fields plus the
// derived net amount. Recomputed from the input on every submit, never
// mutated afterwards.
type InvoiceItem struct {
	Name     string  `json:"name"`
	Qty      float64 `json:"qty"`
	Unit     string  `json:"unit"`
	Rate     float64 `json:"rate"`
	Discount string  `json:"discount"` // normalized label: "0", "10%" or "Rs.15"
	Amount   float64 `json:"amount"`   // net after discount
}

// Invoice is the persisted aggregate, keyed by invoice number.
// Total is always derivable from Items and is recomputed server-side;
// the client-side preview total is never trusted.
type Invoice struct {
	InvoiceNo string        `json:"invoiceNo"`
	BillTo    string        `json:"billTo"`
	Date      time.Time     `json:"date"`
	DueDate   time.Time     `json:"dueDate"`
	Items     []InvoiceItem `json:"items"`
	Total     float64       `json:"total"`
	Received  float64       `json:"received"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// InvoiceSummary is the projection returned by the list endpoint.
type InvoiceSummary struct {
	InvoiceNo string    `json:"invoiceNo"`
	BillTo    string    `json:"billTo"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"createdAt"`
}

// BusinessProfile is the seller identity printed on every document.
// Loaded from the environment at startup, read-only afterwards.
type BusinessProfile struct {
	Name    string
	Address string
	Phone   string
	City    string
}
