package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateFormat is the wire format for dates submitted by the form.
const DateFormat = "2006-01-02"

// Units accepted for a line item, matching the form dropdown.
var Units = []string{"BDL", "BOX", "BTL", "DOZ", "GM", "KG", "LTR", "ML", "PCS", "PKT", "TIN"}

var unitSet = func() map[string]bool {
	m := make(map[string]bool, len(Units))
	for _, u := range Units {
		m[u] = true
	}
	return m
}()

// ItemInput is one raw line item as submitted by the form. Numeric
// fields arrive as strings; coercion is lenient so a half-filled form
// still produces a document.
type ItemInput struct {
	Name     string `json:"name"`
	Qty      string `json:"qty"`
	Unit     string `json:"unit"`
	Rate     string `json:"rate"`
	Discount string `json:"discount"`
}

// GenerateRequest is the body of POST /generate.
type GenerateRequest struct {
	BillTo            string      `json:"billto"`
	InvoiceNo         string      `json:"invoice"`
	Date              string      `json:"date"`    // YYYY-MM-DD
	DueDate           string      `json:"duedate"` // YYYY-MM-DD, defaults to Date
	Received          string      `json:"received"`
	Items             []ItemInput `json:"items"`
	IsEditing         bool        `json:"isEditing"`
	OriginalInvoiceNo string      `json:"originalInvoiceNo"`
}

// Validate checks required fields and normalizes defaults. Returns an
// empty string when the request is acceptable.
func (r *GenerateRequest) Validate() string {
	if strings.TrimSpace(r.BillTo) == "" {
		return "billto is required"
	}
	if strings.TrimSpace(r.InvoiceNo) == "" {
		return "invoice is required"
	}
	if _, err := time.Parse(DateFormat, r.Date); err != nil {
		return "date must be in YYYY-MM-DD format"
	}
	if r.DueDate == "" {
		r.DueDate = r.Date
	}
	if _, err := time.Parse(DateFormat, r.DueDate); err != nil {
		return "duedate must be in YYYY-MM-DD format"
	}
	if len(r.Items) == 0 {
		return "at least one item is required"
	}
	for i := range r.Items {
		it := &r.Items[i]
		if strings.TrimSpace(it.Name) == "" {
			return fmt.Sprintf("item %d: name is required", i+1)
		}
		if it.Unit == "" {
			it.Unit = "PCS"
		}
		if !unitSet[it.Unit] {
			return fmt.Sprintf("item %d: unit must be one of %s", i+1, strings.Join(Units, ", "))
		}
		if ParseNumber(it.Qty) < 0 {
			return fmt.Sprintf("item %d: qty must be non-negative", i+1)
		}
		if ParseNumber(it.Rate) < 0 {
			return fmt.Sprintf("item %d: rate must be non-negative", i+1)
		}
	}
	if strings.TrimSpace(r.Received) == "" {
		r.Received = "0"
	}
	return ""
}

// ParseNumber coerces a form field to a float. Unparseable input reads
// as zero rather than failing, keeping the calculator always available.
func ParseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
