package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"invoicegen/calc"
	"invoicegen/db"
	"invoicegen/layout"
	"invoicegen/models"
	"invoicegen/render"
)

// listLimit bounds the recent-invoices listing.
const listLimit = 50

// API holds the handler dependencies: the optional store and the
// process-wide business profile. A store without a connection keeps the
// PDF endpoints working in degraded mode.
type API struct {
	Store    *db.Store
	Business models.BusinessProfile
	Renderer render.Renderer
}

func New(store *db.Store, biz models.BusinessProfile) *API {
	return &API{Store: store, Business: biz, Renderer: render.FPDF{}}
}

var filenameUnsafe = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Generate computes, optionally saves, and renders an invoice
// @Summary      Generate invoice PDF
// @Description  Validate the submitted invoice, recompute line amounts and total server-side, save it when the database is available, and return the rendered PDF.
// @Tags         invoices
// @Accept       json
// @Produce      application/pdf
// @Param        invoice  body      models.GenerateRequest  true  "Invoice form contents"
// @Success      200      {file}    file
// @Failure      400      {object}  Response{error=string}
// @Failure      500      {object}  Response{error=string}
// @Router       /generate [post]
func (a *API) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	inv := buildInvoice(req)

	if a.Store.Available() {
		err := a.Store.Save(inv, req.IsEditing, req.OriginalInvoiceNo)
		switch {
		case errors.Is(err, db.ErrDuplicate):
			writeError(w, http.StatusBadRequest, "invoice number already exists, please use a different number")
			return
		case err != nil:
			// Only duplicates stop the request; any other save failure
			// still produces the PDF.
			slog.Warn("invoice save failed, continuing with PDF generation",
				"invoice_no", inv.InvoiceNo, "error", err)
		}
	}

	pdfBytes, err := a.Renderer.Render(layout.Build(inv, a.Business))
	if err != nil {
		slog.Error("document generation failed", "invoice_no", inv.InvoiceNo, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to generate document")
		return
	}

	filename := fmt.Sprintf("invoice_%s_%s.pdf",
		filenameUnsafe.ReplaceAllString(inv.BillTo, "_"),
		filenameUnsafe.ReplaceAllString(inv.InvoiceNo, "_"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
	w.Write(pdfBytes)
}

// buildInvoice recomputes every line and the total from the raw input.
// The request is already validated, so the date parses are safe.
func buildInvoice(req models.GenerateRequest) models.Invoice {
	items := make([]models.InvoiceItem, 0, len(req.Items))
	for _, in := range req.Items {
		items = append(items, calc.ComputeItem(in))
	}
	date, _ := time.Parse(models.DateFormat, req.Date)
	due, _ := time.Parse(models.DateFormat, req.DueDate)
	return models.Invoice{
		InvoiceNo: req.InvoiceNo,
		BillTo:    req.BillTo,
		Date:      date,
		DueDate:   due,
		Items:     items,
		Total:     calc.ComputeTotal(items),
		Received:  models.ParseNumber(req.Received),
	}
}

// GetInvoice retrieves a single invoice by number
// @Summary      Get invoice
// @Description  Look up a stored invoice by its invoice number.
// @Tags         invoices
// @Produce      json
// @Param        invoiceNo  path      string  true  "Invoice number"
// @Success      200        {object}  Response{data=models.Invoice}
// @Failure      404        {object}  Response{error=string}
// @Failure      503        {object}  Response{error=string}
// @Router       /api/invoice/{invoiceNo} [get]
func (a *API) GetInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := a.Store.GetByNumber(chi.URLParam(r, "invoiceNo"))
	if err != nil {
		a.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// ListInvoices lists recent invoices
// @Summary      List invoices
// @Description  Get recent invoices, newest first, bounded to 50 entries.
// @Tags         invoices
// @Produce      json
// @Success      200  {object}  Response{data=[]models.InvoiceSummary}
// @Failure      503  {object}  Response{error=string}
// @Router       /api/invoices [get]
func (a *API) ListInvoices(w http.ResponseWriter, r *http.Request) {
	summaries, err := a.Store.ListRecent(listLimit)
	if err != nil {
		a.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

// DeleteInvoice deletes an invoice by number
// @Summary      Delete invoice
// @Description  Remove a stored invoice and its line items.
// @Tags         invoices
// @Produce      json
// @Param        invoiceNo  path      string  true  "Invoice number"
// @Success      200        {object}  Response{data=map[string]string}
// @Failure      404        {object}  Response{error=string}
// @Failure      503        {object}  Response{error=string}
// @Router       /api/invoice/{invoiceNo} [delete]
func (a *API) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	if err := a.Store.DeleteByNumber(chi.URLParam(r, "invoiceNo")); err != nil {
		a.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

func (a *API) storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, db.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "database not available, invoice storage features are disabled")
	case errors.Is(err, db.ErrNotFound):
		writeError(w, http.StatusNotFound, "invoice not found")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
