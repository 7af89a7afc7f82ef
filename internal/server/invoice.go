package server

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	invoicedomain "github.com/motorbill/motorbill/internal/invoice/domain"
	"github.com/motorbill/motorbill/internal/providers/pdf"
)

type invoiceLineRequest struct {
	ServiceItemID *int64 `json:"service_item_id"`
	Description   string `json:"description"`
	PriceCents    int64  `json:"price_cents"`
	Quantity      int    `json:"quantity"`
}

type createInvoiceRequest struct {
	CustomerID  int64                `json:"customer_id"`
	VehicleID   int64                `json:"vehicle_id"`
	ServiceDate time.Time            `json:"service_date"`
	Mileage     *int                 `json:"mileage"`
	Notes       string               `json:"notes"`
	Force       bool                 `json:"force"`
	LineItems   []invoiceLineRequest `json:"line_items"`
}

func (r createInvoiceRequest) toDomain() invoicedomain.CreateInvoiceRequest {
	req := invoicedomain.CreateInvoiceRequest{
		CustomerID:  snowflake.ID(r.CustomerID),
		VehicleID:   snowflake.ID(r.VehicleID),
		ServiceDate: r.ServiceDate,
		Mileage:     r.Mileage,
		Notes:       r.Notes,
	}
	for _, line := range r.LineItems {
		in := invoicedomain.LineItemInput{
			Description: line.Description,
			PriceCents:  line.PriceCents,
			Quantity:    line.Quantity,
		}
		if line.ServiceItemID != nil {
			id := snowflake.ID(*line.ServiceItemID)
			in.ServiceItemID = &id
		}
		req.LineItems = append(req.LineItems, in)
	}
	return req
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.invoiceSvc.Create(c.Request.Context(), req.toDomain(), req.Force)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// CheckDuplicateServices previews the advisory so the caller can show the
// overlapping invoices before asking the user to confirm.
func (s *Server) CheckDuplicateServices(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	dreq := req.toDomain()
	when := dreq.ServiceDate
	if when.IsZero() {
		when = s.clock.Now()
	}
	matches, err := s.invoiceSvc.FindRecentDuplicateServices(c.Request.Context(), dreq.VehicleID, dreq.LineItems, when)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": matches})
}

func (s *Server) GetInvoice(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	resp, err := s.invoiceSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteInvoice(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if err := s.invoiceSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) ListInvoices(c *gin.Context) {
	from, err := parseOptionalTime(c.Query("from"), time.Time{})
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	to, err := parseOptionalTime(c.Query("to"), s.clock.Now())
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.invoiceSvc.ListByDateRange(c.Request.Context(), from, to)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListCustomerInvoices(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	resp, err := s.invoiceSvc.ListByCustomer(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListVehicleInvoices(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	resp, err := s.invoiceSvc.ListByVehicle(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RenderInvoicePDF(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	ctx := c.Request.Context()

	inv, err := s.invoiceSvc.GetByID(ctx, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	cust, err := s.customerSvc.GetByID(ctx, inv.CustomerID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	veh, err := s.vehicleSvc.GetByID(ctx, inv.VehicleID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	data := pdf.InvoiceData{
		InvoiceNumber: inv.ID.String(),
		ServiceDate:   inv.ServiceDate.Format("2006-01-02"),
		CustomerName:  cust.Name,
		CustomerPhone: cust.Phone,
		VehicleName:   veh.DisplayName(),
		LicensePlate:  veh.LicensePlate,
		Subtotal:      formatCents(inv.Subtotal),
		Gst:           formatCents(inv.GstAmount),
		Pst:           formatCents(inv.PstAmount),
		Total:         formatCents(inv.Total),
		Notes:         inv.Notes,
	}
	if inv.Mileage != nil {
		data.Mileage = fmt.Sprintf("%d km", *inv.Mileage)
	}
	if company, cerr := s.companySvc.Get(ctx); cerr == nil {
		data.CompanyName = company.Name
		data.CompanyTagline = company.Tagline
		data.CompanyAddress = company.AddressLine1
		data.CompanyPhone = company.Phone1
		data.CompanyEmail = company.Email
		data.GstNumber = company.GstNumber
		data.LogoPath = company.LogoPath
	}
	for _, line := range inv.LineItems {
		data.Items = append(data.Items, pdf.InvoiceItem{
			Description: line.Description,
			Qty:         line.Quantity,
			UnitPrice:   formatCents(line.PriceCents),
			Amount:      formatCents(line.PriceCents * int64(line.Quantity)),
		})
	}

	doc, err := s.pdfRenderer.RenderInvoice(ctx, data)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	body, err := io.ReadAll(doc)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	name := pdf.FileName(cust.Name, inv.ServiceDate)
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/pdf", body)
}

func formatCents(cents int64) string {
	return "$" + strconv.FormatFloat(float64(cents)/100, 'f', 2, 64)
}

func parseOptionalTime(raw string, def time.Time) (time.Time, error) {
	if raw == "" {
		return def, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}
