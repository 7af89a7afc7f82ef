// Package pdf renders finished invoices for printing or emailing. The
// renderer sits behind an interface so the service layer never links
// against the layout code directly.
package pdf

import (
	"context"
	"io"

	"go.uber.org/fx"
)

type Renderer interface {
	RenderInvoice(ctx context.Context, data InvoiceData) (io.Reader, error)
}

// InvoiceData is the fully formatted view of one invoice. Money fields are
// pre-formatted strings so the layout stays free of locale decisions.
type InvoiceData struct {
	CompanyName    string
	CompanyTagline string
	CompanyAddress string
	CompanyPhone   string
	CompanyEmail   string
	GstNumber      string
	LogoPath       string

	InvoiceNumber string
	ServiceDate   string

	CustomerName  string
	CustomerPhone string

	VehicleName  string
	LicensePlate string
	Mileage      string

	Items []InvoiceItem

	Subtotal string
	Gst      string
	Pst      string
	Total    string

	Notes string
}

type InvoiceItem struct {
	Description string
	Qty         int
	UnitPrice   string
	Amount      string
}

var Module = fx.Module("providers.pdf", fx.Provide(New))
