package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type marotoRenderer struct{}

func New() Renderer {
	return &marotoRenderer{}
}

func (r *marotoRenderer) RenderInvoice(ctx context.Context, data InvoiceData) (io.Reader, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	if data.LogoPath != "" {
		m.AddRow(30,
			image.NewFromFileCol(3, data.LogoPath, props.Rect{Percent: 80}),
			col.New(9),
		)
	}

	m.AddRow(12,
		text.NewCol(12, data.CompanyName, props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)
	if data.CompanyTagline != "" {
		m.AddRow(6,
			text.NewCol(12, data.CompanyTagline, props.Text{Size: 9}),
		)
	}
	m.AddRow(18,
		col.New(6).Add(
			text.New(data.CompanyAddress, props.Text{Size: 9}),
			text.New(data.CompanyPhone, props.Text{Size: 9, Top: 4}),
			text.New(data.CompanyEmail, props.Text{Size: 9, Top: 8}),
		),
		col.New(6).Add(
			text.New("Invoice "+data.InvoiceNumber, props.Text{Style: fontstyle.Bold, Align: align.Right}),
			text.New("Date: "+data.ServiceDate, props.Text{Size: 9, Top: 5, Align: align.Right}),
			text.New(gstLine(data.GstNumber), props.Text{Size: 9, Top: 9, Align: align.Right}),
		),
	)

	m.AddRow(22,
		col.New(6).Add(
			text.New("Bill to", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.New(data.CustomerName, props.Text{Size: 9, Top: 4}),
			text.New(data.CustomerPhone, props.Text{Size: 9, Top: 8}),
		),
		col.New(6).Add(
			text.New("Vehicle", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.New(data.VehicleName, props.Text{Size: 9, Top: 4}),
			text.New(plateAndMileage(data.LicensePlate, data.Mileage), props.Text{Size: 9, Top: 8}),
		),
	)

	m.AddRow(10,
		text.NewCol(6, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range data.Items {
		m.AddRow(8,
			text.NewCol(6, item.Description, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%d", item.Qty), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.UnitPrice, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.Amount, props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Subtotal", props.Text{Size: 9}),
		text.NewCol(2, data.Subtotal, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "GST", props.Text{Size: 9}),
		text.NewCol(2, data.Gst, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "PST", props.Text{Size: 9}),
		text.NewCol(2, data.Pst, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 10}),
		text.NewCol(2, data.Total, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}),
	)

	if data.Notes != "" {
		m.AddRow(15,
			text.NewCol(12, "Notes: "+data.Notes, props.Text{Size: 8, Top: 4}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(doc.GetBytes()), nil
}

func gstLine(gstNumber string) string {
	if gstNumber == "" {
		return ""
	}
	return "GST# " + gstNumber
}

func plateAndMileage(plate, mileage string) string {
	switch {
	case plate != "" && mileage != "":
		return plate + " at " + mileage
	case plate != "":
		return plate
	default:
		return mileage
	}
}
