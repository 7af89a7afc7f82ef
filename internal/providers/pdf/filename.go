package pdf

import (
	"fmt"
	"time"

	"github.com/gosimple/slug"
)

// FileName builds a filesystem-safe name for a rendered invoice, e.g.
// "invoice-dana-roy-2025-02-10.pdf".
func FileName(customerName string, serviceDate time.Time) string {
	s := slug.Make(customerName)
	if s == "" {
		s = "invoice"
		return fmt.Sprintf("%s-%s.pdf", s, serviceDate.UTC().Format("2006-01-02"))
	}
	return fmt.Sprintf("invoice-%s-%s.pdf", s, serviceDate.UTC().Format("2006-01-02"))
}
