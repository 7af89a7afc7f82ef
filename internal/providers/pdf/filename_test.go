package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFileName(t *testing.T) {
	date := time.Date(2025, 2, 10, 14, 30, 0, 0, time.UTC)

	assert.Equal(t, "invoice-dana-roy-2025-02-10.pdf", FileName("Dana Roy", date))
	assert.Equal(t, "invoice-dana-roy-2025-02-10.pdf", FileName("  Dana   Roy  ", date))
	assert.Equal(t, "invoice-2025-02-10.pdf", FileName("", date))
}
