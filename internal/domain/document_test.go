package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentPayload_MediaTypeChecks(t *testing.T) {
	pdf := &DocumentPayload{MediaType: MediaTypePDF}
	assert.True(t, pdf.IsPDF())
	assert.False(t, pdf.IsImage())

	img := &DocumentPayload{MediaType: "image/jpeg"}
	assert.False(t, img.IsPDF())
	assert.True(t, img.IsImage())

	// nil 载荷不恐慌
	var missing *DocumentPayload
	assert.False(t, missing.IsPDF())
	assert.False(t, missing.IsImage())
}
