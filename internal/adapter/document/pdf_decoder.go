package document

import (
	"bytes"
	"fmt"
	"strings"

	"dadmind/internal/domain"

	"github.com/ledongthuc/pdf"
)

// PDFDecoder extracts text rows from every page of a PDF.
type PDFDecoder struct{}

func NewPDFDecoder() *PDFDecoder {
	return &PDFDecoder{}
}

// Decode returns one slice of fragments per page; each text row is a fragment.
// The pdf package panics on some malformed inputs, which surfaces as an error.
func (d *PDFDecoder) Decode(data []byte) (pages [][]string, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}

	total := reader.NumPage()
	pages = make([][]string, 0, total)
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, nil)
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("reading page %d: %w", i, err)
		}
		fragments := make([]string, 0, len(rows))
		for _, row := range rows {
			var sb strings.Builder
			for _, text := range row.Content {
				sb.WriteString(text.S)
			}
			if s := strings.TrimSpace(sb.String()); s != "" {
				fragments = append(fragments, s)
			}
		}
		pages = append(pages, fragments)
	}
	return pages, nil
}

var _ domain.DocumentDecoder = (*PDFDecoder)(nil)
