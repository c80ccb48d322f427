package importer

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PDFPageCount opens a PDF and returns its number of pages.
func PDFPageCount(path string) (int, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening pdf %s: %w", path, err)
	}
	defer f.Close()
	return r.NumPage(), nil
}
