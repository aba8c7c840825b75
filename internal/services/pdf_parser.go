package services

import (
	"fmt"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// maxPDFPages bounds how much of a document is read; anything past it is
// not a CV.
const maxPDFPages = 20

type PDFParserService interface {
	// ExtractPages returns the raw text layer of each readable page.
	ExtractPages(filepath string) ([]string, error)
}

type pdfParserService struct {
	log *zap.SugaredLogger
}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{log: zap.S().Named("pdf")}
}

func (p *pdfParserService) ExtractPages(filePath string) ([]string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	total := r.NumPage()
	if total > maxPDFPages {
		p.log.Infow("truncating long pdf", "file", filePath, "pages", total, "read", maxPDFPages)
		total = maxPDFPages
	}

	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			p.log.Debugw("skipping unreadable page", "file", filePath, "page", i, "error", err)
			continue
		}
		pages = append(pages, text)
	}

	return pages, nil
}
