package documents

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/saleem-shalabi/Medi-Care-App/internal/domain"
	"github.com/saleem-shalabi/Medi-Care-App/internal/service"
)

// PDFService renders rental contract agreements to disk and serves them
// through a static base URL.
type PDFService struct {
	outputDir string
	baseURL   string
}

func NewPDFService(outputDir, baseURL string) (*PDFService, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create document directory: %w", err)
	}
	return &PDFService{outputDir: outputDir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

var _ service.DocumentService = (*PDFService)(nil)

func (s *PDFService) GenerateContractDocument(ctx context.Context, user *domain.User, product *domain.Product, contract *domain.RentalContract) (string, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "MediCare Rental Agreement", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	rows := [][2]string{
		{"Contract Number", contract.ContractNumber},
		{"Customer", user.Username},
		{"Email", user.Email},
		{"Product", product.NameEn},
		{"Rental Start", contract.StartDate.Format("2006-01-02")},
		{"Rental End", contract.EndDate.Format("2006-01-02")},
		{"Daily Rate", fmt.Sprintf("%.2f", float64(product.RentPriceCents)/100)},
		{"Terms Accepted", contract.AgreedToTermsAt.Format("2006-01-02 15:04 MST")},
	}
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(50, 8, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, row[1], "1", 1, "L", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5,
		"The customer agrees to return the equipment by the rental end date in the condition it was received, "+
			"normal wear excepted. Late returns accrue the daily rate until the equipment is returned. "+
			"Damage beyond normal wear is billed at repair or replacement cost.",
		"", "L", false)

	filename := fmt.Sprintf("contract-%s.pdf", sanitize(contract.ContractNumber))
	path := filepath.Join(s.outputDir, filename)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write contract document: %w", err)
	}

	return s.baseURL + "/" + filename, nil
}

// sanitize keeps contract numbers filesystem-safe.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '-'
	}, s)
}
