package payroll

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"hrpay/internal/apperr"
)

// Sealer encrypts rendered documents at rest.
type Sealer interface {
	Enabled() bool
	Seal(plain []byte) ([]byte, error)
}

type PDFRenderer struct {
	dir     string
	company string
	sealer  Sealer
}

func NewPDFRenderer(dir, company string, sealer Sealer) *PDFRenderer {
	return &PDFRenderer{dir: dir, company: company, sealer: sealer}
}

// Bytes lays out p on one A4 page.
func (r *PDFRenderer) Bytes(p Payslip) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Payslip %d %s", p.EmployeeID, p.Period), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	line := func(label, value string) {
		pdf.CellFormat(60, 7, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
	}
	line("Company", r.company)
	line("Employee ID", fmt.Sprintf("%d", p.EmployeeID))
	line("Name", p.Name)
	line("Period", p.Period)
	line("Job title", p.JobTitle)
	line("Scale point", fmt.Sprintf("%d", p.ScalePoint))
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(95, 8, "Payments", "B", 0, "L", false, 0, "")
	pdf.CellFormat(0, 8, "Deductions", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	amounts := [][2]string{
		{"Gross pay " + p.Gross.StringFixed(2), "Income tax " + p.IncomeTax.StringFixed(2)},
		{"", "PRSI " + p.PRSI.StringFixed(2)},
		{"", "USC " + p.USC.StringFixed(2)},
		{"", "Union fee " + p.UnionFee.StringFixed(2)},
	}
	for _, row := range amounts {
		pdf.CellFormat(95, 7, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Net pay this month: "+p.Net.StringFixed(2), "T", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders p into the output directory and returns the file path.
// The file is sealed and given a .enc suffix when a key is configured.
func (r *PDFRenderer) Write(p Payslip) (string, error) {
	data, err := r.Bytes(p)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", apperr.Storage("mkdir", r.dir, err)
	}
	path := filepath.Join(r.dir, fileName(p))
	if r.sealer != nil && r.sealer.Enabled() {
		if data, err = r.sealer.Seal(data); err != nil {
			return "", err
		}
		path += ".enc"
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", apperr.Storage("write", path, err)
	}
	return path, nil
}

func fileName(p Payslip) string {
	return fmt.Sprintf("payslip-%d-%s.pdf", p.EmployeeID, strings.ReplaceAll(p.Period, "/", "-"))
}
