package payroll

import (
	"context"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"

	"hrpay/internal/apperr"
	"hrpay/internal/platform/csvfile"
)

// PayslipStore is the append-only payslip log.
type PayslipStore struct {
	file *csvfile.File
	mu   sync.Mutex
}

func NewPayslipStore(path string) *PayslipStore {
	return &PayslipStore{file: csvfile.New(path, PayslipColumns...)}
}

func (s *PayslipStore) Append(ctx context.Context, slips ...Payslip) error {
	if len(slips) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(slips))
	for _, p := range slips {
		rows = append(rows, payslipRow(p))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Append(rows...)
}

// List returns every payslip in file order. Rows that do not carry all
// eleven fields are ignored.
func (s *PayslipStore) List(ctx context.Context) ([]Payslip, error) {
	rows, err := s.file.Read()
	if err != nil {
		return nil, err
	}
	out := make([]Payslip, 0, len(rows))
	for _, row := range rows {
		if len(row) != len(PayslipColumns) {
			continue
		}
		p, err := parsePayslip(row)
		if err != nil {
			return nil, apperr.Storage("parse", s.file.Path, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *PayslipStore) ForEmployee(ctx context.Context, id int, period Period) ([]Payslip, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	label := period.String()
	var out []Payslip
	for _, p := range all {
		if p.EmployeeID == id && p.Period == label {
			out = append(out, p)
		}
	}
	return out, nil
}

// IssuedIDs returns the employee ids already holding a payslip for period.
func (s *PayslipStore) IssuedIDs(ctx context.Context, period Period) (map[int]bool, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	label := period.String()
	out := make(map[int]bool)
	for _, p := range all {
		if p.Period == label {
			out[p.EmployeeID] = true
		}
	}
	return out, nil
}

func payslipRow(p Payslip) []string {
	return []string{
		strconv.Itoa(p.EmployeeID),
		p.Name,
		p.Period,
		p.JobTitle,
		strconv.Itoa(p.ScalePoint),
		p.Gross.StringFixed(2),
		p.IncomeTax.StringFixed(2),
		p.PRSI.StringFixed(2),
		p.USC.StringFixed(2),
		p.UnionFee.StringFixed(2),
		p.Net.StringFixed(2),
	}
}

func parsePayslip(row []string) (Payslip, error) {
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return Payslip{}, err
	}
	point, err := strconv.Atoi(row[4])
	if err != nil {
		return Payslip{}, err
	}
	amounts := make([]decimal.Decimal, 6)
	for i := range amounts {
		if amounts[i], err = decimal.NewFromString(row[5+i]); err != nil {
			return Payslip{}, err
		}
	}
	return Payslip{
		EmployeeID: id,
		Name:       row[1],
		Period:     normalizeLabel(row[2]),
		JobTitle:   row[3],
		ScalePoint: point,
		Gross:      amounts[0],
		IncomeTax:  amounts[1],
		PRSI:       amounts[2],
		USC:        amounts[3],
		UnionFee:   amounts[4],
		Net:        amounts[5],
	}, nil
}

// normalizeLabel rewrites M/YYYY rows from older files to MM/YYYY.
func normalizeLabel(raw string) string {
	if p, err := ParsePeriod(raw); err == nil {
		return p.String()
	}
	return raw
}
