package scale

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"hrpay/internal/apperr"
	"hrpay/internal/platform/csvfile"
)

type ladder struct {
	title  string
	points map[int]decimal.Decimal
	max    int
}

// Table maps (job title, scale point) to an annual salary. Titles match
// case-insensitively; the spelling on file is canonical.
type Table struct {
	entries []Entry
	order   []string
	ladders map[string]*ladder
}

func NewTable(entries []Entry) *Table {
	t := &Table{ladders: make(map[string]*ladder)}
	for _, entry := range entries {
		key := normalize(entry.JobTitle)
		l, ok := t.ladders[key]
		if !ok {
			l = &ladder{title: strings.TrimSpace(entry.JobTitle), points: make(map[int]decimal.Decimal)}
			t.ladders[key] = l
			t.order = append(t.order, l.title)
		}
		l.points[entry.ScalePoint] = entry.AnnualSalary
		if entry.ScalePoint > l.max {
			l.max = entry.ScalePoint
		}
		t.entries = append(t.entries, entry)
	}
	return t
}

// Load reads the scale table from a CSV file of jobTitle, scalePoint,
// annualSalary rows. A missing file yields an empty table.
func Load(path string) (*Table, error) {
	rows, err := csvfile.New(path, Columns...).Read()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(rows))
	for i, row := range rows {
		if len(row) < 3 {
			return nil, apperr.Storage("parse", path, fmt.Errorf("row %d: expected 3 columns, got %d", i+1, len(row)))
		}
		point, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, apperr.Storage("parse", path, fmt.Errorf("row %d: scale point %q: %w", i+1, row[1], err))
		}
		salary, err := decimal.NewFromString(row[2])
		if err != nil {
			return nil, apperr.Storage("parse", path, fmt.Errorf("row %d: salary %q: %w", i+1, row[2], err))
		}
		entries = append(entries, Entry{JobTitle: row[0], ScalePoint: point, AnnualSalary: salary})
	}
	return NewTable(entries), nil
}

func (t *Table) IsValidJobTitle(title string) bool {
	_, ok := t.ladders[normalize(title)]
	return ok
}

// CanonicalTitle returns the title as spelled in the table.
func (t *Table) CanonicalTitle(title string) (string, bool) {
	l, ok := t.ladders[normalize(title)]
	if !ok {
		return "", false
	}
	return l.title, true
}

func (t *Table) MaxScalePoint(title string) (int, error) {
	l, ok := t.ladders[normalize(title)]
	if !ok {
		return 0, apperr.NotFound("job title", title)
	}
	return l.max, nil
}

func (t *Table) IsValidScalePoint(title string, point int) bool {
	max, err := t.MaxScalePoint(title)
	if err != nil {
		return false
	}
	return point >= 1 && point <= max
}

func (t *Table) AnnualSalary(title string, point int) (decimal.Decimal, error) {
	l, ok := t.ladders[normalize(title)]
	if !ok {
		return decimal.Zero, apperr.NotFound("job title", title)
	}
	salary, ok := l.points[point]
	if !ok {
		return decimal.Zero, apperr.NotFound("scale point", fmt.Sprintf("%s/%d", l.title, point))
	}
	return salary, nil
}

// HourlyRate returns annual salary over StandardAnnualHours. Zero means the
// combination is not on file and must be treated as unavailable.
func (t *Table) HourlyRate(title string, point int) decimal.Decimal {
	salary, err := t.AnnualSalary(title, point)
	if err != nil {
		return decimal.Zero
	}
	return salary.Div(decimal.NewFromInt(StandardAnnualHours))
}

func (t *Table) JobTitles() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

func (t *Table) Points(title string) []int {
	l, ok := t.ladders[normalize(title)]
	if !ok {
		return nil
	}
	points := make([]int, 0, len(l.points))
	for p := range l.points {
		points = append(points, p)
	}
	sort.Ints(points)
	return points
}

func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

func normalize(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
