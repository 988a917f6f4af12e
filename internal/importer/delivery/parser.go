package delivery

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	enc "github.com/MrJamesThe3rd/comptoir/internal/encoding"
)

var ErrNoHeader = errors.New("no delivery header found")

// Line is one delivered product. Prices are zero when the sheet leaves them out.
type Line struct {
	Row       int
	Name      string
	Quantity  int
	CostPrice int64
	SalePrice int64
}

// RowError points at the offending row of the sheet, counted from 1.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Parser reads supplier delivery sheets exported as CSV. The charset, the
// separator and the column layout are detected from the content.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]Line, error) {
	utf8r, _, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	content, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read delivery: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = detectSeparator(content)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var (
		rows  [][]string
		lines []int
	)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		line, _ := reader.FieldPos(0)
		rows = append(rows, record)
		lines = append(lines, line)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, ErrNoHeader
	}

	return parseRows(profile, cols, rows[headerIdx+1:], lines[headerIdx+1:])
}

// detectSeparator picks ';' or ',' by counting them on the first non-blank line.
func detectSeparator(content []byte) rune {
	sc := bufio.NewScanner(bytes.NewReader(content))
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.Count(line, ";") >= strings.Count(line, ",") {
			return ';'
		}

		return ','
	}

	return ';'
}

type colIndex map[string]int

func (c colIndex) lookup(name string) int {
	if name == "" {
		return -1
	}

	if i, ok := c[name]; ok {
		return i
	}

	return -1
}

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows stops at the first malformed row; a delivery is booked whole or not at all.
// Rows without a product name are treated as blank or footer lines. lineNums
// holds the source line of each row so errors point into the file.
func parseRows(p *Profile, cols colIndex, rows [][]string, lineNums []int) ([]Line, error) {
	nameIdx := cols.lookup(p.NameCol)
	qtyIdx := cols.lookup(p.QtyCol)
	costIdx := cols.lookup(p.CostCol)
	saleIdx := cols.lookup(p.SaleCol)

	var lines []Line

	for i, row := range rows {
		rowNum := lineNums[i]

		name := cellValue(row, nameIdx)
		if name == "" || isTotalRow(name) {
			continue
		}

		qty, err := strconv.Atoi(strings.ReplaceAll(cellValue(row, qtyIdx), " ", ""))
		if err != nil {
			return nil, &RowError{Row: rowNum, Err: fmt.Errorf("quantity %q is not a whole number", cellValue(row, qtyIdx))}
		}

		if qty <= 0 {
			return nil, &RowError{Row: rowNum, Err: fmt.Errorf("quantity must be positive, got %d", qty)}
		}

		cost, err := optionalAmount(row, costIdx)
		if err != nil {
			return nil, &RowError{Row: rowNum, Err: fmt.Errorf("cost price: %w", err)}
		}

		sale, err := optionalAmount(row, saleIdx)
		if err != nil {
			return nil, &RowError{Row: rowNum, Err: fmt.Errorf("sale price: %w", err)}
		}

		lines = append(lines, Line{
			Row:       rowNum,
			Name:      name,
			Quantity:  qty,
			CostPrice: cost,
			SalePrice: sale,
		})
	}

	return lines, nil
}

func optionalAmount(row []string, idx int) (int64, error) {
	s := cellValue(row, idx)
	if s == "" {
		return 0, nil
	}

	cents, err := parseAmount(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	if cents < 0 {
		return 0, fmt.Errorf("negative amount %q", s)
	}

	return cents, nil
}

func isTotalRow(name string) bool {
	switch strings.ToLower(name) {
	case "total", "totaux", "totals":
		return true
	}

	return false
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
