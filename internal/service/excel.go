package service

import (
	"bytes"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/extrame/xls"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"

	"hrportal/backend/internal/entity"
)

const employeeSheet = "Employees"

// employeeColumns is the column order of exports. Imports locate columns by
// these header names, plus "password".
var employeeColumns = []string{"emp_id", "name", "email", "department", "salary", "join_date", "qualification"}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type EmployeeRow struct {
	EmpID         string
	Name          string
	Email         string
	Department    string
	Salary        string
	JoinDate      string
	Qualification string
	Password      string
}

// ExportEmployees writes employees to a single sheet workbook.
func ExportEmployees(employees []entity.Employee) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", employeeSheet); err != nil {
		return nil, errors.Wrap(err, "naming sheet")
	}

	for i, header := range employeeColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(employeeSheet, cell, header); err != nil {
			return nil, errors.Wrap(err, "writing header")
		}
	}

	for i, e := range employees {
		values := []interface{}{e.EmpID, e.Name, e.Email, e.Department, e.Salary, e.JoinDate, e.Qualification}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(employeeSheet, cell, &values); err != nil {
			return nil, errors.Wrapf(err, "writing employee %s", e.EmpID)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "encoding workbook")
	}

	return buf, nil
}

// ReadEmployees parses an .xlsx or .xls upload. It returns the valid rows
// and the 1-based numbers of rows that were skipped.
func ReadEmployees(reader io.Reader, filename string) ([]EmployeeRow, []int, error) {
	rows, err := readRows(reader, filename)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, errors.New("worksheet is empty")
	}

	index := map[string]int{}
	for i, header := range rows[0] {
		index[normalizeHeader(header)] = i
	}
	for _, required := range []string{"emp_id", "name", "email", "department"} {
		if _, ok := index[required]; !ok {
			return nil, nil, errors.Errorf("missing column %q", required)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var (
		employees []EmployeeRow
		skipped   []int
		seen      = map[string]struct{}{}
	)
	for i, row := range rows[1:] {
		rowNumber := i + 2

		e := EmployeeRow{
			EmpID:         cell(row, "emp_id"),
			Name:          cell(row, "name"),
			Email:         cell(row, "email"),
			Department:    cell(row, "department"),
			Salary:        cell(row, "salary"),
			JoinDate:      normalizeDate(cell(row, "join_date")),
			Qualification: cell(row, "qualification"),
			Password:      cell(row, "password"),
		}

		if e.EmpID == "" && e.Name == "" && e.Email == "" {
			continue
		}
		if e.EmpID == "" || e.Name == "" || e.Email == "" || e.Department == "" {
			skipped = append(skipped, rowNumber)
			continue
		}
		if !isHalfWidth(e.EmpID) || !isHalfWidth(e.Password) || !isHalfWidth(e.Email) {
			skipped = append(skipped, rowNumber)
			continue
		}
		if !emailRegex.MatchString(e.Email) {
			skipped = append(skipped, rowNumber)
			continue
		}
		if _, dup := seen[e.EmpID]; dup {
			skipped = append(skipped, rowNumber)
			continue
		}

		seen[e.EmpID] = struct{}{}
		employees = append(employees, e)
	}

	return employees, skipped, nil
}

func readRows(reader io.Reader, filename string) ([][]string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "reading upload")
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xls":
		workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
		if err != nil {
			return nil, errors.Wrap(err, "opening xls")
		}
		if workbook.NumSheets() == 0 {
			return nil, errors.New("no worksheet found")
		}
		return workbook.ReadAllCells(100000), nil
	case ".xlsx":
		file, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrap(err, "opening xlsx")
		}
		defer file.Close()

		sheetName := file.GetSheetName(0)
		if sheetName == "" {
			return nil, errors.New("no worksheet found")
		}
		return file.GetRows(sheetName)
	default:
		return nil, errors.Errorf("unsupported spreadsheet %q, expected .xlsx or .xls", filename)
	}
}

func normalizeHeader(header string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(header)), " ", "_")
}

// normalizeDate turns Excel date serials into ISO dates and leaves other
// values as they are.
func normalizeDate(value string) string {
	serial, err := strconv.ParseFloat(value, 64)
	if err != nil || serial < 1 {
		return value
	}

	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return value
	}

	return t.Format(entity.DayLayout)
}

// isHalfWidth checks if a string contains only half-width characters.
func isHalfWidth(s string) bool {
	normalized := norm.NFC.String(s)
	for _, r := range normalized {
		if r >= '\uFF01' && r <= '\uFF60' || r >= '\uFFE0' && r <= '\uFFEF' {
			return false
		}
	}
	return true
}
