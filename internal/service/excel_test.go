package service

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"hrportal/backend/internal/entity"
)

func workbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf
}

func TestExportThenImport(t *testing.T) {
	employees := []entity.Employee{
		{EmpID: "EMP001", Name: "John Doe", Email: "john@company.com", Department: "Development", Salary: "75000", JoinDate: "2023-01-10", Qualification: "B.Tech"},
		{EmpID: "EMP002", Name: "Priya Sharma", Email: "priya@company.com", Department: "HR", JoinDate: "2022-03-15"},
	}

	buf, err := ExportEmployees(employees)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	rows, skipped, err := ReadEmployees(buf, "employees.xlsx")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(skipped) != 0 {
		t.Fatalf("unexpected skipped rows %v", skipped)
	}
	if len(rows) != 2 || rows[0].EmpID != "EMP001" || rows[1].Department != "HR" || rows[0].JoinDate != "2023-01-10" {
		t.Fatalf("unexpected rows %+v", rows)
	}
}

func TestReadEmployeesSkipsInvalidRows(t *testing.T) {
	buf := workbook(t, [][]interface{}{
		{"Emp ID", "Name", "Email", "Department", "Join Date", "Password"},
		{"EMP010", "Asha", "asha@company.com", "HR", 45000, "pass123"},
		{"EMP011", "", "nobody@company.com", "HR", "", ""},
		{"ＥＭＰ012", "Wide", "wide@company.com", "HR", "", ""},
		{"EMP013", "Bad Mail", "not-an-email", "HR", "", ""},
		{"EMP010", "Asha Again", "asha2@company.com", "HR", "", ""},
		{"", "", "", "", "", ""},
		{"EMP014", "Ravi", "ravi@company.com", "Finance", "2024-05-01", ""},
	})

	rows, skipped, err := ReadEmployees(buf, "upload.XLSX")
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if want := []int{3, 4, 5, 6}; !reflect.DeepEqual(skipped, want) {
		t.Fatalf("skipped = %v, want %v", skipped, want)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 valid rows, got %+v", rows)
	}
	if rows[0].JoinDate != "2023-03-15" || rows[0].Password != "pass123" {
		t.Fatalf("unexpected first row %+v", rows[0])
	}
	if rows[1].JoinDate != "2024-05-01" {
		t.Fatalf("unexpected second row %+v", rows[1])
	}
}

func TestReadEmployeesRejectsFiles(t *testing.T) {
	if _, _, err := ReadEmployees(bytes.NewReader([]byte("a,b")), "employees.csv"); err == nil {
		t.Fatalf("expected csv to be rejected")
	}

	buf := workbook(t, [][]interface{}{{"name", "email"}})
	if _, _, err := ReadEmployees(buf, "employees.xlsx"); err == nil {
		t.Fatalf("expected a missing emp_id column to be rejected")
	}
}

func TestIsHalfWidth(t *testing.T) {
	if !isHalfWidth("EMP001") || isHalfWidth("ＥＭＰ001") {
		t.Fatalf("unexpected half-width classification")
	}
}
