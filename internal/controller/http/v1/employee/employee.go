package employee

import (
	"net/http"

	"github.com/pkg/errors"

	"hrportal/backend/foundation/web"
	"hrportal/backend/internal/repository/postgres/employee"
	"hrportal/backend/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Controller struct {
	employee Employee
}

func NewController(employee Employee) *Controller {
	return &Controller{employee: employee}
}

func (uc Controller) Create(c *web.Context) error {
	var request employee.CreateRequest

	if err := c.BindFunc(&request, "EmpID", "Name", "Email", "Department"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.employee.Create(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"status": true,
		"data":   response,
		"error":  nil,
	}, http.StatusCreated)
}

func (uc Controller) GetList(c *web.Context) error {
	list, err := uc.employee.List(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"status": true,
		"data": map[string]interface{}{
			"results": list,
			"count":   len(list),
		},
		"error": nil,
	}, http.StatusOK)
}

func (uc Controller) Export(c *web.Context) error {
	list, err := uc.employee.List(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	buf, err := service.ExportEmployees(list)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusInternalServerError))
	}

	c.Header("Content-Disposition", "attachment; filename=\"employees.xlsx\"")
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())

	return nil
}

// Import creates the valid rows of an uploaded .xlsx or .xls sheet in one
// transaction and reports the rows it skipped.
func (uc Controller) Import(c *web.Context) error {
	header, err := c.FormFile("file")
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "file"), http.StatusBadRequest))
	}

	file, err := header.Open()
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusBadRequest))
	}
	defer file.Close()

	rows, skipped, err := service.ReadEmployees(file, header.Filename)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusBadRequest))
	}

	requests := make([]employee.CreateRequest, 0, len(rows))
	for _, row := range rows {
		requests = append(requests, employee.CreateRequest{
			EmpID:         row.EmpID,
			Name:          row.Name,
			Email:         row.Email,
			Department:    row.Department,
			Salary:        row.Salary,
			JoinDate:      row.JoinDate,
			Qualification: row.Qualification,
			Password:      row.Password,
		})
	}

	created := 0
	if len(requests) > 0 {
		if created, err = uc.employee.CreateMany(c.Ctx, requests); err != nil {
			return c.RespondError(err)
		}
	}

	return c.Respond(map[string]interface{}{
		"status": true,
		"data":   employee.ImportResponse{Created: created, Skipped: skipped},
		"error":  nil,
	}, http.StatusOK)
}

func (uc Controller) GetQrCode(c *web.Context) error {
	empID := c.Query("emp_id")
	if empID == "" {
		return c.RespondError(web.NewRequestError(errors.New("emp_id parameter is required"), http.StatusBadRequest))
	}

	if _, err := uc.employee.GetByEmpID(c.Ctx, empID); err != nil {
		return c.RespondError(err)
	}

	png, err := service.EmployeeQRCode(empID)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusInternalServerError))
	}

	c.Header("Content-Disposition", "inline; filename="+empID+".png")
	c.Data(http.StatusOK, "image/png", png)

	return nil
}
