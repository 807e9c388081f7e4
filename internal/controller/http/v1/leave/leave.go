package leave

import (
	"context"
	"net/http"
	"reflect"

	"hrportal/backend/foundation/web"
	"hrportal/backend/internal/entity"
	leave_service "hrportal/backend/internal/service/leave"
)

type Controller struct {
	leave    Leave
	identity Identity
}

func NewController(leave Leave, identity Identity) *Controller {
	return &Controller{leave: leave, identity: identity}
}

func (uc Controller) Apply(c *web.Context) error {
	empID, err := uc.identity.EmpID(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	var request leave_service.FileRequest
	if err := c.BindFunc(&request, "FromDate", "ToDate"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.leave.File(c.Ctx, empID, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"status": true,
		"data":   response,
		"error":  nil,
	}, http.StatusCreated)
}

func (uc Controller) GetMyList(c *web.Context) error {
	empID, err := uc.identity.EmpID(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	list, err := uc.leave.ListForEmployee(c.Ctx, empID)
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

func (uc Controller) GetPendingList(c *web.Context) error {
	list, err := uc.leave.ListPending(c.Ctx)
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

func (uc Controller) Approve(c *web.Context) error {
	return uc.decide(c, uc.leave.Approve)
}

func (uc Controller) Reject(c *web.Context) error {
	return uc.decide(c, uc.leave.Reject)
}

func (uc Controller) decide(c *web.Context, fn func(ctx context.Context, id int64) (*entity.Leave, error)) error {
	id := c.GetParam(reflect.Int64, "id").(int64)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := fn(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"status": true,
		"data":   response,
		"error":  nil,
	}, http.StatusOK)
}
