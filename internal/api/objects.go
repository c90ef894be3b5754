package api

import (
	"fmt"
	"net/http"

	"github.com/SergeyKozhin/jtx-board/internal/business/recurrence"
	"github.com/SergeyKozhin/jtx-board/internal/model"
	"github.com/SergeyKozhin/jtx-board/internal/pkg/validator"
)

func (a *Api) createObjectHandler(w http.ResponseWriter, r *http.Request) {
	req := &objectReq{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	obj, errs := req.toObject()
	if errs != nil {
		a.failedValidationResponse(w, r, errs)
		return
	}

	created, err := a.objects.Create(r.Context(), obj)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("create object: %w", err))
		return
	}

	a.writeObject(w, r, http.StatusCreated, created)
}

func (a *Api) getObjectHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDFromContext(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	obj, err := a.objects.Get(r.Context(), id)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("get object: %w", err))
		return
	}

	a.writeObject(w, r, http.StatusOK, obj)
}

func (a *Api) updateObjectHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDFromContext(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	req := &objectReq{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	obj, errs := req.toObject()
	if errs != nil {
		a.failedValidationResponse(w, r, errs)
		return
	}

	updated, err := a.objects.Update(r.Context(), id, obj)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("update object: %w", err))
		return
	}

	a.writeObject(w, r, http.StatusOK, updated)
}

func (a *Api) deleteObjectHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDFromContext(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	res, err := a.objects.Delete(r.Context(), id)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("delete object: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, res, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getRowHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDFromContext(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	row, err := a.list.GetRow(r.Context(), id)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("get row: %w", err))
		return
	}

	resp, _ := mapToRowResp(row)

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) updateProgressHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDFromContext(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	req := &struct {
		Percent *int `json:"percent"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(req.Percent != nil, "percent", "percent must be provided")
	if req.Percent != nil {
		v.Check(*req.Percent >= 0 && *req.Percent <= 100, "percent", "percent must be between 0 and 100")
	}

	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	obj, err := a.objects.UpdateProgress(r.Context(), id, *req.Percent)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("update progress: %w", err))
		return
	}

	a.writeObject(w, r, http.StatusOK, obj)
}

func (a *Api) reconcileHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDFromContext(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	unlock, err := a.locker.Lock(r.Context(), id)
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("lock origin: %w", err))
		return
	}
	defer unlock()

	res, err := a.recurrence.Reconcile(r.Context(), id)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("reconcile: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, res, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) detachHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDFromContext(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	inst, err := a.objects.Get(r.Context(), id)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("get object: %w", err))
		return
	}

	unlock, err := a.locker.Lock(r.Context(), recurrence.SeriesID(inst))
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("lock origin: %w", err))
		return
	}
	defer unlock()

	obj, err := a.recurrence.Detach(r.Context(), id)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("detach: %w", err))
		return
	}

	a.writeObject(w, r, http.StatusOK, obj)
}

func (a *Api) addSubItemHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDFromContext(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	req := &objectReq{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	obj, errs := req.toObject()
	if errs != nil {
		a.failedValidationResponse(w, r, errs)
		return
	}

	created, err := a.objects.AddSubItem(r.Context(), id, obj)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("add subitem: %w", err))
		return
	}

	a.writeObject(w, r, http.StatusCreated, created)
}

func (a *Api) getChildrenHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDFromContext(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	objs, err := a.relations.Children(r.Context(), id)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("get children: %w", err))
		return
	}

	a.writeObjects(w, r, objs)
}

func (a *Api) getParentsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDFromContext(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	objs, err := a.relations.Parents(r.Context(), id)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("get parents: %w", err))
		return
	}

	a.writeObjects(w, r, objs)
}

func (a *Api) writeObject(w http.ResponseWriter, r *http.Request, status int, obj *model.ICalObject) {
	resp, _ := mapToObjectResp(obj)

	if err := a.writeJSON(w, status, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) writeObjects(w http.ResponseWriter, r *http.Request, objs []*model.ICalObject) {
	resp, _ := mapSlice(objs, mapToObjectResp)

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}
