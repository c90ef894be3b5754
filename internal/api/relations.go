package api

import (
	"fmt"
	"net/http"

	"github.com/SergeyKozhin/jtx-board/internal/model"
	"github.com/SergeyKozhin/jtx-board/internal/pkg/validator"
)

type relationReq struct {
	ObjectID int64  `json:"object_id"`
	LinkedID int64  `json:"linked_id"`
	Reltype  string `json:"reltype"`
}

func (a *Api) linkHandler(w http.ResponseWriter, r *http.Request) {
	req := &relationReq{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(req.ObjectID > 0, "object_id", "object_id must be provided")
	v.Check(req.LinkedID > 0, "linked_id", "linked_id must be provided")

	reltype, err := model.ParseReltype(req.Reltype)
	v.Check(err == nil, "reltype", "reltype must be one of PARENT, CHILD, SIBLING")

	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	if err := a.relations.Link(r.Context(), req.ObjectID, req.LinkedID, reltype); err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("link: %w", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *Api) unlinkHandler(w http.ResponseWriter, r *http.Request) {
	req := &relationReq{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(req.ObjectID > 0, "object_id", "object_id must be provided")
	v.Check(req.LinkedID > 0, "linked_id", "linked_id must be provided")

	reltype := model.ReltypeChild
	if req.Reltype != "" {
		var err error
		reltype, err = model.ParseReltype(req.Reltype)
		v.Check(err == nil, "reltype", "reltype must be one of PARENT, CHILD, SIBLING")
	}

	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	if err := a.relations.Unlink(r.Context(), req.ObjectID, req.LinkedID, reltype); err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("unlink: %w", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
