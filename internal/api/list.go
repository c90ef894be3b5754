package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/SergeyKozhin/jtx-board/internal/business/list"
	"github.com/SergeyKozhin/jtx-board/internal/model"
	"github.com/go-chi/chi/v5"
)

type groupResp struct {
	Key  string     `json:"key"`
	Rows []*rowResp `json:"rows"`
}

func (a *Api) getListHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListQuery(r)
	if err != nil {
		a.serviceErrorResponse(w, r, err)
		return
	}

	grouped, err := readBool(r, "grouped")
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	rows, err := a.list.GetList(r.Context(), *filter)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("get list: %w", err))
		return
	}

	var resp interface{}
	if grouped {
		groups := list.GroupRows(rows, filter.GroupBy, a.location)
		resp, _ = mapSlice(groups, func(g *model.ListGroup) (*groupResp, error) {
			rows, _ := mapSlice(g.Rows, mapToRowResp)
			return &groupResp{Key: g.Key, Rows: rows}, nil
		})
	} else {
		resp, _ = mapSlice(rows, mapToRowResp)
	}

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

// parseListQuery reads the filter of one list screen. Repeated parameters
// are OR-ed by the query builder.
func parseListQuery(r *http.Request) (*model.ListFilter, error) {
	module, err := model.ParseModule(strings.ToUpper(chi.URLParam(r, "module")))
	if err != nil {
		return nil, err
	}

	res := &model.ListFilter{
		Module:      module,
		SearchText:  r.URL.Query().Get("search"),
		Categories:  readList(r, "category"),
		Collections: readList(r, "collection"),
		Accounts:    readList(r, "account"),
	}

	for _, raw := range readList(r, "status") {
		switch module.Component() {
		case model.ComponentVTodo:
			s, err := model.ParseTodoStatus(raw)
			if err != nil {
				return nil, err
			}
			res.StatusTodo = append(res.StatusTodo, s)
		default:
			s, err := model.ParseJournalStatus(raw)
			if err != nil {
				return nil, err
			}
			res.StatusJournal = append(res.StatusJournal, s)
		}
	}

	for _, raw := range readList(r, "classification") {
		c, err := model.ParseClassification(raw)
		if err != nil {
			return nil, err
		}
		res.Classifications = append(res.Classifications, c)
	}

	for _, raw := range readList(r, "date_filter") {
		f, err := model.ParseDateFilter(raw)
		if err != nil {
			return nil, err
		}
		res.DateFilters = append(res.DateFilters, f)
	}

	flags := []struct {
		key string
		dst *bool
	}{
		{"exclude_done", &res.ExcludeDone},
		{"flat_view", &res.FlatView},
		{"show_one_recur", &res.ShowOneRecurEntryInFuture},
	}
	for _, f := range flags {
		*f.dst, err = readBool(r, f.key)
		if err != nil {
			return nil, model.Invalid(f.key, model.ErrInvalidInput, "")
		}
	}

	if v := r.URL.Query().Get("order_by"); v != "" {
		if res.OrderBy, err = model.ParseOrderBy(v); err != nil {
			return nil, err
		}
	}
	if v := r.URL.Query().Get("sort_order"); v != "" {
		if res.SortOrder, err = model.ParseSortOrder(v); err != nil {
			return nil, err
		}
	}
	if v := r.URL.Query().Get("order_by2"); v != "" {
		if res.OrderBy2, err = model.ParseOrderBy(v); err != nil {
			return nil, err
		}
	}
	if v := r.URL.Query().Get("sort_order2"); v != "" {
		if res.SortOrder2, err = model.ParseSortOrder(v); err != nil {
			return nil, err
		}
	}
	if v := r.URL.Query().Get("group_by"); v != "" {
		if res.GroupBy, err = model.ParseGroupBy(v); err != nil {
			return nil, err
		}
	}

	return res, nil
}

func (a *Api) getCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := a.list.Categories(r.Context())
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("get categories: %w", err))
		return
	}

	if categories == nil {
		categories = []string{}
	}

	if err := a.writeJSON(w, http.StatusOK, categories, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getCollectionsHandler(w http.ResponseWriter, r *http.Request) {
	collections, err := a.list.Collections(r.Context())
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("get collections: %w", err))
		return
	}

	resp, _ := mapSlice(collections, mapToCollectionResp)

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}
