package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SergeyKozhin/jtx-board/internal/api"
	"github.com/SergeyKozhin/jtx-board/internal/api/mocks"
	"github.com/SergeyKozhin/jtx-board/internal/business/recurrence"
	"github.com/SergeyKozhin/jtx-board/internal/business/relations"
	"github.com/SergeyKozhin/jtx-board/internal/model"
	"github.com/SergeyKozhin/jtx-board/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fixture struct {
	api        *api.Api
	token      string
	list       *mocks.MockListService
	objects    *mocks.MockObjectsService
	recurrence *mocks.MockRecurrenceService
	relations  *mocks.MockRelationsService
	locker     *recurrence.LocalLocker
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	tokens := jwt.NewManager("secret", time.Hour)
	token, err := tokens.CreateToken("board")
	require.NoError(t, err)

	f := &fixture{
		token:      token,
		list:       mocks.NewMockListService(ctrl),
		objects:    mocks.NewMockObjectsService(ctrl),
		recurrence: mocks.NewMockRecurrenceService(ctrl),
		relations:  mocks.NewMockRelationsService(ctrl),
		locker:     recurrence.NewLocalLocker(),
	}
	f.api = api.NewApi(zap.NewNop().Sugar(), time.UTC, tokens,
		f.list, f.objects, f.recurrence, f.relations, f.locker)

	return f
}

func (f *fixture) do(t *testing.T, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Authorization", "Bearer "+f.token)

	rec := httptest.NewRecorder()
	f.api.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(dst))
}

func TestAuth(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	rec := httptest.NewRecorder()
	f.api.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	f.token = "garbage"
	rec = f.do(t, http.MethodGet, "/categories", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	rec = httptest.NewRecorder()
	f.api.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthVerifierFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := mocks.NewMockTokenVerifier(ctrl)
	tokens.EXPECT().GetSubject("abc").Return("", errors.New("keys unavailable"))

	a := api.NewApi(zap.NewNop().Sugar(), time.UTC, tokens, nil, nil, nil, nil, recurrence.NewLocalLocker())

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	req.Header.Set("Authorization", "Bearer abc")
	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetListParsesFilter(t *testing.T) {
	f := newFixture(t)
	p := 1

	f.list.EXPECT().GetList(gomock.Any(), model.ListFilter{
		Module:          model.ModuleTodo,
		SearchText:      "milk",
		Categories:      []string{"errands", "home"},
		StatusTodo:      []model.TodoStatus{model.TodoStatusNeedsAction, model.TodoStatusInProcess},
		Classifications: []model.Classification{model.ClassificationPrivate},
		DateFilters:     []model.DateFilter{model.DateFilterOverdue},
		ExcludeDone:     true,
		OrderBy:         model.OrderByDue,
		SortOrder:       model.SortOrderDesc,
		GroupBy:         model.GroupByPriority,

		ShowOneRecurEntryInFuture: true,
	}).Return([]*model.ICal4List{
		{ID: 7, Module: model.ModuleTodo, Summary: "buy milk", Priority: &p, Categories: "errands, home"},
	}, nil)

	rec := f.do(t, http.MethodGet, "/list/todo?search=milk&category=errands&category=home"+
		"&status=NEEDS-ACTION&status=IN-PROCESS&classification=PRIVATE&date_filter=OVERDUE"+
		"&exclude_done=true&show_one_recur=1&order_by=DUE&sort_order=DESC&group_by=PRIORITY&grouped=true", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp []struct {
		Key  string `json:"key"`
		Rows []struct {
			ID         int64  `json:"id"`
			Summary    string `json:"summary"`
			Categories string `json:"categories"`
		} `json:"rows"`
	}
	decode(t, rec, &resp)
	require.Len(t, resp, 1)
	assert.Equal(t, "1", resp[0].Key)
	require.Len(t, resp[0].Rows, 1)
	assert.Equal(t, "buy milk", resp[0].Rows[0].Summary)
	assert.Equal(t, "errands, home", resp[0].Rows[0].Categories)
}

func TestGetListRejectsBadQuery(t *testing.T) {
	tests := []struct {
		name   string
		target string
		field  string
	}{
		{name: "module", target: "/list/event", field: "module"},
		{name: "status of other component", target: "/list/journal?status=IN-PROCESS", field: "status"},
		{name: "order key", target: "/list/note?order_by=COLOR", field: "order_by"},
		{name: "date filter", target: "/list/todo?date_filter=YESTERDAY", field: "date_filter"},
		{name: "flag", target: "/list/todo?flat_view=maybe", field: "flat_view"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			rec := f.do(t, http.MethodGet, tt.target, nil)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

			var resp struct {
				Error map[string]string `json:"error"`
			}
			decode(t, rec, &resp)
			assert.Contains(t, resp.Error, tt.field)
		})
	}
}

func TestCreateObject(t *testing.T) {
	f := newFixture(t)
	start := time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)

	f.objects.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, o *model.ICalObject) (*model.ICalObject, error) {
			assert.Equal(t, model.ModuleTodo, o.Module)
			assert.Equal(t, model.TodoStatusNeedsAction, o.Status)
			assert.Equal(t, int64(0xffff0000), *o.Color)
			assert.True(t, start.Equal(*o.Dtstart))

			res := *o
			res.ID = 3
			res.UID = "uid-3"
			return &res, nil
		})

	rec := f.do(t, http.MethodPost, "/objects", map[string]interface{}{
		"module":     "TODO",
		"summary":    "stand-up",
		"dtstart":    start,
		"status":     "NEEDS-ACTION",
		"color_hex":  "#ff0000",
		"rrule":      "FREQ=WEEKLY;COUNT=3",
		"categories": []string{"work"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		ID         int64    `json:"id"`
		UID        string   `json:"uid"`
		Status     string   `json:"status"`
		ColorHex   string   `json:"color_hex"`
		Categories []string `json:"categories"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, int64(3), resp.ID)
	assert.Equal(t, "NEEDS-ACTION", resp.Status)
	assert.Equal(t, "#ff0000", strings.ToLower(resp.ColorHex))
	assert.Equal(t, []string{"work"}, resp.Categories)
}

func TestCreateObjectValidation(t *testing.T) {
	tests := []struct {
		name  string
		body  map[string]interface{}
		field string
	}{
		{name: "module", body: map[string]interface{}{"module": "EVENT"}, field: "module"},
		{name: "status domain", body: map[string]interface{}{"module": "JOURNAL", "status": "COMPLETED"}, field: "status"},
		{name: "classification", body: map[string]interface{}{"module": "NOTE", "classification": "SECRET"}, field: "classification"},
		{name: "color", body: map[string]interface{}{"module": "NOTE", "color_hex": "red"}, field: "color_hex"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			rec := f.do(t, http.MethodPost, "/objects", tt.body)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

			var resp struct {
				Error map[string]string `json:"error"`
			}
			decode(t, rec, &resp)
			assert.Contains(t, resp.Error, tt.field)
		})
	}

	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/objects", map[string]interface{}{"module": "TODO", "colour": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestObjectErrorsMapToStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "missing", err: fmt.Errorf("objects.GetObjectByID: %w", model.ErrNoRecord), status: http.StatusNotFound},
		{name: "invalid", err: model.Invalid("rrule", model.ErrUnsupportedRule, "FREQ=HOURLY"), status: http.StatusUnprocessableEntity},
		{name: "broken store", err: model.ErrInvariantViolation, status: http.StatusConflict},
		{name: "other", err: errors.New("disk on fire"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.objects.EXPECT().Get(gomock.Any(), int64(5)).Return(nil, tt.err)

			rec := f.do(t, http.MethodGet, "/objects/5", nil)
			assert.Equal(t, tt.status, rec.Code)
		})
	}

	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/objects/abc", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteObject(t *testing.T) {
	f := newFixture(t)
	f.objects.EXPECT().Delete(gomock.Any(), int64(1)).Return(&relations.DeleteResult{
		Deleted:  []int64{1, 2},
		Detached: []int64{4},
	}, nil)

	rec := f.do(t, http.MethodDelete, "/objects/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp relations.DeleteResult
	decode(t, rec, &resp)
	assert.Equal(t, []int64{1, 2}, resp.Deleted)
	assert.Equal(t, []int64{4}, resp.Detached)
}

func TestUpdateProgress(t *testing.T) {
	f := newFixture(t)
	percent := 100
	f.objects.EXPECT().UpdateProgress(gomock.Any(), int64(2), 100).Return(&model.ICalObject{
		ID:      2,
		Module:  model.ModuleTodo,
		Status:  model.TodoStatusCompleted,
		Percent: &percent,
	}, nil)

	rec := f.do(t, http.MethodPut, "/objects/2/progress", map[string]int{"percent": 100})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status  string `json:"status"`
		Percent int    `json:"percent"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, "COMPLETED", resp.Status)
	assert.Equal(t, 100, resp.Percent)

	rec = f.do(t, http.MethodPut, "/objects/2/progress", map[string]int{"percent": 120})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestReconcile(t *testing.T) {
	f := newFixture(t)
	f.recurrence.EXPECT().Reconcile(gomock.Any(), int64(9)).Return(&recurrence.ReconcileResult{Created: 2, Exceptions: 1}, nil)

	rec := f.do(t, http.MethodPost, "/objects/9/reconcile", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp recurrence.ReconcileResult
	decode(t, rec, &resp)
	assert.Equal(t, 2, resp.Created)
	assert.Equal(t, 1, resp.Exceptions)
}

func TestDetachHoldsOriginLock(t *testing.T) {
	f := newFixture(t)
	origin := int64(9)
	f.objects.EXPECT().Get(gomock.Any(), int64(11)).Return(&model.ICalObject{
		ID: 11, Module: model.ModuleTodo, RecurOriginalID: &origin, IsRecurLinkedInstance: true,
	}, nil)
	f.recurrence.EXPECT().Detach(gomock.Any(), int64(11)).DoAndReturn(
		func(ctx context.Context, id int64) (*model.ICalObject, error) {
			waitCtx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer cancel()
			_, err := f.locker.Lock(waitCtx, origin)
			assert.ErrorIs(t, err, context.DeadlineExceeded)

			return &model.ICalObject{ID: id, Module: model.ModuleTodo, RecurOriginalID: &origin}, nil
		})

	rec := f.do(t, http.MethodPost, "/objects/11/detach", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	unlock, err := f.locker.Lock(context.Background(), origin)
	require.NoError(t, err)
	unlock()
}

func TestChildren(t *testing.T) {
	f := newFixture(t)
	f.relations.EXPECT().Children(gomock.Any(), int64(1)).Return([]*model.ICalObject{
		{ID: 2, Module: model.ModuleNote, Summary: "fragile"},
	}, nil)

	rec := f.do(t, http.MethodGet, "/objects/1/children", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []struct {
		ID         int64    `json:"id"`
		Categories []string `json:"categories"`
	}
	decode(t, rec, &resp)
	require.Len(t, resp, 1)
	assert.Equal(t, int64(2), resp[0].ID)
	assert.Equal(t, []string{}, resp[0].Categories)
}

func TestLinkAndUnlink(t *testing.T) {
	f := newFixture(t)
	f.relations.EXPECT().Link(gomock.Any(), int64(1), int64(2), model.ReltypeChild).Return(nil)
	f.relations.EXPECT().Unlink(gomock.Any(), int64(1), int64(2), model.ReltypeChild).Return(model.ErrNoRecord)
	f.relations.EXPECT().Unlink(gomock.Any(), int64(1), int64(2), model.ReltypeSibling).Return(nil)

	rec := f.do(t, http.MethodPost, "/relations", map[string]interface{}{"object_id": 1, "linked_id": 2, "reltype": "CHILD"})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodPost, "/relations", map[string]interface{}{"object_id": 1, "linked_id": 2, "reltype": "COUSIN"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = f.do(t, http.MethodDelete, "/relations", map[string]interface{}{"object_id": 1, "linked_id": 2})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodDelete, "/relations", map[string]interface{}{"object_id": 1, "linked_id": 2, "reltype": "SIBLING"})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodDelete, "/relations", map[string]interface{}{"object_id": 1, "linked_id": 2, "reltype": "COUSIN"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCollections(t *testing.T) {
	f := newFixture(t)
	blue := int64(0xff0000ff)
	f.list.EXPECT().Collections(gomock.Any()).Return([]*model.Collection{
		{ID: 1, DisplayName: "Local", AccountType: model.AccountTypeLocal, Color: &blue, SupportsVTodo: true},
	}, nil)

	rec := f.do(t, http.MethodGet, "/collections", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []struct {
		DisplayName string `json:"display_name"`
		ColorHex    string `json:"color_hex"`
	}
	decode(t, rec, &resp)
	require.Len(t, resp, 1)
	assert.Equal(t, "Local", resp[0].DisplayName)
	assert.Equal(t, "#0000ff", strings.ToLower(resp[0].ColorHex))
}
