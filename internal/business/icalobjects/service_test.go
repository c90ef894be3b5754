package icalobjects_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SergeyKozhin/jtx-board/internal/business/icalobjects"
	"github.com/SergeyKozhin/jtx-board/internal/business/recurrence"
	"github.com/SergeyKozhin/jtx-board/internal/business/relations"
	"github.com/SergeyKozhin/jtx-board/internal/database"
	"github.com/SergeyKozhin/jtx-board/internal/database/category"
	"github.com/SergeyKozhin/jtx-board/internal/database/collection"
	"github.com/SergeyKozhin/jtx-board/internal/database/dbtest"
	"github.com/SergeyKozhin/jtx-board/internal/database/icalobject"
	"github.com/SergeyKozhin/jtx-board/internal/database/relatedto"
	"github.com/SergeyKozhin/jtx-board/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type env struct {
	ctx         context.Context
	db          database.DB
	objects     *icalobject.Repository
	relatedto   *relatedto.Repository
	collections *collection.Repository
	recurrence  *recurrence.Service
	locker      *recurrence.LocalLocker
	svc         *icalobjects.Service
}

func newEnv(t *testing.T) *env {
	db := dbtest.New(t)
	logger := zap.NewNop().Sugar()

	objects := icalobject.NewRepository()
	categories := category.NewRepository()
	collections := collection.NewRepository()
	rels := relatedto.NewRepository()

	recurrenceService := recurrence.NewService(db, logger, objects, categories, rels, time.UTC, 100)
	relationsService := relations.NewService(db, logger, objects, rels)
	locker := recurrence.NewLocalLocker()

	return &env{
		ctx:         context.Background(),
		db:          db,
		objects:     objects,
		relatedto:   rels,
		collections: collections,
		recurrence:  recurrenceService,
		locker:      locker,
		svc: icalobjects.NewService(db, logger, objects, categories, collections,
			recurrenceService, relationsService, locker, time.UTC),
	}
}

func (e *env) instances(t *testing.T, originID int64) []*model.ICalObject {
	t.Helper()
	res, err := e.objects.GetInstances(e.ctx, e.db, originID)
	require.NoError(t, err)
	return res
}

func at(day, hour int) *time.Time {
	t := time.Date(2024, 5, day, hour, 0, 0, 0, time.UTC)
	return &t
}

func intPtr(v int) *int { return &v }

func TestCreateRejectsInvalidObjects(t *testing.T) {
	tests := []struct {
		name string
		obj  model.ICalObject
		kind error
	}{
		{
			name: "unknown module",
			obj:  model.ICalObject{Module: "EVENT"},
			kind: model.ErrInvalidInput,
		},
		{
			name: "recurring note",
			obj:  model.ICalObject{Module: model.ModuleNote, Dtstart: at(1, 10), Rrule: "FREQ=DAILY;COUNT=2"},
			kind: model.ErrRecurrenceOnNote,
		},
		{
			name: "due before start",
			obj:  model.ICalObject{Module: model.ModuleTodo, Dtstart: at(2, 10), Due: at(1, 10)},
			kind: model.ErrDueBeforeStart,
		},
		{
			name: "journal status on task",
			obj:  model.ICalObject{Module: model.ModuleTodo, Status: model.JournalStatusFinal},
			kind: model.ErrStatusDomain,
		},
		{
			name: "percent out of range",
			obj:  model.ICalObject{Module: model.ModuleTodo, Percent: intPtr(101)},
			kind: model.ErrInvalidInput,
		},
		{
			name: "rule without start",
			obj:  model.ICalObject{Module: model.ModuleTodo, Rrule: "FREQ=DAILY;COUNT=2"},
			kind: model.ErrInvalidInput,
		},
		{
			name: "unsupported rule",
			obj:  model.ICalObject{Module: model.ModuleJournal, Dtstart: at(1, 10), Rrule: "FREQ=HOURLY;COUNT=2"},
			kind: model.ErrUnsupportedRule,
		},
		{
			name: "unknown collection",
			obj:  model.ICalObject{Module: model.ModuleJournal, CollectionID: 99},
			kind: model.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			obj := tt.obj
			obj.UID = "rejected"

			_, err := e.svc.Create(e.ctx, &obj)
			require.Error(t, err)

			var verr *model.ValidationError
			assert.True(t, errors.As(err, &verr))
			assert.ErrorIs(t, err, tt.kind)

			_, err = e.objects.GetObjectByUID(e.ctx, e.db, "rejected")
			assert.ErrorIs(t, err, model.ErrNoRecord)
		})
	}
}

func TestCreateRejectsReadOnlyCollection(t *testing.T) {
	e := newEnv(t)
	id, err := e.collections.CreateCollection(e.ctx, e.db, &model.Collection{
		DisplayName: "Shared", ReadOnly: true, SupportsVJournal: true, SupportsVTodo: true,
	})
	require.NoError(t, err)

	_, err = e.svc.Create(e.ctx, &model.ICalObject{Module: model.ModuleTodo, CollectionID: id})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestCreateRecurringObject(t *testing.T) {
	e := newEnv(t)

	o, err := e.svc.Create(e.ctx, &model.ICalObject{
		Module:     model.ModuleTodo,
		Summary:    "stand-up",
		Dtstart:    at(6, 9),
		Due:        at(6, 10),
		Rrule:      "FREQ=WEEKLY;COUNT=3;BYDAY=MO",
		Categories: []string{"work"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, o.UID)
	assert.Equal(t, model.ComponentVTodo, o.Component)
	assert.Equal(t, database.LocalCollectionID, o.CollectionID)
	assert.Equal(t, []string{"work"}, o.Categories)
	assert.True(t, o.Dirty)

	insts := e.instances(t, o.ID)
	require.Len(t, insts, 2)
	assert.Equal(t, *at(13, 9), *insts[0].Dtstart)
	assert.Equal(t, *at(20, 10), *insts[1].Due)
}

func TestUpdateOriginReconcilesInstances(t *testing.T) {
	e := newEnv(t)

	o, err := e.svc.Create(e.ctx, &model.ICalObject{
		Module:  model.ModuleJournal,
		Summary: "diary",
		Dtstart: at(1, 20),
		Rrule:   "FREQ=DAILY;COUNT=4",
	})
	require.NoError(t, err)
	require.Len(t, e.instances(t, o.ID), 3)

	o.Summary = "evening diary"
	o.Rrule = "FREQ=DAILY;COUNT=2"
	updated, err := e.svc.Update(e.ctx, o.ID, o)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.Sequence)
	assert.Equal(t, o.UID, updated.UID)

	insts := e.instances(t, o.ID)
	require.Len(t, insts, 1)
	assert.Equal(t, "evening diary", insts[0].Summary)

	updated.Rrule = ""
	_, err = e.svc.Update(e.ctx, o.ID, updated)
	require.NoError(t, err)
	assert.Empty(t, e.instances(t, o.ID))
}

func TestUpdateInstanceMakesException(t *testing.T) {
	e := newEnv(t)

	o, err := e.svc.Create(e.ctx, &model.ICalObject{
		Module:  model.ModuleTodo,
		Summary: "gym",
		Dtstart: at(1, 18),
		Rrule:   "FREQ=DAILY;COUNT=3",
	})
	require.NoError(t, err)

	inst, err := e.svc.Get(e.ctx, e.instances(t, o.ID)[0].ID)
	require.NoError(t, err)

	inst.Rrule = "FREQ=DAILY;COUNT=2"
	_, err = e.svc.Update(e.ctx, inst.ID, inst)
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	inst.Rrule = ""
	inst.Summary = "gym, legs"
	edited, err := e.svc.Update(e.ctx, inst.ID, inst)
	require.NoError(t, err)
	assert.False(t, edited.IsRecurLinkedInstance)
	assert.Equal(t, o.ID, *edited.RecurOriginalID)

	o.Summary = "gym session"
	_, err = e.svc.Update(e.ctx, o.ID, o)
	require.NoError(t, err)

	kept, err := e.svc.Get(e.ctx, inst.ID)
	require.NoError(t, err)
	assert.Equal(t, "gym, legs", kept.Summary)
}

func TestDeleteInstanceStaysDeleted(t *testing.T) {
	e := newEnv(t)

	o, err := e.svc.Create(e.ctx, &model.ICalObject{
		Module:  model.ModuleTodo,
		Summary: "gym",
		Dtstart: at(1, 18),
		Rrule:   "FREQ=DAILY;COUNT=3",
	})
	require.NoError(t, err)
	insts := e.instances(t, o.ID)
	require.Len(t, insts, 2)

	res, err := e.svc.Delete(e.ctx, insts[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{insts[0].ID}, res.Deleted)

	origin, err := e.svc.Get(e.ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, origin.Exdate, 1)
	assert.True(t, origin.Exdate[0].Equal(*at(2, 18)))
	assert.Equal(t, o.Sequence+1, origin.Sequence)

	reconciled, err := e.recurrence.Reconcile(e.ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, &recurrence.ReconcileResult{Unchanged: 1}, reconciled)

	left := e.instances(t, o.ID)
	require.Len(t, left, 1)
	assert.Equal(t, insts[1].ID, left[0].ID)
}

func TestInstanceEditsWaitForSeriesLock(t *testing.T) {
	e := newEnv(t)

	o, err := e.svc.Create(e.ctx, &model.ICalObject{
		Module:  model.ModuleTodo,
		Summary: "gym",
		Dtstart: at(1, 18),
		Rrule:   "FREQ=DAILY;COUNT=3",
	})
	require.NoError(t, err)
	inst, err := e.svc.Get(e.ctx, e.instances(t, o.ID)[0].ID)
	require.NoError(t, err)

	unlock, err := e.locker.Lock(e.ctx, o.ID)
	require.NoError(t, err)

	timeout := func() (context.Context, context.CancelFunc) {
		return context.WithTimeout(e.ctx, 30*time.Millisecond)
	}

	ctx, cancel := timeout()
	inst.Summary = "gym, legs"
	_, err = e.svc.Update(ctx, inst.ID, inst)
	cancel()
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	ctx, cancel = timeout()
	_, err = e.svc.UpdateProgress(ctx, inst.ID, 50)
	cancel()
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	ctx, cancel = timeout()
	_, err = e.svc.Delete(ctx, inst.ID)
	cancel()
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()

	edited, err := e.svc.Update(e.ctx, inst.ID, inst)
	require.NoError(t, err)
	assert.Equal(t, "gym, legs", edited.Summary)
	assert.False(t, edited.IsRecurLinkedInstance)
}

func TestAddSubItemAndDelete(t *testing.T) {
	e := newEnv(t)

	parent, err := e.svc.Create(e.ctx, &model.ICalObject{Module: model.ModuleTodo, Summary: "move"})
	require.NoError(t, err)

	child, err := e.svc.AddSubItem(e.ctx, parent.ID, &model.ICalObject{Module: model.ModuleTodo, Summary: "pack"})
	require.NoError(t, err)
	note, err := e.svc.AddSubItem(e.ctx, child.ID, &model.ICalObject{Module: model.ModuleNote, Summary: "fragile"})
	require.NoError(t, err)

	ids, err := e.relatedto.GetLinked(e.ctx, e.db, parent.ID, model.ReltypeChild)
	require.NoError(t, err)
	assert.Equal(t, []int64{child.ID}, ids)

	_, err = e.svc.AddSubItem(e.ctx, 4242, &model.ICalObject{Module: model.ModuleTodo})
	assert.ErrorIs(t, err, model.ErrNoRecord)

	res, err := e.svc.Delete(e.ctx, parent.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{parent.ID, child.ID, note.ID}, res.Deleted)

	_, err = e.svc.Get(e.ctx, note.ID)
	assert.ErrorIs(t, err, model.ErrNoRecord)
}

func TestUpdateProgress(t *testing.T) {
	e := newEnv(t)

	task, err := e.svc.Create(e.ctx, &model.ICalObject{Module: model.ModuleTodo, Summary: "report"})
	require.NoError(t, err)

	tests := []struct {
		percent int
		status  model.TodoStatus
		done    bool
	}{
		{percent: 40, status: model.TodoStatusInProcess},
		{percent: 100, status: model.TodoStatusCompleted, done: true},
		{percent: 0, status: model.TodoStatusNeedsAction},
	}

	for i, tt := range tests {
		o, err := e.svc.UpdateProgress(e.ctx, task.ID, tt.percent)
		require.NoError(t, err)
		assert.Equal(t, tt.percent, *o.Percent)
		assert.Equal(t, tt.status, o.Status)
		assert.Equal(t, tt.done, o.Completed != nil)
		assert.Equal(t, int64(i+1), o.Sequence)
		assert.True(t, o.Dirty)
	}

	_, err = e.svc.UpdateProgress(e.ctx, task.ID, 150)
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	journal, err := e.svc.Create(e.ctx, &model.ICalObject{Module: model.ModuleJournal})
	require.NoError(t, err)
	_, err = e.svc.UpdateProgress(e.ctx, journal.ID, 10)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}
