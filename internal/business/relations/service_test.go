package relations_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SergeyKozhin/jtx-board/internal/business/relations"
	"github.com/SergeyKozhin/jtx-board/internal/database"
	"github.com/SergeyKozhin/jtx-board/internal/database/category"
	"github.com/SergeyKozhin/jtx-board/internal/database/dbtest"
	"github.com/SergeyKozhin/jtx-board/internal/database/icalobject"
	"github.com/SergeyKozhin/jtx-board/internal/database/relatedto"
	"github.com/SergeyKozhin/jtx-board/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type env struct {
	t         *testing.T
	ctx       context.Context
	db        database.DB
	objects   *icalobject.Repository
	relations *relatedto.Repository
	svc       *relations.Service
	n         int
}

func newEnv(t *testing.T) *env {
	db := dbtest.New(t)
	e := &env{
		t:         t,
		ctx:       context.Background(),
		db:        db,
		objects:   icalobject.NewRepository(),
		relations: relatedto.NewRepository(),
	}
	e.svc = relations.NewService(db, zap.NewNop().Sugar(), e.objects, e.relations)
	return e
}

func (e *env) add(summary string, mods ...func(*model.ICalObject)) *model.ICalObject {
	e.t.Helper()
	e.n++

	now := time.Date(2024, 4, 1, 8, e.n, 0, 0, time.UTC)
	o := &model.ICalObject{
		Module:       model.ModuleTodo,
		Component:    model.ComponentVTodo,
		Summary:      summary,
		UID:          summary + "-uid",
		CollectionID: dbtest.LocalCollectionID,
		Created:      now,
		LastModified: now,
		Dtstamp:      now,
	}
	for _, m := range mods {
		m(o)
	}

	id, err := e.objects.CreateObject(e.ctx, e.db, o)
	require.NoError(e.t, err)
	o.ID = id
	return o
}

func (e *env) exists(id int64) bool {
	e.t.Helper()
	_, err := e.objects.GetObjectByID(e.ctx, e.db, id)
	if errors.Is(err, model.ErrNoRecord) {
		return false
	}
	require.NoError(e.t, err)
	return true
}

func (e *env) linked(id int64, reltype model.Reltype) []int64 {
	e.t.Helper()
	ids, err := e.relations.GetLinked(e.ctx, e.db, id, reltype)
	require.NoError(e.t, err)
	return ids
}

func TestLinkWritesReciprocalPair(t *testing.T) {
	e := newEnv(t)
	parent := e.add("parent")
	child := e.add("child")

	require.NoError(t, e.svc.Link(e.ctx, parent.ID, child.ID, model.ReltypeChild))

	rel, err := e.relations.GetRelation(e.ctx, e.db, parent.ID, child.ID, model.ReltypeChild)
	require.NoError(t, err)
	assert.Equal(t, "child-uid", rel.Text)

	rel, err = e.relations.GetRelation(e.ctx, e.db, child.ID, parent.ID, model.ReltypeParent)
	require.NoError(t, err)
	assert.Equal(t, "parent-uid", rel.Text)

	// Same edge seen from the other end.
	require.NoError(t, e.svc.Link(e.ctx, child.ID, parent.ID, model.ReltypeParent))
	require.NoError(t, e.svc.Link(e.ctx, parent.ID, child.ID, model.ReltypeChild))
	assert.Equal(t, []int64{child.ID}, e.linked(parent.ID, model.ReltypeChild))
	assert.Equal(t, []int64{parent.ID}, e.linked(child.ID, model.ReltypeParent))

	children, err := e.svc.Children(e.ctx, parent.ID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, child.ID, children[0].ID)

	parents, err := e.svc.Parents(e.ctx, child.ID)
	require.NoError(t, err)
	require.Len(t, parents, 1)
	assert.Equal(t, parent.ID, parents[0].ID)
}

func TestLinkSibling(t *testing.T) {
	e := newEnv(t)
	a := e.add("a")
	b := e.add("b")

	require.NoError(t, e.svc.Link(e.ctx, a.ID, b.ID, model.ReltypeSibling))
	assert.Equal(t, []int64{b.ID}, e.linked(a.ID, model.ReltypeSibling))
	assert.Equal(t, []int64{a.ID}, e.linked(b.ID, model.ReltypeSibling))
}

func TestLinkRejects(t *testing.T) {
	e := newEnv(t)
	a := e.add("a")
	b := e.add("b")
	c := e.add("c")

	require.NoError(t, e.svc.Link(e.ctx, a.ID, b.ID, model.ReltypeChild))
	require.NoError(t, e.svc.Link(e.ctx, b.ID, c.ID, model.ReltypeChild))

	err := e.svc.Link(e.ctx, c.ID, a.ID, model.ReltypeChild)
	assert.ErrorIs(t, err, model.ErrInvariantViolation)

	err = e.svc.Link(e.ctx, a.ID, c.ID, model.ReltypeParent)
	assert.ErrorIs(t, err, model.ErrInvariantViolation)
	assert.Empty(t, e.linked(c.ID, model.ReltypeChild))

	err = e.svc.Link(e.ctx, a.ID, a.ID, model.ReltypeSibling)
	var verr *model.ValidationError
	assert.True(t, errors.As(err, &verr))

	err = e.svc.Link(e.ctx, a.ID, b.ID, "FRIEND")
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	err = e.svc.Link(e.ctx, a.ID, 4242, model.ReltypeChild)
	assert.ErrorIs(t, err, model.ErrNoRecord)
}

func TestUnlink(t *testing.T) {
	e := newEnv(t)
	a := e.add("a")
	b := e.add("b")

	require.NoError(t, e.svc.Link(e.ctx, a.ID, b.ID, model.ReltypeChild))
	require.NoError(t, e.svc.Unlink(e.ctx, b.ID, a.ID, model.ReltypeParent))

	assert.Empty(t, e.linked(a.ID, model.ReltypeChild))
	assert.Empty(t, e.linked(b.ID, model.ReltypeParent))
	assert.True(t, e.exists(a.ID))
	assert.True(t, e.exists(b.ID))

	assert.ErrorIs(t, e.svc.Unlink(e.ctx, a.ID, b.ID, ""), model.ErrNoRecord)
	assert.ErrorIs(t, e.svc.Unlink(e.ctx, a.ID, b.ID, "COUSIN"), model.ErrInvalidInput)
}

func TestUnlinkRemovesOneEdge(t *testing.T) {
	e := newEnv(t)
	a := e.add("a")
	b := e.add("b")

	require.NoError(t, e.svc.Link(e.ctx, a.ID, b.ID, model.ReltypeChild))
	require.NoError(t, e.svc.Link(e.ctx, a.ID, b.ID, model.ReltypeSibling))

	require.NoError(t, e.svc.Unlink(e.ctx, a.ID, b.ID, ""))

	assert.Empty(t, e.linked(a.ID, model.ReltypeChild))
	assert.Empty(t, e.linked(b.ID, model.ReltypeParent))
	assert.Equal(t, []int64{b.ID}, e.linked(a.ID, model.ReltypeSibling))
	assert.Equal(t, []int64{a.ID}, e.linked(b.ID, model.ReltypeSibling))

	require.NoError(t, e.svc.Unlink(e.ctx, b.ID, a.ID, model.ReltypeSibling))
	assert.Empty(t, e.linked(a.ID, model.ReltypeSibling))
	assert.Empty(t, e.linked(b.ID, model.ReltypeSibling))
}

func TestDeleteWithDescendants(t *testing.T) {
	e := newEnv(t)
	root := e.add("root")
	child := e.add("child")
	grandchild := e.add("grandchild")
	shared := e.add("shared")
	outside := e.add("outside")

	require.NoError(t, e.svc.Link(e.ctx, root.ID, child.ID, model.ReltypeChild))
	require.NoError(t, e.svc.Link(e.ctx, child.ID, grandchild.ID, model.ReltypeChild))
	require.NoError(t, e.svc.Link(e.ctx, root.ID, shared.ID, model.ReltypeChild))
	require.NoError(t, e.svc.Link(e.ctx, child.ID, shared.ID, model.ReltypeChild))
	require.NoError(t, e.svc.Link(e.ctx, outside.ID, child.ID, model.ReltypeSibling))

	categories := category.NewRepository()
	require.NoError(t, categories.ReplaceCategories(e.ctx, e.db, grandchild.ID, []string{"x"}))

	res, err := e.svc.DeleteWithDescendants(e.ctx, root.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{root.ID, child.ID, grandchild.ID, shared.ID}, res.Deleted)
	assert.Empty(t, res.Detached)

	for _, id := range res.Deleted {
		assert.False(t, e.exists(id))
	}
	assert.True(t, e.exists(outside.ID))
	assert.Empty(t, e.linked(outside.ID, model.ReltypeSibling))

	cats, err := categories.GetCategories(e.ctx, e.db, grandchild.ID)
	require.NoError(t, err)
	assert.Empty(t, cats)

	_, err = e.svc.DeleteWithDescendants(e.ctx, root.ID)
	assert.ErrorIs(t, err, model.ErrNoRecord)
}

func TestDeleteWithDescendantsRemovesInstances(t *testing.T) {
	e := newEnv(t)
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	origin := e.add("origin", func(o *model.ICalObject) {
		o.Dtstart = &start
		o.Rrule = "FREQ=DAILY;COUNT=3"
	})

	instance := func(summary string, day int, linked bool) *model.ICalObject {
		return e.add(summary, func(o *model.ICalObject) {
			recurid := start.AddDate(0, 0, day)
			o.Dtstart = &recurid
			o.Recurid = &recurid
			o.RecurOriginalID = &origin.ID
			o.IsRecurLinkedInstance = linked
		})
	}
	linked := instance("linked", 1, true)
	exception := instance("exception", 2, false)

	res, err := e.svc.DeleteWithDescendants(e.ctx, origin.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{origin.ID, linked.ID}, res.Deleted)
	assert.Equal(t, []int64{exception.ID}, res.Detached)

	kept, err := e.objects.GetObjectByID(e.ctx, e.db, exception.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.RecurOriginalID)
	assert.False(t, kept.IsRecurLinkedInstance)
	assert.False(t, e.exists(linked.ID))
}

func TestDeleteInstanceExcludesItFromOrigin(t *testing.T) {
	e := newEnv(t)
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	exdate := start.AddDate(0, 0, 5)
	origin := e.add("origin", func(o *model.ICalObject) {
		o.Dtstart = &start
		o.Rrule = "FREQ=DAILY;COUNT=3"
		o.Exdate = []time.Time{exdate}
	})

	instance := func(summary string, day int, linked bool) *model.ICalObject {
		return e.add(summary, func(o *model.ICalObject) {
			recurid := start.AddDate(0, 0, day)
			o.Dtstart = &recurid
			o.Recurid = &recurid
			o.RecurOriginalID = &origin.ID
			o.IsRecurLinkedInstance = linked
		})
	}
	linked := instance("linked", 1, true)
	exception := instance("exception", 2, false)

	res, err := e.svc.DeleteWithDescendants(e.ctx, linked.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{linked.ID}, res.Deleted)

	_, err = e.svc.DeleteWithDescendants(e.ctx, exception.ID)
	require.NoError(t, err)

	got, err := e.objects.GetObjectByID(e.ctx, e.db, origin.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{exdate.UnixMilli(), linked.Recurid.UnixMilli(), exception.Recurid.UnixMilli()}, millis(got.Exdate))
	assert.Equal(t, int64(2), got.Sequence)
	assert.True(t, got.Dirty)
	assert.False(t, e.exists(linked.ID))
	assert.False(t, e.exists(exception.ID))
}

func TestDeleteSubtreeWithWholeSeries(t *testing.T) {
	e := newEnv(t)
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	parent := e.add("parent")
	origin := e.add("origin", func(o *model.ICalObject) {
		o.Dtstart = &start
		o.Rrule = "FREQ=DAILY;COUNT=2"
	})
	recurid := start.AddDate(0, 0, 1)
	inst := e.add("inst", func(o *model.ICalObject) {
		o.Dtstart = &recurid
		o.Recurid = &recurid
		o.RecurOriginalID = &origin.ID
		o.IsRecurLinkedInstance = true
	})
	require.NoError(t, e.svc.Link(e.ctx, parent.ID, origin.ID, model.ReltypeChild))
	require.NoError(t, e.svc.Link(e.ctx, parent.ID, inst.ID, model.ReltypeChild))

	res, err := e.svc.DeleteWithDescendants(e.ctx, parent.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{parent.ID, origin.ID, inst.ID}, res.Deleted)
}

func millis(ts []time.Time) []int64 {
	res := make([]int64, len(ts))
	for i, t := range ts {
		res[i] = t.UnixMilli()
	}
	return res
}

func TestDeleteWithDescendantsAbortsOnCycle(t *testing.T) {
	e := newEnv(t)
	a := e.add("a")
	b := e.add("b")

	// A cycle can only come from another writer; it is built with raw rows.
	for _, rel := range []*model.Relatedto{
		{ICalObjectID: a.ID, LinkedICalObjectID: b.ID, Reltype: model.ReltypeChild},
		{ICalObjectID: b.ID, LinkedICalObjectID: a.ID, Reltype: model.ReltypeChild},
	} {
		_, err := e.relations.CreateRelation(e.ctx, e.db, rel)
		require.NoError(t, err)
	}

	_, err := e.svc.DeleteWithDescendants(e.ctx, a.ID)
	assert.ErrorIs(t, err, model.ErrInvariantViolation)
	assert.True(t, e.exists(a.ID))
	assert.True(t, e.exists(b.ID))
}
