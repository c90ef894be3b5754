package ical4list

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/jtx-board/internal/database"
	"github.com/SergeyKozhin/jtx-board/internal/model"
)

// Clock supplies the current instant. Day boundaries of date filters are
// computed in the location of the returned time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in Location.
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// Query is a rendered list query with "?" placeholders.
type Query struct {
	SQL  string
	Args []interface{}
}

func (q Query) ToSql() (string, []interface{}, error) {
	return q.SQL, q.Args, nil
}

const (
	joinCategory   = "category ON ical4list.id = category.icalobject_id"
	joinCollection = "collection ON ical4list.collection_id = collection.id"
)

// listQuery is the intermediate form of a list query. Every step returns a
// new value and the result is rendered once.
type listQuery struct {
	joins      []string
	predicates []sq.Sqlizer
	orders     []string
}

func (lq listQuery) join(j string) listQuery {
	lq.joins = append(append([]string(nil), lq.joins...), j)
	return lq
}

func (lq listQuery) where(p sq.Sqlizer) listQuery {
	lq.predicates = append(append([]sq.Sqlizer(nil), lq.predicates...), p)
	return lq
}

func (lq listQuery) orderBy(o string) listQuery {
	lq.orders = append(append([]string(nil), lq.orders...), o)
	return lq
}

func (lq listQuery) render() (Query, error) {
	qb := database.SQL.
		Select(database.ICal4ListView + ".*").
		Distinct().
		From(database.ICal4ListView)

	for _, j := range lq.joins {
		qb = qb.LeftJoin(j)
	}
	for _, p := range lq.predicates {
		qb = qb.Where(p)
	}
	qb = qb.OrderBy(lq.orders...)

	query, args, err := qb.ToSql()
	if err != nil {
		return Query{}, fmt.Errorf("ToSql: %w", err)
	}

	return Query{SQL: query, Args: args}, nil
}

// window holds the instants date filters compare against, in epoch millis.
type window struct {
	now           int64
	startToday    int64
	endToday      int64
	startTomorrow int64
	endTomorrow   int64
}

func newWindow(now time.Time) window {
	y, m, d := now.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	tomorrow := start.AddDate(0, 0, 1)
	dayAfter := start.AddDate(0, 0, 2)

	return window{
		now:           now.UnixMilli(),
		startToday:    start.UnixMilli(),
		endToday:      tomorrow.UnixMilli() - 1,
		startTomorrow: tomorrow.UnixMilli(),
		endTomorrow:   dayAfter.UnixMilli() - 1,
	}
}

var orderColumns = map[model.OrderBy]string{
	model.OrderByCreated:        "ical4list.created",
	model.OrderByLastModified:   "ical4list.last_modified",
	model.OrderBySummary:        "ical4list.summary",
	model.OrderByStart:          "ical4list.dtstart",
	model.OrderByDue:            "ical4list.due",
	model.OrderByCompleted:      "ical4list.completed",
	model.OrderByPriority:       "ical4list.priority",
	model.OrderByClassification: "ical4list.classification",
	model.OrderByStatus:         "ical4list.status",
	model.OrderByPercent:        "ical4list.percent",
}

// Both drivers are told where nulls go so the order does not depend on the backend.
func orderClause(o model.OrderBy, s model.SortOrder) string {
	if s == model.SortOrderDesc {
		return orderColumns[o] + " DESC NULLS LAST"
	}
	return orderColumns[o] + " ASC NULLS FIRST"
}

// BuildListQuery turns a filter into a parameterized query over the list view.
// Unknown enum values are rejected with a *model.ValidationError.
func BuildListQuery(filter model.ListFilter, clock Clock) (Query, error) {
	filter = filter.WithDefaults()
	if filter.GroupBy != "" {
		if _, err := model.ParseGroupBy(string(filter.GroupBy)); err != nil {
			return Query{}, err
		}
		filter.OrderBy = filter.GroupBy.OrderBy()
	}

	if err := validate(filter); err != nil {
		return Query{}, err
	}

	w := newWindow(clock.Now())

	var lq listQuery
	if len(filter.Categories) != 0 {
		lq = lq.join(joinCategory)
	}
	if len(filter.Collections) != 0 || len(filter.Accounts) != 0 {
		lq = lq.join(joinCollection)
	}

	lq = lq.where(sq.Eq{"ical4list.module": string(filter.Module)})

	if utf8.RuneCountInString(filter.SearchText) >= 2 {
		pattern := "%" + escapeLike(filter.SearchText) + "%"
		lq = lq.where(sq.Expr(
			`(LOWER(ical4list.summary) LIKE LOWER(?) ESCAPE '\' OR LOWER(ical4list.description) LIKE LOWER(?) ESCAPE '\')`,
			pattern, pattern,
		))
	}

	if len(filter.Categories) != 0 {
		lq = lq.where(sq.Eq{"category.text": filter.Categories})
	}

	switch filter.Module {
	case model.ModuleJournal, model.ModuleNote:
		if len(filter.StatusJournal) != 0 {
			lq = lq.where(sq.Eq{"ical4list.status": journalStatuses(filter.StatusJournal)})
		}
	case model.ModuleTodo:
		if len(filter.StatusTodo) != 0 {
			lq = lq.where(sq.Eq{"ical4list.status": todoStatuses(filter.StatusTodo)})
		}
	}

	if filter.ExcludeDone {
		lq = lq.where(sq.Expr("(ical4list.percent IS NULL OR ical4list.percent <> 100)"))
	}

	if dates := datePredicates(filter.DateFilters, w); len(dates) != 0 {
		lq = lq.where(dates)
	}

	if len(filter.Classifications) != 0 {
		classes := make([]string, len(filter.Classifications))
		for i, c := range filter.Classifications {
			classes[i] = string(c)
		}
		lq = lq.where(sq.Eq{"ical4list.classification": classes})
	}

	if len(filter.Collections) != 0 {
		lq = lq.where(sq.Eq{"collection.display_name": filter.Collections})
	}
	if len(filter.Accounts) != 0 {
		lq = lq.where(sq.Eq{"collection.account_name": filter.Accounts})
	}

	if !filter.FlatView {
		lq = lq.
			where(sq.Eq{"ical4list.is_child_of_todo": false}).
			where(sq.Eq{"ical4list.is_child_of_journal": false}).
			where(sq.Eq{"ical4list.is_child_of_note": false})
	}

	if filter.ShowOneRecurEntryInFuture {
		lq = lq.where(sq.Expr(
			"(ical4list.is_recur_linked_instance = ? OR ical4list.dtstart < ? OR ical4list.dtstart = "+
				"(SELECT MIN(recur_list.dtstart) FROM icalobject recur_list "+
				"WHERE recur_list.recur_original_icalobject_id = ical4list.recur_original_icalobject_id "+
				"AND recur_list.is_recur_linked_instance = ? AND recur_list.deleted = ? AND recur_list.dtstart >= ?))",
			false, w.startToday, true, false, w.startToday,
		))
	}

	lq = lq.
		orderBy(orderClause(filter.OrderBy, filter.SortOrder)).
		orderBy(orderClause(filter.OrderBy2, filter.SortOrder2)).
		orderBy("ical4list.id ASC")

	return lq.render()
}

func validate(f model.ListFilter) error {
	if _, err := model.ParseModule(string(f.Module)); err != nil {
		return err
	}
	for _, o := range []model.OrderBy{f.OrderBy, f.OrderBy2} {
		if _, err := model.ParseOrderBy(string(o)); err != nil {
			return err
		}
	}
	for _, s := range []model.SortOrder{f.SortOrder, f.SortOrder2} {
		if _, err := model.ParseSortOrder(string(s)); err != nil {
			return err
		}
	}
	for _, s := range f.StatusJournal {
		if _, err := model.ParseJournalStatus(string(s)); err != nil {
			return err
		}
	}
	for _, s := range f.StatusTodo {
		if _, err := model.ParseTodoStatus(string(s)); err != nil {
			return err
		}
	}
	for _, c := range f.Classifications {
		if _, err := model.ParseClassification(string(c)); err != nil {
			return err
		}
	}
	for _, d := range f.DateFilters {
		if _, err := model.ParseDateFilter(string(d)); err != nil {
			return err
		}
	}
	return nil
}

func journalStatuses(in []model.JournalStatus) []string {
	res := make([]string, len(in))
	for i, s := range in {
		res[i] = s.String()
	}
	return res
}

func todoStatuses(in []model.TodoStatus) []string {
	res := make([]string, len(in))
	for i, s := range in {
		res[i] = s.String()
	}
	return res
}

// dateFilterOrder fixes the order of the OR-group independent of the input order.
var dateFilterOrder = []model.DateFilter{
	model.DateFilterStartInPast,
	model.DateFilterStartToday,
	model.DateFilterStartTomorrow,
	model.DateFilterStartFuture,
	model.DateFilterOverdue,
	model.DateFilterDueToday,
	model.DateFilterDueTomorrow,
	model.DateFilterDueFuture,
	model.DateFilterNoDatesSet,
}

func datePredicates(filters []model.DateFilter, w window) sq.Or {
	set := make(map[model.DateFilter]struct{}, len(filters))
	for _, f := range filters {
		set[f] = struct{}{}
	}

	var or sq.Or
	for _, f := range dateFilterOrder {
		if _, ok := set[f]; !ok {
			continue
		}
		or = append(or, datePredicate(f, w))
	}
	return or
}

func datePredicate(f model.DateFilter, w window) sq.Sqlizer {
	switch f {
	case model.DateFilterStartInPast:
		return sq.Lt{"ical4list.dtstart": w.now}
	case model.DateFilterStartToday:
		return sq.Expr("ical4list.dtstart BETWEEN ? AND ?", w.startToday, w.endToday)
	case model.DateFilterStartTomorrow:
		return sq.Expr("ical4list.dtstart BETWEEN ? AND ?", w.startTomorrow, w.endTomorrow)
	case model.DateFilterStartFuture:
		return sq.Gt{"ical4list.dtstart": w.now}
	case model.DateFilterOverdue:
		return sq.Lt{"ical4list.due": w.now}
	case model.DateFilterDueToday:
		return sq.Expr("ical4list.due BETWEEN ? AND ?", w.startToday, w.endToday)
	case model.DateFilterDueTomorrow:
		return sq.Expr("ical4list.due BETWEEN ? AND ?", w.startTomorrow, w.endTomorrow)
	case model.DateFilterDueFuture:
		return sq.Gt{"ical4list.due": w.now}
	default:
		return sq.Expr("(ical4list.dtstart IS NULL AND ical4list.due IS NULL AND ical4list.completed IS NULL)")
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
