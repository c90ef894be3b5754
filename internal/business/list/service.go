package list

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/SergeyKozhin/jtx-board/internal/database"
	"github.com/SergeyKozhin/jtx-board/internal/database/ical4list"
	"github.com/SergeyKozhin/jtx-board/internal/model"
)

type Service struct {
	db          database.DB
	rows        rowsRepository
	categories  categoriesRepository
	collections collectionsRepository
	clock       ical4list.Clock
}

type rowsRepository interface {
	List(ctx context.Context, q database.Queryable, filter model.ListFilter, clock ical4list.Clock) ([]*model.ICal4List, error)
	GetByID(ctx context.Context, q database.Queryable, id int64) (*model.ICal4List, error)
}

type categoriesRepository interface {
	GetAllCategories(ctx context.Context, q database.Queryable) ([]string, error)
}

type collectionsRepository interface {
	GetCollections(ctx context.Context, q database.Queryable) ([]*model.Collection, error)
}

func NewService(
	db database.DB,
	rows rowsRepository,
	categories categoriesRepository,
	collections collectionsRepository,
	clock ical4list.Clock,
) *Service {
	return &Service{
		db:          db,
		rows:        rows,
		categories:  categories,
		collections: collections,
		clock:       clock,
	}
}

func (s *Service) GetList(ctx context.Context, filter model.ListFilter) ([]*model.ICal4List, error) {
	rows, err := s.rows.List(ctx, s.db, filter, s.clock)
	if err != nil {
		return nil, fmt.Errorf("rows.List: %w", err)
	}

	return rows, nil
}

func (s *Service) GetRow(ctx context.Context, id int64) (*model.ICal4List, error) {
	row, err := s.rows.GetByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("rows.GetByID: %w", err)
	}

	return row, nil
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	res, err := s.categories.GetAllCategories(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("categories.GetAllCategories: %w", err)
	}

	return res, nil
}

func (s *Service) Collections(ctx context.Context) ([]*model.Collection, error) {
	res, err := s.collections.GetCollections(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("collections.GetCollections: %w", err)
	}

	return res, nil
}

// GroupRows splits rows that are already ordered by the group key into
// consecutive groups. Dates are grouped by day in loc, whatever timezone the
// row carries. An empty groupBy gives a single group.
func GroupRows(rows []*model.ICal4List, groupBy model.GroupBy, loc *time.Location) []*model.ListGroup {
	var res []*model.ListGroup

	for _, r := range rows {
		key := groupKey(r, groupBy, loc)
		if n := len(res); n == 0 || res[n-1].Key != key {
			res = append(res, &model.ListGroup{Key: key})
		}
		last := res[len(res)-1]
		last.Rows = append(last.Rows, r)
	}

	return res
}

func groupKey(r *model.ICal4List, groupBy model.GroupBy, loc *time.Location) string {
	switch groupBy {
	case model.GroupByStatus:
		return r.Status
	case model.GroupByClassification:
		return r.Classification
	case model.GroupByPriority:
		if r.Priority == nil {
			return ""
		}
		return strconv.Itoa(*r.Priority)
	case model.GroupByStart:
		return day(r.Dtstart, loc)
	case model.GroupByDue:
		return day(r.Due, loc)
	default:
		return ""
	}
}

// day formats every row in the same location. Rows arrive ordered by
// instant, so keys from a single location stay adjacent.
func day(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	return t.In(loc).Format("2006-01-02")
}
