package relatedto

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/jtx-board/internal/database"
	"github.com/SergeyKozhin/jtx-board/internal/model"
)

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

type relatedtoDTO struct {
	ID                 int64   `db:"id"`
	ICalObjectID       int64   `db:"icalobject_id"`
	LinkedICalObjectID int64   `db:"linked_icalobject_id"`
	Text               *string `db:"text"`
	Reltype            string  `db:"reltype"`
}

var baseQuery = database.SQL.
	Select("id",
		"icalobject_id",
		"linked_icalobject_id",
		"text",
		"reltype",
	).
	From(database.RelatedtoTable)

func mapToRelatedto(d *relatedtoDTO) *model.Relatedto {
	return &model.Relatedto{
		ID:                 d.ID,
		ICalObjectID:       d.ICalObjectID,
		LinkedICalObjectID: d.LinkedICalObjectID,
		Text:               database.String(d.Text),
		Reltype:            model.Reltype(d.Reltype),
	}
}

func (*Repository) selectRows(ctx context.Context, q database.Queryable, qb sq.SelectBuilder) ([]*model.Relatedto, error) {
	var dtos []*relatedtoDTO
	if err := q.Select(ctx, &dtos, qb.OrderBy("id")); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Relatedto, len(dtos))
	for i, d := range dtos {
		res[i] = mapToRelatedto(d)
	}

	return res, nil
}

// GetRelations returns the rows owned by the object.
func (r *Repository) GetRelations(ctx context.Context, q database.Queryable, objectID int64) ([]*model.Relatedto, error) {
	return r.selectRows(ctx, q, baseQuery.Where(sq.Eq{"icalobject_id": objectID}))
}

// GetLinked returns the ids the object points to with the given reltype.
func (r *Repository) GetLinked(ctx context.Context, q database.Queryable, objectID int64, reltype model.Reltype) ([]int64, error) {
	rows, err := r.selectRows(ctx, q, baseQuery.Where(sq.Eq{
		"icalobject_id": objectID,
		"reltype":       string(reltype),
	}))
	if err != nil {
		return nil, err
	}

	res := make([]int64, len(rows))
	for i, row := range rows {
		res[i] = row.LinkedICalObjectID
	}

	return res, nil
}

// GetRelation returns the row (objectID, linkedID, reltype) or model.ErrNoRecord.
func (r *Repository) GetRelation(ctx context.Context, q database.Queryable, objectID, linkedID int64, reltype model.Reltype) (*model.Relatedto, error) {
	rows, err := r.selectRows(ctx, q, baseQuery.Where(sq.Eq{
		"icalobject_id":        objectID,
		"linked_icalobject_id": linkedID,
		"reltype":              string(reltype),
	}))
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, model.ErrNoRecord
	}

	return rows[0], nil
}

func (*Repository) CreateRelation(ctx context.Context, q database.Queryable, rel *model.Relatedto) (int64, error) {
	qb := database.SQL.
		Insert(database.RelatedtoTable).
		Columns("icalobject_id", "linked_icalobject_id", "text", "reltype").
		Values(rel.ICalObjectID, rel.LinkedICalObjectID, database.NullString(rel.Text), string(rel.Reltype)).
		Suffix("RETURNING id")

	var id int64
	if err := q.Get(ctx, &id, qb); err != nil {
		return 0, fmt.Errorf("SQL request: %w", err)
	}

	return id, nil
}

// DeleteRelation removes one logical edge: the reltype row from objectID to
// linkedID and its inverse row back. Other reltypes between the pair stay.
func (*Repository) DeleteRelation(ctx context.Context, q database.Queryable, objectID, linkedID int64, reltype model.Reltype) (int64, error) {
	qb := database.SQL.
		Delete(database.RelatedtoTable).
		Where(sq.Or{
			sq.Eq{"icalobject_id": objectID, "linked_icalobject_id": linkedID, "reltype": string(reltype)},
			sq.Eq{"icalobject_id": linkedID, "linked_icalobject_id": objectID, "reltype": string(reltype.Inverse())},
		})

	n, err := q.Exec(ctx, qb)
	if err != nil {
		return 0, fmt.Errorf("SQL request: %w", err)
	}

	return n, nil
}
