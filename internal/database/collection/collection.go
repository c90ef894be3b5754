package collection

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

type collectionDTO struct {
	ID               int64   `db:"id"`
	DisplayName      *string `db:"display_name"`
	AccountName      *string `db:"account_name"`
	AccountType      string  `db:"account_type"`
	Color            *int64  `db:"color"`
	ReadOnly         bool    `db:"read_only"`
	SupportsVJournal bool    `db:"supports_vjournal"`
	SupportsVTodo    bool    `db:"supports_vtodo"`
}

var baseQuery = database.SQL.
	Select("id",
		"display_name",
		"account_name",
		"account_type",
		"color",
		"read_only",
		"supports_vjournal",
		"supports_vtodo",
	).
	From(database.CollectionTable)

func mapToCollection(d *collectionDTO) *model.Collection {
	return &model.Collection{
		ID:               d.ID,
		DisplayName:      database.String(d.DisplayName),
		AccountName:      database.String(d.AccountName),
		AccountType:      d.AccountType,
		Color:            d.Color,
		ReadOnly:         d.ReadOnly,
		SupportsVJournal: d.SupportsVJournal,
		SupportsVTodo:    d.SupportsVTodo,
	}
}

func (*Repository) GetCollectionByID(ctx context.Context, q database.Queryable, id int64) (*model.Collection, error) {
	qb := baseQuery.
		Where(sq.Eq{"id": id})

	var dtos []*collectionDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	if len(dtos) == 0 {
		return nil, model.ErrNoRecord
	}

	return mapToCollection(dtos[0]), nil
}

func (*Repository) GetCollections(ctx context.Context, q database.Queryable) ([]*model.Collection, error) {
	qb := baseQuery.
		OrderBy("display_name", "id")

	var dtos []*collectionDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Collection, len(dtos))
	for i, d := range dtos {
		res[i] = mapToCollection(d)
	}

	return res, nil
}

func (*Repository) CreateCollection(ctx context.Context, q database.Queryable, c *model.Collection) (int64, error) {
	accountType := c.AccountType
	if accountType == "" {
		accountType = model.AccountTypeLocal
	}

	qb := database.SQL.
		Insert(database.CollectionTable).
		Columns(
			"display_name",
			"account_name",
			"account_type",
			"color",
			"read_only",
			"supports_vjournal",
			"supports_vtodo",
		).
		Values(
			database.NullString(c.DisplayName),
			database.NullString(c.AccountName),
			accountType,
			c.Color,
			c.ReadOnly,
			c.SupportsVJournal,
			c.SupportsVTodo,
		).
		Suffix("RETURNING id")

	var id int64
	if err := q.Get(ctx, &id, qb); err != nil {
		return 0, fmt.Errorf("SQL request: %w", err)
	}

	return id, nil
}
