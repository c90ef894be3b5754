package icalobjects

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SergeyKozhin/jtx-board/internal/business/recurrence"
	"github.com/SergeyKozhin/jtx-board/internal/business/relations"
	"github.com/SergeyKozhin/jtx-board/internal/database"
	"github.com/SergeyKozhin/jtx-board/internal/model"
	"go.uber.org/zap"
)

type Service struct {
	db          database.DB
	logger      *zap.SugaredLogger
	objects     objectsRepository
	categories  categoriesRepository
	collections collectionsRepository
	recurrence  recurrenceService
	relations   relationsService
	locker      recurrence.OriginLocker
	location    *time.Location
	now         func() time.Time
}

type objectsRepository interface {
	GetObjectByID(ctx context.Context, q database.Queryable, id int64) (*model.ICalObject, error)
	CreateObject(ctx context.Context, q database.Queryable, o *model.ICalObject) (int64, error)
	UpdateObject(ctx context.Context, q database.Queryable, o *model.ICalObject) error
}

type categoriesRepository interface {
	GetCategories(ctx context.Context, q database.Queryable, objectID int64) ([]*model.Category, error)
	ReplaceCategories(ctx context.Context, q database.Queryable, objectID int64, texts []string) error
}

type collectionsRepository interface {
	GetCollectionByID(ctx context.Context, q database.Queryable, id int64) (*model.Collection, error)
}

type recurrenceService interface {
	ReconcileTx(ctx context.Context, q database.Queryable, originID int64) (*recurrence.ReconcileResult, error)
}

type relationsService interface {
	LinkTx(ctx context.Context, q database.Queryable, objectID, linkedID int64, reltype model.Reltype) error
	DeleteWithDescendants(ctx context.Context, id int64) (*relations.DeleteResult, error)
}

func NewService(
	db database.DB,
	logger *zap.SugaredLogger,
	objects objectsRepository,
	categories categoriesRepository,
	collections collectionsRepository,
	recurrenceSvc recurrenceService,
	relationsSvc relationsService,
	locker recurrence.OriginLocker,
	location *time.Location,
) *Service {
	return &Service{
		db:          db,
		logger:      logger,
		objects:     objects,
		categories:  categories,
		collections: collections,
		recurrence:  recurrenceSvc,
		relations:   relationsSvc,
		locker:      locker,
		location:    location,
		now:         time.Now,
	}
}

func (s *Service) withTx(ctx context.Context, fn func(tx database.Tx) error) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

// lockSeries takes the series lock for id. Instances share the lock of their
// origin so edits and reconciliation of one series never interleave.
func (s *Service) lockSeries(ctx context.Context, id int64) (func(), error) {
	lockID := id
	o, err := s.objects.GetObjectByID(ctx, s.db, id)
	switch {
	case err == nil:
		lockID = recurrence.SeriesID(o)
	case !errors.Is(err, model.ErrNoRecord):
		return nil, fmt.Errorf("objects.GetObjectByID: %w", err)
	}

	unlock, err := s.locker.Lock(ctx, lockID)
	if err != nil {
		return nil, fmt.Errorf("lock origin: %w", err)
	}

	return unlock, nil
}

// touch marks a changed object for upload.
func (s *Service) touch(o *model.ICalObject) {
	now := s.now().UTC()
	o.LastModified = now
	o.Dtstamp = now
	o.Dirty = true
}
