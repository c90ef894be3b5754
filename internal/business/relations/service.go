package relations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SergeyKozhin/jtx-board/internal/database"
	"github.com/SergeyKozhin/jtx-board/internal/model"
	"go.uber.org/zap"
)

type Service struct {
	db        database.DB
	logger    *zap.SugaredLogger
	objects   objectsRepository
	relations relationsRepository
	now       func() time.Time
}

type objectsRepository interface {
	GetObjectByID(ctx context.Context, q database.Queryable, id int64) (*model.ICalObject, error)
	GetInstances(ctx context.Context, q database.Queryable, originID int64) ([]*model.ICalObject, error)
	DeleteObjects(ctx context.Context, q database.Queryable, ids []int64) (int64, error)
	UpdateObject(ctx context.Context, q database.Queryable, o *model.ICalObject) error
	ClearOrigin(ctx context.Context, q database.Queryable, ids []int64) error
}

type relationsRepository interface {
	GetLinked(ctx context.Context, q database.Queryable, objectID int64, reltype model.Reltype) ([]int64, error)
	GetRelation(ctx context.Context, q database.Queryable, objectID, linkedID int64, reltype model.Reltype) (*model.Relatedto, error)
	CreateRelation(ctx context.Context, q database.Queryable, rel *model.Relatedto) (int64, error)
	DeleteRelation(ctx context.Context, q database.Queryable, objectID, linkedID int64, reltype model.Reltype) (int64, error)
}

func NewService(db database.DB, logger *zap.SugaredLogger, objects objectsRepository, relations relationsRepository) *Service {
	return &Service{
		db:        db,
		logger:    logger,
		objects:   objects,
		relations: relations,
		now:       time.Now,
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

// Link records that linkedID is objectID's reltype, together with the
// reciprocal row. Linking twice is a no-op.
func (s *Service) Link(ctx context.Context, objectID, linkedID int64, reltype model.Reltype) error {
	return s.withTx(ctx, func(tx database.Tx) error {
		return s.LinkTx(ctx, tx, objectID, linkedID, reltype)
	})
}

// LinkTx is Link inside the caller's transaction.
func (s *Service) LinkTx(ctx context.Context, q database.Queryable, objectID, linkedID int64, reltype model.Reltype) error {
	if _, err := model.ParseReltype(string(reltype)); err != nil {
		return err
	}
	if objectID == linkedID {
		return model.Invalid("linked_id", model.ErrInvalidInput, "an object cannot be linked to itself")
	}

	object, err := s.objects.GetObjectByID(ctx, q, objectID)
	if err != nil {
		return fmt.Errorf("objects.GetObjectByID: %w", err)
	}
	linked, err := s.objects.GetObjectByID(ctx, q, linkedID)
	if err != nil {
		return fmt.Errorf("objects.GetObjectByID: %w", err)
	}

	forward, err := s.hasRelation(ctx, q, objectID, linkedID, reltype)
	if err != nil {
		return err
	}
	backward, err := s.hasRelation(ctx, q, linkedID, objectID, reltype.Inverse())
	if err != nil {
		return err
	}

	if forward && backward {
		return nil
	}

	if reltype != model.ReltypeSibling && !forward && !backward {
		parent, child := objectID, linkedID
		if reltype == model.ReltypeParent {
			parent, child = linkedID, objectID
		}

		cyclic, err := s.reachable(ctx, q, child, parent)
		if err != nil {
			return err
		}
		if cyclic {
			s.logger.Errorw("rejected cyclic link", "parent_id", parent, "child_id", child)
			return fmt.Errorf("%w: linking %d under %d closes a cycle", model.ErrInvariantViolation, child, parent)
		}
	}

	if !forward {
		if _, err := s.relations.CreateRelation(ctx, q, &model.Relatedto{
			ICalObjectID:       objectID,
			LinkedICalObjectID: linkedID,
			Text:               linked.UID,
			Reltype:            reltype,
		}); err != nil {
			return fmt.Errorf("relations.CreateRelation: %w", err)
		}
	}

	if !backward {
		if _, err := s.relations.CreateRelation(ctx, q, &model.Relatedto{
			ICalObjectID:       linkedID,
			LinkedICalObjectID: objectID,
			Text:               object.UID,
			Reltype:            reltype.Inverse(),
		}); err != nil {
			return fmt.Errorf("relations.CreateRelation: %w", err)
		}
	}

	return nil
}

func (s *Service) hasRelation(ctx context.Context, q database.Queryable, objectID, linkedID int64, reltype model.Reltype) (bool, error) {
	_, err := s.relations.GetRelation(ctx, q, objectID, linkedID, reltype)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, model.ErrNoRecord):
		return false, nil
	default:
		return false, fmt.Errorf("relations.GetRelation: %w", err)
	}
}

// reachable reports whether target is from or one of its descendants.
func (s *Service) reachable(ctx context.Context, q database.Queryable, from, target int64) (bool, error) {
	seen := map[int64]struct{}{}
	stack := []int64{from}

	for len(stack) != 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if id == target {
			return true, nil
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		children, err := s.relations.GetLinked(ctx, q, id, model.ReltypeChild)
		if err != nil {
			return false, fmt.Errorf("relations.GetLinked: %w", err)
		}
		stack = append(stack, children...)
	}

	return false, nil
}

// Unlink removes the reltype edge from objectID to linkedID together with its
// reciprocal row. An empty reltype means CHILD. Edges of other reltypes
// between the same pair are kept.
func (s *Service) Unlink(ctx context.Context, objectID, linkedID int64, reltype model.Reltype) error {
	if reltype == "" {
		reltype = model.ReltypeChild
	}
	if _, err := model.ParseReltype(string(reltype)); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx database.Tx) error {
		n, err := s.relations.DeleteRelation(ctx, tx, objectID, linkedID, reltype)
		if err != nil {
			return fmt.Errorf("relations.DeleteRelation: %w", err)
		}
		if n == 0 {
			return model.ErrNoRecord
		}
		return nil
	})
}

type DeleteResult struct {
	Deleted  []int64 `json:"deleted"`
	Detached []int64 `json:"detached"`
}

// DeleteWithDescendants deletes the object, everything below it and the
// linked instances of every deleted origin. Exceptions of deleted origins
// are kept as plain objects. A deleted instance whose origin survives is
// added to the origin's exdate so the occurrence is not materialized again.
func (s *Service) DeleteWithDescendants(ctx context.Context, id int64) (*DeleteResult, error) {
	var res *DeleteResult
	err := s.withTx(ctx, func(tx database.Tx) error {
		var err error
		res, err = s.DeleteWithDescendantsTx(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("deleted object tree", "id", id, "deleted", len(res.Deleted), "detached", len(res.Detached))

	return res, nil
}

// DeleteWithDescendantsTx is DeleteWithDescendants inside the caller's transaction.
func (s *Service) DeleteWithDescendantsTx(ctx context.Context, q database.Queryable, id int64) (*DeleteResult, error) {
	if _, err := s.objects.GetObjectByID(ctx, q, id); err != nil {
		return nil, fmt.Errorf("objects.GetObjectByID: %w", err)
	}

	w := &walker{
		s:       s,
		q:       q,
		onStack: map[int64]bool{},
		done:    map[int64]bool{},
	}
	if err := w.visit(ctx, id); err != nil {
		return nil, err
	}

	res := &DeleteResult{}
	var instanceIDs []int64
	var exceptions []int64

	for _, objID := range w.order {
		instances, err := s.objects.GetInstances(ctx, q, objID)
		if err != nil {
			return nil, fmt.Errorf("objects.GetInstances: %w", err)
		}

		for _, inst := range instances {
			if w.done[inst.ID] {
				continue
			}
			if inst.IsRecurLinkedInstance {
				instanceIDs = append(instanceIDs, inst.ID)
				w.done[inst.ID] = true
				continue
			}
			exceptions = append(exceptions, inst.ID)
		}
	}

	if err := s.excludeFromOrigins(ctx, q, w.order, w.done); err != nil {
		return nil, err
	}

	if len(exceptions) != 0 {
		if err := s.objects.ClearOrigin(ctx, q, exceptions); err != nil {
			return nil, fmt.Errorf("objects.ClearOrigin: %w", err)
		}
	}

	res.Deleted = append(w.order, instanceIDs...)
	res.Detached = exceptions

	if _, err := s.objects.DeleteObjects(ctx, q, res.Deleted); err != nil {
		return nil, fmt.Errorf("objects.DeleteObjects: %w", err)
	}

	return res, nil
}

// excludeFromOrigins adds the recurrence id of every instance in ids to the
// exdate of its origin, unless the origin is deleted as well.
func (s *Service) excludeFromOrigins(ctx context.Context, q database.Queryable, ids []int64, deleted map[int64]bool) error {
	var origins []int64
	recurids := map[int64][]time.Time{}

	for _, id := range ids {
		o, err := s.objects.GetObjectByID(ctx, q, id)
		if err != nil {
			return fmt.Errorf("objects.GetObjectByID: %w", err)
		}
		if !o.IsInstance() || o.Recurid == nil || deleted[*o.RecurOriginalID] {
			continue
		}

		originID := *o.RecurOriginalID
		if _, ok := recurids[originID]; !ok {
			origins = append(origins, originID)
		}
		recurids[originID] = append(recurids[originID], *o.Recurid)
	}

	now := s.now().UTC()
	for _, originID := range origins {
		origin, err := s.objects.GetObjectByID(ctx, q, originID)
		if err != nil {
			return fmt.Errorf("objects.GetObjectByID: %w", err)
		}
		if !origin.IsOrigin() {
			continue
		}

		origin.Exdate = mergeDates(origin.Exdate, recurids[originID])
		origin.Sequence++
		origin.Dirty = true
		origin.LastModified = now
		origin.Dtstamp = now

		if err := s.objects.UpdateObject(ctx, q, origin); err != nil {
			return fmt.Errorf("objects.UpdateObject: %w", err)
		}

		s.logger.Infow("excluded deleted instances from series", "origin_id", originID, "count", len(recurids[originID]))
	}

	return nil
}

// mergeDates appends the dates of add that are not in dates yet, compared at
// millisecond precision.
func mergeDates(dates, add []time.Time) []time.Time {
	seen := make(map[int64]struct{}, len(dates)+len(add))
	for _, d := range dates {
		seen[d.UnixMilli()] = struct{}{}
	}
	for _, d := range add {
		if _, ok := seen[d.UnixMilli()]; ok {
			continue
		}
		seen[d.UnixMilli()] = struct{}{}
		dates = append(dates, d)
	}
	return dates
}

type walker struct {
	s       *Service
	q       database.Queryable
	onStack map[int64]bool
	done    map[int64]bool
	order   []int64
}

func (w *walker) visit(ctx context.Context, id int64) error {
	w.onStack[id] = true

	children, err := w.s.relations.GetLinked(ctx, w.q, id, model.ReltypeChild)
	if err != nil {
		return fmt.Errorf("relations.GetLinked: %w", err)
	}

	for _, child := range children {
		if w.onStack[child] {
			w.s.logger.Errorw("cycle in relations", "id", id, "child_id", child)
			return fmt.Errorf("%w: %d is its own descendant", model.ErrInvariantViolation, child)
		}
		if w.done[child] {
			continue
		}
		if err := w.visit(ctx, child); err != nil {
			return err
		}
	}

	w.onStack[id] = false
	w.done[id] = true
	w.order = append(w.order, id)

	return nil
}

// Children returns the objects linked as CHILD of id.
func (s *Service) Children(ctx context.Context, id int64) ([]*model.ICalObject, error) {
	return s.linkedObjects(ctx, id, model.ReltypeChild)
}

// Parents returns the objects linked as PARENT of id.
func (s *Service) Parents(ctx context.Context, id int64) ([]*model.ICalObject, error) {
	return s.linkedObjects(ctx, id, model.ReltypeParent)
}

func (s *Service) linkedObjects(ctx context.Context, id int64, reltype model.Reltype) ([]*model.ICalObject, error) {
	if _, err := s.objects.GetObjectByID(ctx, s.db, id); err != nil {
		return nil, fmt.Errorf("objects.GetObjectByID: %w", err)
	}

	ids, err := s.relations.GetLinked(ctx, s.db, id, reltype)
	if err != nil {
		return nil, fmt.Errorf("relations.GetLinked: %w", err)
	}

	res := make([]*model.ICalObject, 0, len(ids))
	for _, linkedID := range ids {
		o, err := s.objects.GetObjectByID(ctx, s.db, linkedID)
		if err != nil {
			return nil, fmt.Errorf("objects.GetObjectByID: %w", err)
		}
		res = append(res, o)
	}

	return res, nil
}
