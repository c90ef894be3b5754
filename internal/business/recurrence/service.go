package recurrence

import (
	"context"
	"fmt"
	"time"

	"github.com/SergeyKozhin/jtx-board/internal/database"
	"github.com/SergeyKozhin/jtx-board/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	db           database.DB
	logger       *zap.SugaredLogger
	objects      objectsRepository
	categories   categoriesRepository
	relations    relationsRepository
	location     *time.Location
	maxInstances int
	now          func() time.Time
}

type objectsRepository interface {
	GetObjectByID(ctx context.Context, q database.Queryable, id int64) (*model.ICalObject, error)
	GetInstances(ctx context.Context, q database.Queryable, originID int64) ([]*model.ICalObject, error)
	CreateObject(ctx context.Context, q database.Queryable, o *model.ICalObject) (int64, error)
	UpdateObject(ctx context.Context, q database.Queryable, o *model.ICalObject) error
	DeleteObjects(ctx context.Context, q database.Queryable, ids []int64) (int64, error)
}

type categoriesRepository interface {
	GetCategories(ctx context.Context, q database.Queryable, objectID int64) ([]*model.Category, error)
	ReplaceCategories(ctx context.Context, q database.Queryable, objectID int64, texts []string) error
}

type relationsRepository interface {
	GetRelations(ctx context.Context, q database.Queryable, objectID int64) ([]*model.Relatedto, error)
	CreateRelation(ctx context.Context, q database.Queryable, rel *model.Relatedto) (int64, error)
	DeleteRelation(ctx context.Context, q database.Queryable, objectID, linkedID int64, reltype model.Reltype) (int64, error)
}

func NewService(
	db database.DB,
	logger *zap.SugaredLogger,
	objects objectsRepository,
	categories categoriesRepository,
	relations relationsRepository,
	location *time.Location,
	maxInstances int,
) *Service {
	return &Service{
		db:           db,
		logger:       logger,
		objects:      objects,
		categories:   categories,
		relations:    relations,
		location:     location,
		maxInstances: maxInstances,
		now:          time.Now,
	}
}

// ReconcileResult counts what one reconciliation did to the instances of an origin.
type ReconcileResult struct {
	Created    int `json:"created"`
	Updated    int `json:"updated"`
	Deleted    int `json:"deleted"`
	Unchanged  int `json:"unchanged"`
	Exceptions int `json:"exceptions"`
}

// Writes counts the instance rows the run wrote.
func (r *ReconcileResult) Writes() int {
	return r.Created + r.Updated + r.Deleted
}

// Reconcile brings the materialized instances of an origin in line with its
// rule in one transaction.
func (s *Service) Reconcile(ctx context.Context, originID int64) (*ReconcileResult, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	res, err := s.ReconcileTx(ctx, tx, originID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	s.logger.Infow("reconciled recurring object",
		"origin_id", originID,
		"created", res.Created,
		"updated", res.Updated,
		"deleted", res.Deleted,
		"exceptions", res.Exceptions,
	)

	return res, nil
}

// ReconcileTx is Reconcile inside the caller's transaction.
func (s *Service) ReconcileTx(ctx context.Context, q database.Queryable, originID int64) (*ReconcileResult, error) {
	origin, err := s.objects.GetObjectByID(ctx, q, originID)
	if err != nil {
		return nil, fmt.Errorf("objects.GetObjectByID: %w", err)
	}

	if origin.IsInstance() {
		return nil, model.Invalid("id", model.ErrInvalidInput, "object %d is an instance, not an origin", originID)
	}

	var occurrences []time.Time
	if origin.IsOrigin() {
		if origin.Module == model.ModuleNote {
			return nil, model.Invalid("rrule", model.ErrRecurrenceOnNote, "")
		}

		occurrences, err = Occurrences(origin, s.location, s.maxInstances)
		if err != nil {
			return nil, err
		}
	}

	instances, err := s.objects.GetInstances(ctx, q, originID)
	if err != nil {
		return nil, fmt.Errorf("objects.GetInstances: %w", err)
	}

	res := &ReconcileResult{}
	linked := make(map[int64]*model.ICalObject, len(instances))
	taken := make(map[int64]struct{}, len(instances))
	var stale []int64

	for _, inst := range instances {
		if err := inst.CheckLinkage(); err != nil {
			s.logger.Errorw("inconsistent recurrence instance", "origin_id", originID, "instance_id", inst.ID, "err", err)
			return nil, err
		}

		if !inst.IsRecurLinkedInstance {
			res.Exceptions++
			if inst.Recurid != nil {
				taken[inst.Recurid.UnixMilli()] = struct{}{}
			}
			continue
		}

		key := inst.Recurid.UnixMilli()
		if _, dup := linked[key]; dup {
			stale = append(stale, inst.ID)
			continue
		}
		linked[key] = inst
	}

	var originCategories []string
	var originParents []*model.Relatedto
	if len(occurrences) != 0 {
		originCategories, err = s.categoryTexts(ctx, q, originID)
		if err != nil {
			return nil, err
		}

		originParents, err = s.parentRelations(ctx, q, originID)
		if err != nil {
			return nil, err
		}
	}

	now := s.now().UTC()
	wanted := make(map[int64]struct{}, len(occurrences))

	for _, occ := range occurrences {
		key := occ.UnixMilli()

		// An exception owns its slot; a linked copy next to it is stale.
		if _, ok := taken[key]; ok {
			continue
		}
		wanted[key] = struct{}{}

		if inst, ok := linked[key]; ok {
			changed, err := s.syncInstance(ctx, q, origin, originCategories, originParents, inst, occ, now)
			if err != nil {
				return nil, err
			}
			if changed {
				res.Updated++
			} else {
				res.Unchanged++
			}
			continue
		}

		if err := s.createInstance(ctx, q, origin, originCategories, originParents, occ, now); err != nil {
			return nil, err
		}
		res.Created++
	}

	for key, inst := range linked {
		if _, ok := wanted[key]; !ok {
			stale = append(stale, inst.ID)
		}
	}

	if len(stale) != 0 {
		n, err := s.objects.DeleteObjects(ctx, q, stale)
		if err != nil {
			return nil, fmt.Errorf("objects.DeleteObjects: %w", err)
		}
		res.Deleted = int(n)
	}

	return res, nil
}

// mirror applies the origin's content to inst for the occurrence at occ.
func mirror(origin, inst *model.ICalObject, occ time.Time) {
	inst.Module = origin.Module
	inst.Component = origin.Component
	inst.Summary = origin.Summary
	inst.Description = origin.Description
	inst.Location = origin.Location
	inst.URL = origin.URL
	inst.Contact = origin.Contact
	inst.Status = origin.Status
	inst.Classification = origin.Classification
	inst.Percent = copyInt(origin.Percent)
	inst.Priority = copyInt(origin.Priority)
	inst.Color = copyInt64(origin.Color)
	inst.CollectionID = origin.CollectionID

	start := occ
	inst.Dtstart = &start
	inst.DtstartTimezone = origin.DtstartTimezone
	inst.Due = nil
	if origin.Due != nil {
		due := occ.Add(origin.Due.Sub(*origin.Dtstart))
		inst.Due = &due
	}
	inst.DueTimezone = origin.DueTimezone

	recurid := occ
	inst.Recurid = &recurid
	inst.RecurOriginalID = &origin.ID
	inst.IsRecurLinkedInstance = true
	inst.Rrule = ""
	inst.Rdate = nil
	inst.Exdate = nil
}

func (s *Service) syncInstance(
	ctx context.Context,
	q database.Queryable,
	origin *model.ICalObject,
	originCategories []string,
	originParents []*model.Relatedto,
	inst *model.ICalObject,
	occ time.Time,
	now time.Time,
) (bool, error) {
	want := *inst
	mirror(origin, &want, occ)

	categories, err := s.categoryTexts(ctx, q, inst.ID)
	if err != nil {
		return false, err
	}
	categoriesChanged := !equalStrings(categories, originCategories)

	parentsChanged, err := s.syncParents(ctx, q, originParents, inst)
	if err != nil {
		return false, err
	}

	if sameContent(inst, &want) && !categoriesChanged {
		return parentsChanged, nil
	}

	if !sameContent(inst, &want) {
		want.Sequence++
		want.Dirty = true
		want.LastModified = now
		want.Dtstamp = now
		if err := s.objects.UpdateObject(ctx, q, &want); err != nil {
			return false, fmt.Errorf("objects.UpdateObject: %w", err)
		}
	}

	if categoriesChanged {
		if err := s.categories.ReplaceCategories(ctx, q, inst.ID, originCategories); err != nil {
			return false, fmt.Errorf("categories.ReplaceCategories: %w", err)
		}
	}

	return true, nil
}

func (s *Service) createInstance(
	ctx context.Context,
	q database.Queryable,
	origin *model.ICalObject,
	originCategories []string,
	originParents []*model.Relatedto,
	occ time.Time,
	now time.Time,
) error {
	inst := &model.ICalObject{
		UID:          uuid.NewString(),
		Dirty:        true,
		Created:      now,
		LastModified: now,
		Dtstamp:      now,
	}
	mirror(origin, inst, occ)

	id, err := s.objects.CreateObject(ctx, q, inst)
	if err != nil {
		return fmt.Errorf("objects.CreateObject: %w", err)
	}

	if len(originCategories) != 0 {
		if err := s.categories.ReplaceCategories(ctx, q, id, originCategories); err != nil {
			return fmt.Errorf("categories.ReplaceCategories: %w", err)
		}
	}

	for _, p := range originParents {
		if err := s.linkParent(ctx, q, id, inst.UID, p); err != nil {
			return err
		}
	}

	return nil
}

// syncParents makes the PARENT links of inst match those of its origin,
// reciprocal CHILD rows included.
func (s *Service) syncParents(ctx context.Context, q database.Queryable, originParents []*model.Relatedto, inst *model.ICalObject) (bool, error) {
	current, err := s.parentRelations(ctx, q, inst.ID)
	if err != nil {
		return false, err
	}

	have := make(map[int64]struct{}, len(current))
	for _, r := range current {
		have[r.LinkedICalObjectID] = struct{}{}
	}
	want := make(map[int64]struct{}, len(originParents))
	for _, p := range originParents {
		want[p.LinkedICalObjectID] = struct{}{}
	}

	changed := false
	for _, p := range originParents {
		if _, ok := have[p.LinkedICalObjectID]; ok {
			continue
		}
		if err := s.linkParent(ctx, q, inst.ID, inst.UID, p); err != nil {
			return false, err
		}
		have[p.LinkedICalObjectID] = struct{}{}
		changed = true
	}

	for _, r := range current {
		if _, ok := want[r.LinkedICalObjectID]; ok {
			continue
		}
		if _, err := s.relations.DeleteRelation(ctx, q, inst.ID, r.LinkedICalObjectID, model.ReltypeParent); err != nil {
			return false, fmt.Errorf("relations.DeleteRelation: %w", err)
		}
		changed = true
	}

	return changed, nil
}

// linkParent links the instance to the origin's parent p in both directions.
func (s *Service) linkParent(ctx context.Context, q database.Queryable, instID int64, instUID string, p *model.Relatedto) error {
	if _, err := s.relations.CreateRelation(ctx, q, &model.Relatedto{
		ICalObjectID:       instID,
		LinkedICalObjectID: p.LinkedICalObjectID,
		Text:               p.Text,
		Reltype:            model.ReltypeParent,
	}); err != nil {
		return fmt.Errorf("relations.CreateRelation: %w", err)
	}

	if _, err := s.relations.CreateRelation(ctx, q, &model.Relatedto{
		ICalObjectID:       p.LinkedICalObjectID,
		LinkedICalObjectID: instID,
		Text:               instUID,
		Reltype:            model.ReltypeChild,
	}); err != nil {
		return fmt.Errorf("relations.CreateRelation: %w", err)
	}

	return nil
}

func (s *Service) categoryTexts(ctx context.Context, q database.Queryable, objectID int64) ([]string, error) {
	cats, err := s.categories.GetCategories(ctx, q, objectID)
	if err != nil {
		return nil, fmt.Errorf("categories.GetCategories: %w", err)
	}

	res := make([]string, len(cats))
	for i, c := range cats {
		res[i] = c.Text
	}
	return res, nil
}

func (s *Service) parentRelations(ctx context.Context, q database.Queryable, objectID int64) ([]*model.Relatedto, error) {
	rels, err := s.relations.GetRelations(ctx, q, objectID)
	if err != nil {
		return nil, fmt.Errorf("relations.GetRelations: %w", err)
	}

	var res []*model.Relatedto
	for _, r := range rels {
		if r.Reltype == model.ReltypeParent {
			res = append(res, r)
		}
	}
	return res, nil
}

// Detach turns an instance into an exception. It keeps its back-reference
// but is no longer regenerated from the origin.
func (s *Service) Detach(ctx context.Context, instanceID int64) (*model.ICalObject, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	inst, err := s.objects.GetObjectByID(ctx, tx, instanceID)
	if err != nil {
		return nil, fmt.Errorf("objects.GetObjectByID: %w", err)
	}

	if !inst.IsInstance() {
		return nil, model.Invalid("id", model.ErrInvalidInput, "object %d is not a recurrence instance", instanceID)
	}

	if !inst.IsRecurLinkedInstance && inst.Rrule == "" && len(inst.Rdate) == 0 && len(inst.Exdate) == 0 {
		return inst, nil
	}

	now := s.now().UTC()
	inst.IsRecurLinkedInstance = false
	inst.Rrule = ""
	inst.Rdate = nil
	inst.Exdate = nil
	inst.Sequence++
	inst.Dirty = true
	inst.LastModified = now
	inst.Dtstamp = now

	if err := s.objects.UpdateObject(ctx, tx, inst); err != nil {
		return nil, fmt.Errorf("objects.UpdateObject: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	s.logger.Infow("detached recurrence instance", "instance_id", instanceID, "origin_id", *inst.RecurOriginalID)

	return inst, nil
}
