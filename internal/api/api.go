package api

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -destination=mocks/mock_services.go -package=mocks github.com/SergeyKozhin/jtx-board/internal/api ListService,ObjectsService,RecurrenceService,RelationsService,TokenVerifier

import (
	"context"
	"net/http"
	"time"

	"github.com/SergeyKozhin/jtx-board/internal/business/recurrence"
	"github.com/SergeyKozhin/jtx-board/internal/business/relations"
	"github.com/SergeyKozhin/jtx-board/internal/model"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Api struct {
	handler  http.Handler
	logger   *zap.SugaredLogger
	location *time.Location

	tokens     TokenVerifier
	list       ListService
	objects    ObjectsService
	recurrence RecurrenceService
	relations  RelationsService
	locker     recurrence.OriginLocker
}

type TokenVerifier interface {
	GetSubject(token string) (string, error)
}

type ListService interface {
	GetList(ctx context.Context, filter model.ListFilter) ([]*model.ICal4List, error)
	GetRow(ctx context.Context, id int64) (*model.ICal4List, error)
	Categories(ctx context.Context) ([]string, error)
	Collections(ctx context.Context) ([]*model.Collection, error)
}

type ObjectsService interface {
	Create(ctx context.Context, o *model.ICalObject) (*model.ICalObject, error)
	Get(ctx context.Context, id int64) (*model.ICalObject, error)
	Update(ctx context.Context, id int64, o *model.ICalObject) (*model.ICalObject, error)
	Delete(ctx context.Context, id int64) (*relations.DeleteResult, error)
	AddSubItem(ctx context.Context, parentID int64, o *model.ICalObject) (*model.ICalObject, error)
	UpdateProgress(ctx context.Context, id int64, percent int) (*model.ICalObject, error)
}

type RecurrenceService interface {
	Reconcile(ctx context.Context, originID int64) (*recurrence.ReconcileResult, error)
	Detach(ctx context.Context, instanceID int64) (*model.ICalObject, error)
}

type RelationsService interface {
	Link(ctx context.Context, objectID, linkedID int64, reltype model.Reltype) error
	Unlink(ctx context.Context, objectID, linkedID int64, reltype model.Reltype) error
	Children(ctx context.Context, id int64) ([]*model.ICalObject, error)
	Parents(ctx context.Context, id int64) ([]*model.ICalObject, error)
}

func NewApi(
	logger *zap.SugaredLogger,
	location *time.Location,
	tokens TokenVerifier,
	list ListService,
	objects ObjectsService,
	recurrenceService RecurrenceService,
	relationsService RelationsService,
	locker recurrence.OriginLocker,
) *Api {
	a := &Api{
		logger:     logger,
		location:   location,
		tokens:     tokens,
		list:       list,
		objects:    objects,
		recurrence: recurrenceService,
		relations:  relationsService,
		locker:     locker,
	}
	a.setupHandler()

	return a
}

func (a *Api) setupHandler() {
	middleware.DefaultLogger = func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a.logger.Debugw(r.URL.RequestURI(),
				"addr", r.RemoteAddr,
				"protocol", r.Proto,
				"method", r.Method,
			)
			next.ServeHTTP(w, r)
		})
	}

	r := chi.NewMux()

	r.Use(middleware.Logger, middleware.Recoverer, middleware.StripSlashes)
	r.NotFound(a.notFoundResponse)
	r.MethodNotAllowed(a.methodNotAllowedResponse)

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Group(func(r chi.Router) {
		r.Use(a.auth)

		r.Get("/list/{module}", a.getListHandler)
		r.Get("/categories", a.getCategoriesHandler)
		r.Get("/collections", a.getCollectionsHandler)

		r.Post("/objects", a.createObjectHandler)
		r.With(a.objectID).Route("/objects/{id}", func(r chi.Router) {
			r.Get("/", a.getObjectHandler)
			r.Put("/", a.updateObjectHandler)
			r.Delete("/", a.deleteObjectHandler)
			r.Get("/row", a.getRowHandler)
			r.Put("/progress", a.updateProgressHandler)
			r.Post("/reconcile", a.reconcileHandler)
			r.Post("/detach", a.detachHandler)
			r.Post("/subitems", a.addSubItemHandler)
			r.Get("/children", a.getChildrenHandler)
			r.Get("/parents", a.getParentsHandler)
		})

		r.Post("/relations", a.linkHandler)
		r.Delete("/relations", a.unlinkHandler)
	})

	a.handler = r
}

func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}
