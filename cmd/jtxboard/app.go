package main

import (
	"context"
	"fmt"
	"time"

	"github.com/SergeyKozhin/jtx-board/internal/business/icalobjects"
	"github.com/SergeyKozhin/jtx-board/internal/business/list"
	"github.com/SergeyKozhin/jtx-board/internal/business/recurrence"
	"github.com/SergeyKozhin/jtx-board/internal/business/relations"
	"github.com/SergeyKozhin/jtx-board/internal/config"
	"github.com/SergeyKozhin/jtx-board/internal/database"
	"github.com/SergeyKozhin/jtx-board/internal/database/category"
	"github.com/SergeyKozhin/jtx-board/internal/database/collection"
	"github.com/SergeyKozhin/jtx-board/internal/database/ical4list"
	"github.com/SergeyKozhin/jtx-board/internal/database/icalobject"
	"github.com/SergeyKozhin/jtx-board/internal/database/relatedto"
	"github.com/SergeyKozhin/jtx-board/internal/redis"
	"github.com/SergeyKozhin/jtx-board/internal/sweeper"
	"github.com/xlab/closer"
	"go.uber.org/zap"
)

// app is the wired service graph shared by the commands.
type app struct {
	logger     *zap.SugaredLogger
	db         database.DB
	locker     recurrence.OriginLocker
	origins    *icalobject.Repository
	list       *list.Service
	objects    *icalobjects.Service
	recurrence *recurrence.Service
	relations  *relations.Service
}

func openDB(ctx context.Context) (database.DB, error) {
	var db database.DB
	var err error

	switch config.DBDriver() {
	case "postgres":
		db, err = database.NewPGX(ctx, config.DatabaseURL())
	default:
		db, err = database.NewSQLite(ctx, config.DatabaseURL())
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", config.DBDriver(), err)
	}

	closer.Bind(db.Close)

	if err := database.Migrate(ctx, db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

func newApp(ctx context.Context, logger *zap.SugaredLogger) (*app, error) {
	db, err := openDB(ctx)
	if err != nil {
		return nil, err
	}

	var locker recurrence.OriginLocker
	if url := config.RedisURL(); url != "" {
		locker = redis.NewOriginLocker(redis.NewRedisPool(url, logger), logger, config.LockTTL())
		logger.Infow("Using redis origin locks")
	} else {
		locker = recurrence.NewLocalLocker()
	}

	loc := config.Location()

	objectsRepository := icalobject.NewRepository()
	categoriesRepository := category.NewRepository()
	collectionsRepository := collection.NewRepository()
	relationsRepository := relatedto.NewRepository()

	recurrenceService := recurrence.NewService(db, logger, objectsRepository, categoriesRepository,
		relationsRepository, loc, config.MaxRecurInstances())
	relationsService := relations.NewService(db, logger, objectsRepository, relationsRepository)

	return &app{
		logger:     logger,
		db:         db,
		locker:     locker,
		origins:    objectsRepository,
		recurrence: recurrenceService,
		relations:  relationsService,
		list: list.NewService(db, ical4list.NewRepository(), categoriesRepository, collectionsRepository,
			ical4list.SystemClock{Location: loc}),
		objects: icalobjects.NewService(db, logger, objectsRepository, categoriesRepository, collectionsRepository,
			recurrenceService, relationsService, locker, loc),
	}, nil
}

func (a *app) sweeper(interval time.Duration) *sweeper.Sweeper {
	return sweeper.New(a.db, a.logger, a.origins, a.recurrence, a.locker, interval)
}
