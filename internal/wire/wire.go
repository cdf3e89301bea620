// Package wire provides dependency injection for the qsrs application.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"sync"

	"github.com/example/qsrs/internal/adapters/sqlite"
	"github.com/example/qsrs/internal/app"
	"github.com/example/qsrs/internal/db"
	"github.com/example/qsrs/internal/ports/primary"
)

var (
	hafizService    primary.HafizService
	revisionService primary.RevisionService
	queueService    primary.QueueService
	profileService  primary.ProfileService
	scheduleService primary.ScheduleService
	statsService    primary.StatsService
	once            sync.Once
)

// HafizService returns the singleton HafizService instance.
func HafizService() primary.HafizService {
	once.Do(initServices)
	return hafizService
}

// RevisionService returns the singleton RevisionService instance.
func RevisionService() primary.RevisionService {
	once.Do(initServices)
	return revisionService
}

// QueueService returns the singleton QueueService instance.
func QueueService() primary.QueueService {
	once.Do(initServices)
	return queueService
}

// ProfileService returns the singleton ProfileService instance.
func ProfileService() primary.ProfileService {
	once.Do(initServices)
	return profileService
}

// ScheduleService returns the singleton ScheduleService instance.
func ScheduleService() primary.ScheduleService {
	once.Do(initServices)
	return scheduleService
}

// StatsService returns the singleton StatsService instance.
func StatsService() primary.StatsService {
	once.Do(initServices)
	return statsService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	if err := db.SeedCatalog(database); err != nil {
		log.Fatalf("failed to seed catalog: %v", err)
	}

	repos := sqlite.NewRepositories(database)
	uow := sqlite.NewUnitOfWork(database)

	hafizService = app.NewHafizService(repos, uow)
	revisionService = app.NewRevisionService(repos, uow)
	queueService = app.NewQueueService(repos)
	profileService = app.NewProfileService(repos)
	scheduleService = app.NewScheduleService(uow)
	statsService = app.NewStatsService(repos, uow)
}
