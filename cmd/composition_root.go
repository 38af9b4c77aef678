package cmd

import (
	"log/slog"

	"freightmatch/internal/adapters/out/postgres"
	"freightmatch/internal/adapters/out/postgres/carrierrepo"
	"freightmatch/internal/core/application/usecases/commands"
	"freightmatch/internal/core/application/usecases/queries"
	"freightmatch/internal/core/ports"
	"freightmatch/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, notifier ports.Notifier, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:   notifier,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateJobCommandHandler() commands.CreateJobCommandHandler {
	var f commands.JobUoWFactory = FuncJobUoWFactory(func() commands.JobUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateJobCommandHandler(f)
}

func (c *CompositionRoot) CreateRequestJobCommandHandler() commands.RequestJobCommandHandler {
	var f commands.JobUoWFactory = FuncJobUoWFactory(func() commands.JobUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRequestJobCommandHandler(f, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateUpdateJobStatusCommandHandler() commands.UpdateJobStatusCommandHandler {
	var f commands.JobUoWFactory = FuncJobUoWFactory(func() commands.JobUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateJobStatusCommandHandler(f, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateCreateJobPairCommandHandler() commands.CreateJobPairCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateJobPairCommandHandler(f)
}

func (c *CompositionRoot) CreateBuildBackhaulsCommandHandler() commands.BuildBackhaulsCommandHandler {
	var f commands.JobUoWFactory = FuncJobUoWFactory(func() commands.JobUoW {
		return c.uowFactory.Create()
	})
	pairCreator := c.CreateCreateJobPairCommandHandler()
	return commands.NewBuildBackhaulsCommandHandler(f, pairCreator, c.logger)
}

func (c *CompositionRoot) CreateGetPersonalizedMatchesQueryHandler() queries.GetPersonalizedMatchesQueryHandler {
	return queries.NewGetPersonalizedMatchesQueryHandler(c.jobRepository(), c.profileProvider())
}

func (c *CompositionRoot) CreateGetJobRecommendationsQueryHandler() queries.GetJobRecommendationsQueryHandler {
	return queries.NewGetJobRecommendationsQueryHandler(c.jobRepository(), c.profileProvider())
}

func (c *CompositionRoot) CreateGetBackhaulCandidatesQueryHandler() queries.GetBackhaulCandidatesQueryHandler {
	return queries.NewGetBackhaulCandidatesQueryHandler(c.jobRepository(), c.profileProvider())
}

func (c *CompositionRoot) CreateFindBackhaulQueryHandler() queries.FindBackhaulQueryHandler {
	return queries.NewFindBackhaulQueryHandler(c.jobRepository())
}

func (c *CompositionRoot) CreateGetPairedJobsQueryHandler() queries.GetPairedJobsQueryHandler {
	return queries.NewGetPairedJobsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager(sweepSchedule string) *jobs.JobManager {
	return jobs.NewJobManager(c.CreateBuildBackhaulsCommandHandler(), sweepSchedule, c.logger)
}

// jobRepository returns a non-transactional repository for read paths.
func (c *CompositionRoot) jobRepository() ports.JobRepository {
	return c.uowFactory.Create().JobRepository()
}

func (c *CompositionRoot) profileProvider() ports.CarrierProfileProvider {
	return carrierrepo.NewGormCarrierProfileProvider(c.gormDB)
}

type FuncJobUoWFactory func() commands.JobUoW

func (f FuncJobUoWFactory) Create() commands.JobUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
