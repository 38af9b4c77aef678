package commands_test

import (
	"context"
	"testing"
	"time"

	"freightmatch/internal/core/application/usecases/commands"
	"freightmatch/internal/core/domain/model/job"
	"freightmatch/internal/core/domain/model/jobpair"
	"freightmatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPairCreator struct{ mock.Mock }

func (m *MockPairCreator) Handle(
	ctx context.Context, command commands.CreateJobPairCommand,
) (*jobpair.JobPair, error) {
	args := m.Called(ctx, command)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jobpair.JobPair), args.Error(1)
}

func newReturnLegJob(t *testing.T) *job.Job {
	t.Helper()

	pickup, err := kernel.NewGeoPoint(36.10, -86.70) // near the outbound drop
	require.NoError(t, err)
	drop, err := kernel.NewGeoPoint(33.7490, -84.3880)
	require.NoError(t, err)

	earliest := time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC)
	j, err := job.NewJob(
		kernel.NewUUID(), "Return run", "Nashville, TN", "Atlanta, GA",
		pickup, drop, 600, "box_truck", earliest, earliest.Add(6*time.Hour),
	)
	require.NoError(t, err)
	return j
}

func newSweepUoW(repo *MockJobRepository) (*MockJobUoW, *MockJobUoWFactory) {
	uow := new(MockJobUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("JobRepository").Return(repo)

	factory := new(MockJobUoWFactory)
	factory.On("Create").Return(uow)
	return uow, factory
}

func TestBuildBackhaulsCommandHandler_Handle_PairsOutboundWithReturn(t *testing.T) {
	ctx := t.Context()
	outbound := newOpenJob(t)
	returnLeg := newReturnLegJob(t)

	repo := new(MockJobRepository)
	repo.On("GetAllOpenUnpaired", mock.Anything, mock.AnythingOfType("int")).
		Return([]*job.Job{outbound, returnLeg}, nil).Once()
	repo.On("GetOpenUnpairedInBox", mock.Anything, mock.Anything, outbound.LatestStart(), mock.AnythingOfType("int")).
		Return([]*job.Job{returnLeg}, nil).Once()

	_, factory := newSweepUoW(repo)

	pair, err := jobpair.NewJobPair(
		kernel.NewUUID(), outbound.ID(), returnLeg.ID(), 80, 10, 1450, time.Now(),
	)
	require.NoError(t, err)

	pairCreator := new(MockPairCreator)
	pairCreator.On("Handle", mock.Anything, mock.AnythingOfType("commands.CreateJobPairCommand")).
		Return(pair, nil).Once()

	cmd, err := commands.NewBuildBackhaulsCommand(0)
	require.NoError(t, err)

	h := commands.NewBuildBackhaulsCommandHandler(factory, pairCreator, testLogger())
	created, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, 1, created)

	// The return leg was consumed by the first pairing, so it is never
	// offered as an outbound: GetOpenUnpairedInBox runs exactly once.
	repo.AssertExpectations(t)
	pairCreator.AssertExpectations(t)
}

func TestBuildBackhaulsCommandHandler_Handle_PairingFailureAbortsOnlyThatPair(t *testing.T) {
	ctx := t.Context()
	outbound := newOpenJob(t)
	returnLeg := newReturnLegJob(t)

	repo := new(MockJobRepository)
	repo.On("GetAllOpenUnpaired", mock.Anything, mock.AnythingOfType("int")).
		Return([]*job.Job{outbound}, nil).Once()
	repo.On("GetOpenUnpairedInBox", mock.Anything, mock.Anything, outbound.LatestStart(), mock.AnythingOfType("int")).
		Return([]*job.Job{returnLeg}, nil).Once()

	_, factory := newSweepUoW(repo)

	pairCreator := new(MockPairCreator)
	pairCreator.On("Handle", mock.Anything, mock.AnythingOfType("commands.CreateJobPairCommand")).
		Return(nil, job.ErrJobAlreadyPaired).Once()

	cmd, _ := commands.NewBuildBackhaulsCommand(0)

	h := commands.NewBuildBackhaulsCommandHandler(factory, pairCreator, testLogger())
	created, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, 0, created)
}

func TestBuildBackhaulsCommandHandler_Handle_NoOpenJobs(t *testing.T) {
	ctx := t.Context()

	repo := new(MockJobRepository)
	repo.On("GetAllOpenUnpaired", mock.Anything, mock.AnythingOfType("int")).
		Return([]*job.Job{}, nil).Once()

	_, factory := newSweepUoW(repo)

	pairCreator := new(MockPairCreator)
	cmd, _ := commands.NewBuildBackhaulsCommand(0)

	h := commands.NewBuildBackhaulsCommandHandler(factory, pairCreator, testLogger())
	created, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, 0, created)
	pairCreator.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestBuildBackhaulsCommandHandler_Handle_NoViableCandidates(t *testing.T) {
	ctx := t.Context()
	outbound := newOpenJob(t)

	repo := new(MockJobRepository)
	repo.On("GetAllOpenUnpaired", mock.Anything, mock.AnythingOfType("int")).
		Return([]*job.Job{outbound}, nil).Once()
	repo.On("GetOpenUnpairedInBox", mock.Anything, mock.Anything, outbound.LatestStart(), mock.AnythingOfType("int")).
		Return([]*job.Job{}, nil).Once()

	_, factory := newSweepUoW(repo)

	pairCreator := new(MockPairCreator)
	cmd, _ := commands.NewBuildBackhaulsCommand(0)

	h := commands.NewBuildBackhaulsCommandHandler(factory, pairCreator, testLogger())
	created, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, 0, created)
}

func TestNewBuildBackhaulsCommand_RejectsNegativeRadius(t *testing.T) {
	_, err := commands.NewBuildBackhaulsCommand(-10)
	require.Error(t, err)
}

func TestNewBuildBackhaulsCommand_ZeroMeansDefault(t *testing.T) {
	cmd, err := commands.NewBuildBackhaulsCommand(0)
	require.NoError(t, err)
	require.InDelta(t, 160, cmd.RadiusKm(), 1e-9)
}
