package commands_test

import (
	"context"
	"errors"
	"testing"

	"freightmatch/internal/core/application/usecases/commands"
	"freightmatch/internal/core/domain/model/job"
	"freightmatch/internal/core/domain/model/jobpair"
	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockJobPairRepository struct{ mock.Mock }

func (m *MockJobPairRepository) Add(ctx context.Context, pair *jobpair.JobPair) error {
	args := m.Called(ctx, pair)
	return args.Error(0)
}

func (m *MockJobPairRepository) Get(ctx context.Context, id kernel.UUID) (*jobpair.JobPair, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jobpair.JobPair), args.Error(1)
}

func (m *MockJobPairRepository) GetAll(ctx context.Context, limit int) ([]*jobpair.JobPair, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*jobpair.JobPair), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) JobRepository() ports.JobRepository {
	args := m.Called()
	return args.Get(0).(ports.JobRepository)
}

func (m *MockUoW) JobPairRepository() ports.JobPairRepository {
	args := m.Called()
	return args.Get(0).(ports.JobPairRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

func TestCreateJobPairCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	outbound := newOpenJob(t)
	returnLeg := newOpenJob(t)
	cmd, err := commands.NewCreateJobPairCommand(outbound.ID(), returnLeg.ID())
	require.NoError(t, err)

	jobRepo := new(MockJobRepository)
	pairRepo := new(MockJobPairRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("JobRepository").Return(jobRepo).Once(),
		jobRepo.On("Get", mock.Anything, outbound.ID()).Return(outbound, nil).Once(),
		jobRepo.On("Get", mock.Anything, returnLeg.ID()).Return(returnLeg, nil).Once(),
		jobRepo.On("UpdateIfStatus", mock.Anything, outbound, job.Open, (*kernel.UUID)(nil)).
			Return(nil).Once(),
		jobRepo.On("UpdateIfStatus", mock.Anything, returnLeg, job.Open, (*kernel.UUID)(nil)).
			Return(nil).Once(),
		uow.On("JobPairRepository").Return(pairRepo).Once(),
		pairRepo.On("Add", mock.Anything, mock.AnythingOfType("*jobpair.JobPair")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateJobPairCommandHandler(factory)
	pair, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, pair)

	require.True(t, pair.OutboundID().IsEqual(outbound.ID()))
	require.True(t, pair.ReturnID().IsEqual(returnLeg.ID()))
	require.InDelta(t, outbound.PayAmount()+returnLeg.PayAmount(), pair.TotalPay(), 1e-9)
	require.NotNil(t, outbound.PairedJobID())
	require.True(t, outbound.PairedJobID().IsEqual(returnLeg.ID()))
	require.True(t, returnLeg.PairedJobID().IsEqual(outbound.ID()))
	jobRepo.AssertExpectations(t)
	pairRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateJobPairCommandHandler_Handle_ReturnLegNoLongerOpen(t *testing.T) {
	ctx := t.Context()
	outbound := newOpenJob(t)
	returnLeg := newRequestedJob(t, kernel.NewUUID())
	cmd, _ := commands.NewCreateJobPairCommand(outbound.ID(), returnLeg.ID())

	jobRepo := new(MockJobRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("JobRepository").Return(jobRepo).Once(),
		jobRepo.On("Get", mock.Anything, outbound.ID()).Return(outbound, nil).Once(),
		jobRepo.On("Get", mock.Anything, returnLeg.ID()).Return(returnLeg, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateJobPairCommandHandler(factory)
	pair, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, job.ErrInvalidJobState)
	require.Nil(t, pair)
	require.Nil(t, outbound.PairedJobID())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateJobPairCommandHandler_Handle_AlreadyPaired(t *testing.T) {
	ctx := t.Context()
	outbound := newOpenJob(t)
	require.NoError(t, outbound.PairWith(kernel.NewUUID()))
	returnLeg := newOpenJob(t)
	cmd, _ := commands.NewCreateJobPairCommand(outbound.ID(), returnLeg.ID())

	jobRepo := new(MockJobRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("JobRepository").Return(jobRepo).Once(),
		jobRepo.On("Get", mock.Anything, outbound.ID()).Return(outbound, nil).Once(),
		jobRepo.On("Get", mock.Anything, returnLeg.ID()).Return(returnLeg, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateJobPairCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, job.ErrJobAlreadyPaired)
}

func TestCreateJobPairCommandHandler_Handle_LedgerInsertFailureRollsBack(t *testing.T) {
	ctx := t.Context()
	outbound := newOpenJob(t)
	returnLeg := newOpenJob(t)
	cmd, _ := commands.NewCreateJobPairCommand(outbound.ID(), returnLeg.ID())

	jobRepo := new(MockJobRepository)
	pairRepo := new(MockJobPairRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("JobRepository").Return(jobRepo).Once(),
		jobRepo.On("Get", mock.Anything, outbound.ID()).Return(outbound, nil).Once(),
		jobRepo.On("Get", mock.Anything, returnLeg.ID()).Return(returnLeg, nil).Once(),
		jobRepo.On("UpdateIfStatus", mock.Anything, outbound, job.Open, (*kernel.UUID)(nil)).
			Return(nil).Once(),
		jobRepo.On("UpdateIfStatus", mock.Anything, returnLeg, job.Open, (*kernel.UUID)(nil)).
			Return(nil).Once(),
		uow.On("JobPairRepository").Return(pairRepo).Once(),
		pairRepo.On("Add", mock.Anything, mock.AnythingOfType("*jobpair.JobPair")).
			Return(errors.New("insert failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateJobPairCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestNewCreateJobPairCommand_RejectsSelfPair(t *testing.T) {
	id := kernel.NewUUID()
	_, err := commands.NewCreateJobPairCommand(id, id)
	require.Error(t, err)
}
