package job_test

import (
	"testing"

	"freightmatch/internal/core/domain/model/job"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	t.Run("parses_all_valid_tokens", func(t *testing.T) {
		cases := map[string]job.Status{
			"open":      job.Open,
			"requested": job.Requested,
			"assigned":  job.Assigned,
			"picked_up": job.PickedUp,
			"delivered": job.Delivered,
			"paid":      job.Paid,
		}

		for token, want := range cases {
			got, err := job.ParseStatus(token)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("rejects_unknown_tokens", func(t *testing.T) {
		for _, token := range []string{"", "unknown", "OPEN", "completed", "cancelled"} {
			_, err := job.ParseStatus(token)
			require.Error(t, err, "token %q should not parse", token)
		}
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("valid_statuses", func(t *testing.T) {
		for _, s := range []job.Status{job.Open, job.Requested, job.Assigned, job.PickedUp, job.Delivered, job.Paid} {
			require.NoError(t, s.Validate())
		}
	})

	t.Run("invalid_statuses", func(t *testing.T) {
		require.Error(t, job.Unknown.Validate())
		require.Error(t, job.Status(42).Validate())
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "open", job.Open.String())
	assert.Equal(t, "picked_up", job.PickedUp.String())
	assert.Equal(t, "paid", job.Paid.String())
	assert.Equal(t, "unknown", job.Unknown.String())
	assert.Equal(t, "unknown", job.Status(42).String())
}

func TestStatus_CanTransitionTo(t *testing.T) {
	t.Run("forward_chain_is_allowed", func(t *testing.T) {
		chain := []job.Status{job.Open, job.Requested, job.Assigned, job.PickedUp, job.Delivered, job.Paid}
		for i := 0; i < len(chain)-1; i++ {
			assert.True(t, chain[i].CanTransitionTo(chain[i+1]),
				"%s -> %s should be allowed", chain[i], chain[i+1])
		}
	})

	t.Run("skipping_states_is_forbidden", func(t *testing.T) {
		assert.False(t, job.Open.CanTransitionTo(job.Assigned))
		assert.False(t, job.Requested.CanTransitionTo(job.PickedUp))
		assert.False(t, job.Assigned.CanTransitionTo(job.Paid))
	})

	t.Run("backward_transitions_are_forbidden", func(t *testing.T) {
		assert.False(t, job.Assigned.CanTransitionTo(job.Requested))
		assert.False(t, job.Delivered.CanTransitionTo(job.PickedUp))
		assert.False(t, job.Paid.CanTransitionTo(job.Open))
	})

	t.Run("paid_is_terminal", func(t *testing.T) {
		assert.True(t, job.Paid.IsTerminal())
		for _, target := range []job.Status{job.Open, job.Requested, job.Assigned, job.PickedUp, job.Delivered, job.Paid} {
			assert.False(t, job.Paid.CanTransitionTo(target))
		}
	})
}

func TestStatus_Transitions(t *testing.T) {
	t.Run("request_from_open", func(t *testing.T) {
		next, err := job.Open.Request()
		require.NoError(t, err)
		assert.Equal(t, job.Requested, next)
	})

	t.Run("request_from_non_open_fails_with_invalid_job_state", func(t *testing.T) {
		for _, s := range []job.Status{job.Requested, job.Assigned, job.PickedUp, job.Delivered, job.Paid} {
			_, err := s.Request()
			require.ErrorIs(t, err, job.ErrInvalidJobState)
		}
	})

	t.Run("assign_from_requested", func(t *testing.T) {
		next, err := job.Requested.Assign()
		require.NoError(t, err)
		assert.Equal(t, job.Assigned, next)
	})

	t.Run("pickup_from_assigned", func(t *testing.T) {
		next, err := job.Assigned.PickUp()
		require.NoError(t, err)
		assert.Equal(t, job.PickedUp, next)
	})

	t.Run("deliver_from_picked_up", func(t *testing.T) {
		next, err := job.PickedUp.Deliver()
		require.NoError(t, err)
		assert.Equal(t, job.Delivered, next)
	})

	t.Run("pay_from_delivered", func(t *testing.T) {
		next, err := job.Delivered.Pay()
		require.NoError(t, err)
		assert.Equal(t, job.Paid, next)
	})

	t.Run("illegal_transitions_fail_with_invalid_state_transition", func(t *testing.T) {
		var err error

		_, err = job.Open.Assign()
		require.ErrorIs(t, err, job.ErrInvalidStateTransition)

		_, err = job.Requested.PickUp()
		require.ErrorIs(t, err, job.ErrInvalidStateTransition)

		_, err = job.Assigned.Deliver()
		require.ErrorIs(t, err, job.ErrInvalidStateTransition)

		_, err = job.PickedUp.Pay()
		require.ErrorIs(t, err, job.ErrInvalidStateTransition)

		_, err = job.Paid.Pay()
		require.ErrorIs(t, err, job.ErrInvalidStateTransition)
	})
}
