package statemachine

import (
	"context"
	"testing"

	"github.com/liftwerk/zeiterfassung-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestOrderFSM_FullLifecycle(t *testing.T) {
	order := &models.Order{Status: models.OrderStatusAssigned}
	fsm := NewOrderFSM(order)

	assert.NoError(t, fsm.Start(context.Background()))
	assert.Equal(t, models.OrderStatusInProgress, order.Status)

	assert.NoError(t, fsm.Complete(context.Background()))
	assert.Equal(t, models.OrderStatusCompleted, order.Status)
}

func TestOrderFSM_CompleteDirectlyFromAssigned(t *testing.T) {
	order := &models.Order{Status: models.OrderStatusAssigned}
	fsm := NewOrderFSM(order)

	assert.NoError(t, fsm.Complete(context.Background()))
	assert.Equal(t, models.OrderStatusCompleted, order.Status)
}

func TestOrderFSM_TerminalStatesRejectEverything(t *testing.T) {
	for _, terminal := range []string{models.OrderStatusCompleted, models.OrderStatusCancelled} {
		order := &models.Order{Status: terminal}
		fsm := NewOrderFSM(order)

		assert.Error(t, fsm.Start(context.Background()))
		assert.Error(t, fsm.Complete(context.Background()))
		assert.Error(t, fsm.Cancel(context.Background()))
		assert.Equal(t, terminal, order.Status)
	}
}

func TestOrderFSM_CancelInProgress(t *testing.T) {
	order := &models.Order{Status: models.OrderStatusInProgress}
	fsm := NewOrderFSM(order)

	assert.NoError(t, fsm.Cancel(context.Background()))
	assert.Equal(t, models.OrderStatusCancelled, order.Status)
}

func TestReviewFSM_ApproveOnlyFromPending(t *testing.T) {
	fsm := NewReviewFSM(models.ReviewStatusPending)
	assert.NoError(t, fsm.Approve(context.Background()))
	assert.Equal(t, models.ReviewStatusApproved, fsm.Current())

	// No second transition out of a reviewed state
	assert.Error(t, fsm.Reject(context.Background()))
	assert.Equal(t, models.ReviewStatusApproved, fsm.Current())
}

func TestReviewFSM_RejectFromPending(t *testing.T) {
	fsm := NewReviewFSM(models.ReviewStatusPending)
	assert.NoError(t, fsm.Reject(context.Background()))
	assert.Equal(t, models.ReviewStatusRejected, fsm.Current())
}
