package statemachine

import (
	"context"
	"fmt"

	"github.com/liftwerk/zeiterfassung-api/internal/models"
	"github.com/looplab/fsm"
)

// OrderFSM wraps an order with its state machine. Transitions are
// one-directional: completed and cancelled orders stay terminal.
type OrderFSM struct {
	order *models.Order
	fsm   *fsm.FSM
}

// NewOrderFSM creates a new order state machine
func NewOrderFSM(order *models.Order) *OrderFSM {
	o := &OrderFSM{
		order: order,
	}

	o.fsm = fsm.NewFSM(
		order.Status,
		fsm.Events{
			// assigned → in_progress
			{Name: "start", Src: []string{models.OrderStatusAssigned}, Dst: models.OrderStatusInProgress},

			// assigned/in_progress → completed
			{Name: "complete", Src: []string{models.OrderStatusAssigned, models.OrderStatusInProgress}, Dst: models.OrderStatusCompleted},

			// assigned/in_progress → cancelled
			{Name: "cancel", Src: []string{models.OrderStatusAssigned, models.OrderStatusInProgress}, Dst: models.OrderStatusCancelled},
		},
		fsm.Callbacks{},
	)

	return o
}

// Start transitions the order to in_progress
func (o *OrderFSM) Start(ctx context.Context) error {
	if !o.order.MayStart() {
		return fmt.Errorf("order cannot be started in current state: %s", o.order.Status)
	}

	if err := o.fsm.Event(ctx, "start"); err != nil {
		return fmt.Errorf("failed to start order: %w", err)
	}

	o.order.Status = o.fsm.Current()
	return nil
}

// Complete transitions the order to completed
func (o *OrderFSM) Complete(ctx context.Context) error {
	if !o.order.MayComplete() {
		return fmt.Errorf("order cannot be completed in current state: %s", o.order.Status)
	}

	if err := o.fsm.Event(ctx, "complete"); err != nil {
		return fmt.Errorf("failed to complete order: %w", err)
	}

	o.order.Status = o.fsm.Current()
	return nil
}

// Cancel transitions the order to cancelled
func (o *OrderFSM) Cancel(ctx context.Context) error {
	if !o.order.MayCancel() {
		return fmt.Errorf("order cannot be cancelled in current state: %s", o.order.Status)
	}

	if err := o.fsm.Event(ctx, "cancel"); err != nil {
		return fmt.Errorf("failed to cancel order: %w", err)
	}

	o.order.Status = o.fsm.Current()
	return nil
}

// Current returns the current state
func (o *OrderFSM) Current() string {
	return o.fsm.Current()
}

// Can checks if a transition is possible
func (o *OrderFSM) Can(event string) bool {
	return o.fsm.Can(event)
}
