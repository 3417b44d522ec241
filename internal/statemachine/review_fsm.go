package statemachine

import (
	"context"
	"fmt"

	"github.com/liftwerk/zeiterfassung-api/internal/models"
	"github.com/looplab/fsm"
)

// ReviewFSM drives the pending → approved | rejected workflow shared by
// daily reports, vacation requests and sick leaves. Approved and
// rejected are terminal, there is no reopen.
type ReviewFSM struct {
	status string
	fsm    *fsm.FSM
}

// NewReviewFSM creates a review state machine starting at the given status
func NewReviewFSM(status string) *ReviewFSM {
	r := &ReviewFSM{
		status: status,
	}

	r.fsm = fsm.NewFSM(
		status,
		fsm.Events{
			{Name: "approve", Src: []string{models.ReviewStatusPending}, Dst: models.ReviewStatusApproved},
			{Name: "reject", Src: []string{models.ReviewStatusPending}, Dst: models.ReviewStatusRejected},
		},
		fsm.Callbacks{},
	)

	return r
}

// Approve transitions to approved
func (r *ReviewFSM) Approve(ctx context.Context) error {
	if err := r.fsm.Event(ctx, "approve"); err != nil {
		return fmt.Errorf("cannot approve in current state %s: %w", r.status, err)
	}
	r.status = r.fsm.Current()
	return nil
}

// Reject transitions to rejected
func (r *ReviewFSM) Reject(ctx context.Context) error {
	if err := r.fsm.Event(ctx, "reject"); err != nil {
		return fmt.Errorf("cannot reject in current state %s: %w", r.status, err)
	}
	r.status = r.fsm.Current()
	return nil
}

// Current returns the current state
func (r *ReviewFSM) Current() string {
	return r.fsm.Current()
}

// Can checks if a transition is possible
func (r *ReviewFSM) Can(event string) bool {
	return r.fsm.Can(event)
}
