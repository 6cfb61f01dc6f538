package workflows

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
)

// ReplenishTaskQueue is the Temporal task queue for stock replenishment.
const ReplenishTaskQueue = "sweetshop-replenish"

const restockActivityName = "RestockSweet"

// ReplenishInput carries the parameters of one replenishment run.
type ReplenishInput struct {
	SweetID  uuid.UUID `json:"sweet_id"`
	Quantity int       `json:"quantity"`
}

// RestockFunc adds stock to a sweet. The worker wires this to the sweet
// application service so the activity goes through the same code path as the
// restock endpoint.
type RestockFunc func(ctx context.Context, sweetID uuid.UUID, quantity int) error

// ReplenishActivities holds the activity implementations for the
// replenishment workflow.
type ReplenishActivities struct {
	restock RestockFunc
}

// NewReplenishActivities returns activities backed by the given restock function.
func NewReplenishActivities(restock RestockFunc) *ReplenishActivities {
	return &ReplenishActivities{restock: restock}
}

// RestockSweet is the activity body. Retried by Temporal on failure, so it
// must stay idempotent at the business level; restocking is additive, which
// is why the workflow keeps MaximumAttempts low.
func (a *ReplenishActivities) RestockSweet(ctx context.Context, in ReplenishInput) error {
	return a.restock(ctx, in.SweetID, in.Quantity)
}

// ReplenishWorkflow restocks a sweet through a single retryable activity.
// Started when stock hits zero; the workflow ID is derived from the sweet ID
// so concurrent depletion events collapse into one run.
func ReplenishWorkflow(ctx workflow.Context, in ReplenishInput) error {
	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	logger := workflow.GetLogger(ctx)
	logger.Info("replenishing sweet", "sweet_id", in.SweetID, "quantity", in.Quantity)

	return workflow.ExecuteActivity(ctx, restockActivityName, in).Get(ctx, nil)
}

// NewReplenishWorker builds a Temporal worker for the replenishment task
// queue. The caller is responsible for Start/Stop.
func NewReplenishWorker(tc *TemporalClient, restock RestockFunc) worker.Worker {
	w := worker.New(tc.Client, ReplenishTaskQueue, worker.Options{})
	w.RegisterWorkflow(ReplenishWorkflow)
	w.RegisterActivity(NewReplenishActivities(restock).RestockSweet)
	return w
}

// StartReplenishment kicks off a replenishment workflow for the given sweet.
// Uses a deterministic workflow ID so duplicate triggers for the same sweet
// are rejected by Temporal while a run is in flight.
func (tc *TemporalClient) StartReplenishment(ctx context.Context, in ReplenishInput) error {
	opts := client.StartWorkflowOptions{
		ID:        fmt.Sprintf("replenish-%s", in.SweetID),
		TaskQueue: ReplenishTaskQueue,
	}
	if _, err := tc.Client.ExecuteWorkflow(ctx, opts, ReplenishWorkflow, in); err != nil {
		return fmt.Errorf("start replenishment workflow: %w", err)
	}
	return nil
}
