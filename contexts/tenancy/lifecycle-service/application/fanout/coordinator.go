package fanout

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"orbit/contexts/tenancy/lifecycle-service/domain/entities"
	"orbit/contexts/tenancy/lifecycle-service/ports"

	"github.com/hashicorp/go-multierror"
)

// Operation is applied to a single provisioner. The caller's
// AuthenticationContext is passed explicitly so workers never rely on
// ambient request state.
type Operation func(ctx context.Context, auth entities.AuthenticationContext, provisioner ports.ContextProvisioner) error

// Result is the outcome for one provisioner.
type Result struct {
	Provisioner string
	Err         error
}

// AggregateResult is the combined outcome of one fan-out run. Err collects
// every individual failure; it is nil when all provisioners succeeded.
type AggregateResult struct {
	Results []Result
	Err     error
}

// Failed reports whether any provisioner failed or the wait was interrupted.
func (a AggregateResult) Failed() bool {
	return a.Err != nil
}

// FailedProvisioners lists the names of provisioners whose operation failed.
func (a AggregateResult) FailedProvisioners() []string {
	var names []string
	for _, result := range a.Results {
		if result.Err != nil {
			names = append(names, result.Provisioner)
		}
	}
	return names
}

// Coordinator runs one operation across all registered provisioners
// concurrently, one worker per provisioner. It makes no ordering promise
// between provisioners and enforces no timeout; failure policy (rollback,
// best-effort) is layered on top by the caller.
type Coordinator struct {
	Logger *slog.Logger
}

// Run schedules op against every provisioner and waits for all of them.
// A failure does not cancel in-flight siblings; the full error picture is
// collected before returning. If ctx is cancelled while waiting, Run stops
// waiting and marks the aggregate failed; workers already started run to
// completion in the background.
func (c Coordinator) Run(ctx context.Context, auth entities.AuthenticationContext, provisioners []ports.ContextProvisioner, op Operation) AggregateResult {
	logger := c.logger()

	// Buffered so abandoned workers can still deliver without leaking.
	results := make(chan Result, len(provisioners))

	var wg sync.WaitGroup
	for _, provisioner := range provisioners {
		wg.Add(1)
		go func(p ports.ContextProvisioner) {
			defer wg.Done()
			results <- Result{Provisioner: p.Name(), Err: op(ctx, auth, p)}
		}(provisioner)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var aggregate AggregateResult
	var combined *multierror.Error
	for pending := len(provisioners); pending > 0; pending-- {
		select {
		case <-ctx.Done():
			logger.Warn("fan-out interrupted while waiting for provisioners",
				"event", "tenancy_fanout_interrupted",
				"module", "tenancy/lifecycle-service",
				"layer", "application",
				"outstanding", pending,
			)
			combined = multierror.Append(combined, ctx.Err())
			aggregate.Err = combined.ErrorOrNil()
			return aggregate
		case result := <-results:
			aggregate.Results = append(aggregate.Results, result)
			if result.Err != nil {
				logger.Error("provisioner operation failed",
					"event", "tenancy_fanout_provisioner_failed",
					"module", "tenancy/lifecycle-service",
					"layer", "application",
					"provisioner", result.Provisioner,
					"error", result.Err.Error(),
				)
				combined = multierror.Append(combined, fmt.Errorf("%s: %w", result.Provisioner, result.Err))
			}
		}
	}

	aggregate.Err = combined.ErrorOrNil()
	return aggregate
}

func (c Coordinator) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}
