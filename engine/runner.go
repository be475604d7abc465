package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/scorebench/scorebench/internal/contract"
	"github.com/scorebench/scorebench/schema"
)

// CancelledDetails is recorded when run cancellation interrupts a check
// before or during execution.
const CancelledDetails = "run cancelled"

// TimeoutDetails renders the detail string for a check that exceeded its
// wall-clock budget.
func TimeoutDetails(timeout time.Duration) string {
	return fmt.Sprintf("check timed out after %gs", timeout.Seconds())
}

// RunChecks executes every registered check and returns one result per
// component, indexed by declaration order. Execution follows the
// prerequisite graph; cfg.Workers above 1 dispatches independent checks
// concurrently. Check failures never propagate as errors: they surface as
// ERROR results so one bad check cannot lose the rest of the run.
func RunChecks(ctx context.Context, cfg *contract.Config, reg *Registry, env contract.CheckEnv) ([]schema.CheckResult, error) {
	order, err := reg.executionOrder()
	if err != nil {
		return nil, err
	}

	// One preassigned slot per component. Each slot has exactly one writer,
	// so the slice needs no locking.
	results := make([]schema.CheckResult, reg.Len())

	if cfg.Workers > 1 && reg.Len() > 1 {
		runPooled(ctx, cfg, reg, env, results)
	} else {
		runSequential(ctx, cfg, reg, env, order, results)
	}
	return results, nil
}

// runSequential walks the resolved order one check at a time. This is the
// default scheduling model.
func runSequential(ctx context.Context, cfg *contract.Config, reg *Registry, env contract.CheckEnv, order []int, results []schema.CheckResult) {
	for _, i := range order {
		results[i] = executeComponent(ctx, cfg, reg.components[i], env, reg, results)
	}
}

// runPooled dispatches checks across a bounded worker pool. A component is
// handed to the pool only after every prerequisite has a recorded result,
// so workers read prerequisite slots strictly after their writers finish.
func runPooled(ctx context.Context, cfg *contract.Config, reg *Registry, env contract.CheckEnv, results []schema.CheckResult) {
	n := reg.Len()
	pending := make([]int, n)
	dependents := make([][]int, n)
	for i, c := range reg.components {
		pending[i] = len(c.Requires)
		for _, req := range c.Requires {
			j := reg.index[req]
			dependents[j] = append(dependents[j], i)
		}
	}

	readyCh := make(chan int, n)
	doneCh := make(chan int, n)
	var wg sync.WaitGroup

	// Start worker pool
	for range min(cfg.Workers, n) {
		wg.Go(func() {
			for i := range readyCh {
				results[i] = executeComponent(ctx, cfg, reg.components[i], env, reg, results)
				doneCh <- i
			}
		})
	}

	// Seed components with no prerequisites
	for i := range pending {
		if pending[i] == 0 {
			readyCh <- i
		}
	}

	// Release dependents as their prerequisites complete. The registry is a
	// validated DAG, so every component eventually becomes ready.
	for completed := 0; completed < n; completed++ {
		i := <-doneCh
		for _, dep := range dependents[i] {
			pending[dep]--
			if pending[dep] == 0 {
				readyCh <- dep
			}
		}
	}
	close(readyCh)
	wg.Wait()
}

type checkReturn struct {
	outcome schema.CheckOutcome
	err     error
}

// executeComponent runs one check inside the fault boundary: skip policy
// first, then the check itself under its timeout, with panics, errors,
// timeouts and cancellation all converted into results instead of failures.
func executeComponent(ctx context.Context, cfg *contract.Config, comp Component, env contract.CheckEnv, reg *Registry, results []schema.CheckResult) schema.CheckResult {
	if ctx.Err() != nil {
		return schema.CheckResult{Name: comp.Name, Status: schema.StatusError, Details: CancelledDetails}
	}

	if detail, skip := skipReason(comp, reg, results); skip {
		result := schema.CheckResult{Name: comp.Name, Status: schema.StatusSkipped, Details: detail}
		logCheckDone(ctx, cfg, result)
		return result
	}

	timeout := comp.Timeout
	if timeout <= 0 {
		timeout = cfg.CheckTimeout
	}
	checkCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	retCh := make(chan checkReturn, 1)
	go func() {
		outcome, err := runShielded(checkCtx, comp.Check, env)
		retCh <- checkReturn{outcome: outcome, err: err}
	}()

	var result schema.CheckResult
	select {
	case ret := <-retCh:
		result = classifyReturn(ctx, checkCtx, comp, timeout, ret)
	case <-checkCtx.Done():
		// The check ignored its context; do not wait for it. Subprocesses
		// spawned through the command runner are killed by the context.
		result = classifyReturn(ctx, checkCtx, comp, timeout, checkReturn{err: checkCtx.Err()})
	}
	result.Elapsed = time.Since(start)
	logCheckDone(ctx, cfg, result)
	return result
}

// runShielded invokes the check and converts panics into errors so one
// faulty check cannot abort the whole run.
func runShielded(ctx context.Context, check contract.Check, env contract.CheckEnv) (outcome schema.CheckOutcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("check panic: %v", r)
		}
	}()
	return check.Run(ctx, env)
}

// classifyReturn converts a finished check invocation into a result.
// Cancellation of the whole run wins over a per-check timeout; both win
// over the check's own error text.
func classifyReturn(ctx, checkCtx context.Context, comp Component, timeout time.Duration, ret checkReturn) schema.CheckResult {
	if ret.err != nil {
		switch {
		case ctx.Err() != nil:
			return schema.CheckResult{Name: comp.Name, Status: schema.StatusError, Details: CancelledDetails}
		case errors.Is(checkCtx.Err(), context.DeadlineExceeded) || errors.Is(ret.err, context.DeadlineExceeded):
			return schema.CheckResult{Name: comp.Name, Status: schema.StatusError, Details: TimeoutDetails(timeout)}
		default:
			return schema.CheckResult{Name: comp.Name, Status: schema.StatusError, Details: schema.SanitizeDetails(ret.err.Error())}
		}
	}

	return schema.CheckResult{
		Name:      comp.Name,
		Status:    schema.StatusOK,
		RawScore:  schema.ClampPercent(ret.outcome.Percent),
		Passed:    ret.outcome.Passed,
		Total:     ret.outcome.Total,
		HasCounts: ret.outcome.HasCounts,
		Details:   schema.SanitizeDetails(ret.outcome.Details),
	}
}

// skipReason evaluates the prerequisite policy for a component against the
// results recorded so far.
func skipReason(comp Component, reg *Registry, results []schema.CheckResult) (string, bool) {
	for _, req := range comp.Requires {
		i, ok := reg.index[req]
		if !ok {
			continue // Validate rejects unknown prerequisites before any run
		}
		prereq := results[i]
		if prereq.Status != schema.StatusOK {
			return fmt.Sprintf("skipped due to failed prerequisite %q", req), true
		}
		if comp.RequireMin > 0 && prereq.EffectiveRaw() < float64(comp.RequireMin) {
			return fmt.Sprintf("skipped because prerequisite %q scored below %d", req, comp.RequireMin), true
		}
	}
	return "", false
}
