// Package operations runs the retail report as a sequence of steps.
//
// Core Components:
//
// Manager: Runs the registered steps in registration order inside one
// operation span. The first failing Step stops the run and every Step after
// it is marked skipped. There are no retries.
//
// Step: A single unit of work. Steps read their inputs from the
// OperationState and write their results back to it.
//
// Registry: Holds the steps in registration order.
//
// State: Tracks the runtime state of the operation and of each Step,
// including timings, errors and per-step metadata such as row counts.
//
// Example usage:
//
//	opts := operations.StageOptionsFromConfig(cfg, paths, os.Stdout, logger)
//	registry, err := operations.NewRetailRegistry(opts)
//	tracer, err := operations.NewOperationTracer(providers)
//	manager := operations.NewManager(registry, tracer, logger)
//	resp, err := manager.Execute(ctx, operations.OperationRequest{})
package operations
