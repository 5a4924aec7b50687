// Package errors is the error system for the wasteland-api project.
//
// Every error that crosses a layer boundary carries one of a small set
// of codes. The chat handler turns recoverable codes into corrective
// reply text for the user; internal errors are logged and surfaced as
// a generic failure.
//
// # Basic Usage
//
// Creating errors:
//
//	err := errors.NotFound("character not found")
//	err := errors.InvalidArgumentf("invalid attribute score: %d", score)
//
// Adding metadata:
//
//	err := errors.NotFound("character not found").
//	    WithMeta("guild_id", guildID).
//	    WithMeta("user_id", userID)
//
// Wrapping errors:
//
//	if err := repo.Get(id); err != nil {
//	    return errors.Wrap(err, "failed to get character")
//	}
//
// Changing error semantics:
//
//	if err := advance(session, text); err != nil {
//	    return errors.WrapWithCode(err, errors.CodeInternal, "creation flow aborted")
//	}
//
// # Error Checking
//
// Type checking:
//
//	if errors.IsNotFound(err) {
//	    // Handle not found case
//	}
//	if errors.IsRecoverable(err) {
//	    // Tell the user what to fix
//	}
//
// Extracting information:
//
//	code := errors.GetCode(err)
//	message := errors.GetMessage(err)
//	meta := errors.GetMeta(err)
//
// # Validation Errors
//
// Using the validation builder:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("name", input.Name, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # Layer-Specific Guidelines
//
// Repository layer:
//   - Return domain-specific errors (NotFound, AlreadyExists)
//   - Include relevant IDs in metadata
//   - Wrap storage errors with context
//
// Orchestrator layer:
//   - Validate inputs and return InvalidArgument errors
//   - Check preconditions and return FailedPrecondition errors
//   - Return ResourceExhausted when a spend outruns a pool
//   - Wrap repository errors with business context
//
// Handler layer:
//   - Convert recoverable errors into corrective reply text
//   - Log internal errors for debugging
//
// # Error Codes
//
// The following error codes are available:
//   - InvalidArgument: Invalid input provided
//   - NotFound: Resource not found
//   - AlreadyExists: Resource already exists
//   - ResourceExhausted: A point pool cannot cover the spend
//   - FailedPrecondition: Operation requirements not met
//   - Internal: Server fault
package errors
