// Package async runs functions in goroutines and exposes their results as
// generic futures.
//
// Async starts a function and returns a *Future immediately. Await blocks for
// the result, AwaitWithTimeout bounds the wait and IsComplete polls. For
// fan-out, WaitAll stops at the first error while Settle waits for every
// future and keeps each outcome.
//
//	futures := make([]*async.Future[string], 0, len(keys))
//	for _, k := range keys {
//	    futures = append(futures, async.Async(ctx, k, upload))
//	}
//	results := async.Settle(futures...)
//	if err := async.Errors(results); err != nil {
//	    log.Printf("some uploads failed: %v", err)
//	}
//
// A context that is already cancelled when Async is called completes the
// future with the context error without calling the function.
package async
