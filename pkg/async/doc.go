// Package async runs work off the caller's goroutine and keeps only the
// newest result per key.
//
// Future represents the eventual result of a function started with Async.
// Callers wait with Await or AwaitWithTimeout, poll with IsComplete, or
// register a continuation with Then.
//
// Latest implements last-write-wins supersession. Each call to Begin for a
// key cancels the context of the previous work for that key and hands out
// a new Ticket; only the holder of the current ticket may apply a result:
//
//	ticket, ctx := latest.Begin(parent, "name")
//	fut := async.Async(ctx, value, check)
//	async.Then(fut, func(exists bool, err error) {
//	    if !latest.Finish(ticket) {
//	        return // superseded, drop the stale result
//	    }
//	    // apply result
//	})
//
// Cancellation is cooperative: a superseded function keeps running until it
// observes ctx.Done(). Its result is discarded either way.
package async
