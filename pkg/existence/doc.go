// Package existence provides the asynchronous "name already taken" check.
//
// StaticChecker is configured with the set of known names and a simulated
// latency; nothing is held in package state. Rule adapts any Checker into a
// validator.AsyncRule producing validator.KindUserExists.
package existence
