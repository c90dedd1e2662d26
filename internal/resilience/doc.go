// Package resilience holds the fault tolerance pieces used when talking to
// the content API. Currently that is the circuit breaker in the
// circuitbreaker subpackage.
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.ContentAPIConfig())
//	body, err := circuitbreaker.Run(cb, func() ([]byte, error) {
//	    return fetch(ctx)
//	})
package resilience
