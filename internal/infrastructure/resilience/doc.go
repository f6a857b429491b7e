/*
Package resilience provides the circuit breaker used by the HTTP transport.

# Overview

A WebLogic admin server that is down or restarting makes every navigation
step block until the request timeout. When enabled, the breaker counts
transport-level failures and 5xx responses; after FailureThreshold of them in
a row it rejects calls immediately with ErrCircuitOpen until Cooldown has
passed. Nothing here retries.

# Usage

	breaker := resilience.New("wls", resilience.Settings{
		FailureThreshold: 5,
		Cooldown:         30 * time.Second,
	})

	result, err := breaker.Execute(func() (interface{}, error) {
		return doRoundTrip()
	})

# States

	Closed --[failures]-> Open --[cooldown]-> Half-Open --[probes ok]-> Closed
	                                              |
	                                          [failure]
	                                              v
	                                             Open
*/
package resilience
