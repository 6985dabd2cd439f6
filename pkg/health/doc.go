// Package health provides the liveness and readiness probes of the locmark
// preview service.
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(
//	    health.Checks{"redis": trees.Ping},
//	    health.WithInfo("cache", func() any { return memory.Stats() }),
//	))
//
// Checks run concurrently under one timeout. Probes answer plain text
// ("OK" or "Service Unavailable"); ?format=json or Accept: application/json
// returns the [Response] with per-check status and info snapshots.
package health
