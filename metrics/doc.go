// Package metrics exports search session events as Prometheus metrics.
//
//	sub := metrics.NewSubscriber(prometheus.DefaultRegisterer)
//	registry := events.NewRegistry().Subscribe(sub)
//	exec := executor.New(step, cfg).WithEvents(registry)
//
// All metrics live under the "backtrack" namespace. Label values are
// limited to known dead-end reasons and termination reasons so cardinality
// stays bounded.
package metrics
