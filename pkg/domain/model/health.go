package model

import "time"

// HealthStatus is the response body of the health check endpoint.
type HealthStatus struct {
	Status  string    `json:"status"`
	Service string    `json:"service"`
	Version string    `json:"version"`
	Time    time.Time `json:"time"`
}
