// Package resilience provides a token bucket rate limiter. The admin API
// uses it to cap how often broadcasts can be triggered, since each one
// fans out to every connected client.
package resilience
