// Package jobs contains the scheduled background jobs of the service.
//
// The overdue order sweep runs on a fixed schedule, finds active orders past
// their due date, logs them, and keeps the overdue gauge current for
// alerting.
package jobs
