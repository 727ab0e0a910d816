// Package jobs provides scheduled background tasks built on github.com/robfig/cron/v3.
//
// # Available Jobs
//
//  1. OverdueOrdersJob - every minute, logs the open orders past their expected delivery time
//  2. WeeklySettlementJob - Mondays 03:00 UTC, settles the previous week for every active store
//
// # Usage
//
//	jobManager := jobs.NewJobManager(overdueHandler, listStoresHandler, &settlementHandler, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// Both jobs expose Run for a single synchronous pass. Schedules are six-field
// cron expressions (with seconds) evaluated in UTC.
package jobs
