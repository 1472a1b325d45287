package main

import "sync"
import "time"


/*
 * The reporter wakes on every tick and prints a summary of the run so far.
 *
 * It observes the shutdown signal and the deadline the same way the workers
 * do.  A tick that lands after the deadline prints nothing: the final
 * summary is the orchestrator's job, and a duplicate racing it would just
 * confuse the output.
 */
func runReporter(stats *RunStats, interval time.Duration, deadline time.Time, bulkSize int, shutdown *ShutdownSignal, wg *sync.WaitGroup) {
    defer wg.Done()

    ticker := time.NewTicker(interval)
    defer ticker.Stop()

    for {
        select {
            case <-shutdown.Done():
                return

            case <-ticker.C:
                if !time.Now().Before(deadline) {
                    return
                }

                stats.Snapshot().Summarize(bulkSize).Print()
        }
    }
}
