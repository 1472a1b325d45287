package main

import "fmt"
import "sync/atomic"
import "time"


/*
 * RunStats is the only mutable state shared between the workers, the reporter
 * and the orchestrator.
 *
 * The three counters are independent: incrementing one category never
 * contends with another, and every counter is monotonically non-decreasing
 * for the life of the run.  Workers record an outcome only after the bulk
 * call for that batch has returned.
 */
type RunStats struct {
    successBulks atomic.Uint64
    failedBulks atomic.Uint64
    totalBytes atomic.Uint64
    start time.Time
}


/* A consistent-enough read of the counters for reporting purposes.
 *
 * Each value is a valid prefix of the increments made to it; brief skew
 * between the three is acceptable. */
type Snapshot struct {
    SuccessBulks uint64
    FailedBulks uint64
    TotalBytes uint64
    Elapsed time.Duration
}


/* The derived, user-facing numbers for a snapshot. */
type Summary struct {
    Elapsed time.Duration
    SuccessBulks uint64
    SuccessDocs uint64
    FailedBulks uint64
    FailedDocs uint64
    Megabytes float64
    MBPerSec float64
}


func NewRunStats(start time.Time) *RunStats {
    var s RunStats
    s.start = start
    return &s
}


func (s *RunStats) RecordSuccess(batchBytes uint64) {
    s.successBulks.Add(1)
    s.totalBytes.Add(batchBytes)
}


func (s *RunStats) RecordFailure() {
    s.failedBulks.Add(1)
}


func (s *RunStats) Snapshot() Snapshot {
    return Snapshot {
        SuccessBulks: s.successBulks.Load(),
        FailedBulks: s.failedBulks.Load(),
        TotalBytes: s.totalBytes.Load(),
        Elapsed: time.Since(s.start),
    }
}


/*
 * Summarize is pure computation: it turns a snapshot into the derived
 * figures we print.  A zero elapsed time yields a zero rate rather than a
 * division fault.
 */
func (snap Snapshot) Summarize(bulkSize int) Summary {
    megabytes := float64(snap.TotalBytes) / 1024 / 1024

    mbps := 0.0
    if secs := snap.Elapsed.Seconds(); secs > 0 {
        mbps = megabytes / secs
    }

    return Summary {
        Elapsed: snap.Elapsed,
        SuccessBulks: snap.SuccessBulks,
        SuccessDocs: snap.SuccessBulks * uint64(bulkSize),
        FailedBulks: snap.FailedBulks,
        FailedDocs: snap.FailedBulks * uint64(bulkSize),
        Megabytes: megabytes,
        MBPerSec: mbps,
    }
}


func (s Summary) Print() {
    fmt.Printf("Elapsed time: %v seconds\n", uint64(s.Elapsed.Seconds()))
    fmt.Printf("Successful bulks: %v (%v documents)\n", s.SuccessBulks, s.SuccessDocs)
    fmt.Printf("Failed bulks: %v (%v documents)\n", s.FailedBulks, s.FailedDocs)
    fmt.Printf("Indexed approximately %.0f MB which is %.2f MB/s\n", s.Megabytes, s.MBPerSec)
    fmt.Printf("\n")
}
