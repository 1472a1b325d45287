package main

import "sync"
import "testing"
import "time"


func TestReporterStopsOnShutdown(t *testing.T) {
    stats := NewRunStats(time.Now())
    shutdown := NewShutdownSignal()

    var wg sync.WaitGroup
    wg.Add(1)
    go runReporter(stats, time.Hour, time.Now().Add(time.Hour), 10, shutdown, &wg)

    shutdown.Set()
    waitWithTimeout(t, &wg)
}


/* A tick that lands after the deadline prints nothing and ends the loop. */
func TestReporterStopsPastDeadline(t *testing.T) {
    stats := NewRunStats(time.Now())

    var wg sync.WaitGroup
    wg.Add(1)
    go runReporter(stats, 10 * time.Millisecond, time.Now(), 10, NewShutdownSignal(), &wg)

    waitWithTimeout(t, &wg)
}
