package main

import "errors"
import "fmt"
import "os"
import "os/signal"
import "sync"
import "syscall"
import "time"

import log "github.com/sirupsen/logrus"


/* The set of states a run moves through. */
type runState int
const (
    RS_Initializing runState = iota
    RS_Provisioning
    RS_AwaitingHealth
    RS_Running
    RS_Draining
    RS_Cleanup
    RS_Done
)


func runStateToStr(state runState) string {
    switch state {
        case RS_Initializing:   return "Initializing"
        case RS_Provisioning:   return "Provisioning"
        case RS_AwaitingHealth: return "AwaitingHealth"
        case RS_Running:        return "Running"
        case RS_Draining:       return "Draining"
        case RS_Cleanup:        return "Cleanup"
        case RS_Done:           return "Done"
        default:                return "Unknown RunState"
    }
}


/* How long we give a cluster to reach green status before writing it off. */
const healthWaitTimeout = 600 * time.Second


/* Returned by Execute when the run was stopped by an interrupt but drained
   and cleaned up normally. */
var errInterrupted = errors.New("run interrupted")


/* One target endpoint, with everything we have provisioned on it. */
type runTarget struct {
    endpoint *Endpoint
    conn StoreConnection
    indices []string

    /* Set when health-wait timed out: this target gets no workers. */
    skipped bool
}


/*
 * A Run wires everything together: it provisions indices on each target,
 * starts the workers and the reporter, waits for the deadline or an
 * interrupt, drains, cleans up and prints the final summary.
 */
type Run struct {
    conf *Config
    state runState
    pool *DocumentPool
    stats *RunStats
    shutdown *ShutdownSignal
    targets []*runTarget
    interrupted bool

    /* The quiescent counters, captured once the workers have joined so that
       cleanup time can't leak into the elapsed denominator. */
    finalSnap Snapshot

    /* Factory for target connections.  Overridable in tests. */
    connect func(endpoint *Endpoint, conf *Config) (StoreConnection, error)

    /* Where interrupt signals arrive.  Left nil outside of tests, in which
       case runWorkers registers a real signal handler. */
    signals chan os.Signal
}


func NewRun(conf *Config) *Run {
    var r Run
    r.conf = conf
    r.state = RS_Initializing
    r.shutdown = NewShutdownSignal()
    r.connect = func(endpoint *Endpoint, conf *Config) (StoreConnection, error) {
        return NewStoreConnection("elastic", endpoint, conf)
    }
    return &r
}


func (r *Run) setState(state runState) {
    log.Debugf("run state: %v -> %v", runStateToStr(r.state), runStateToStr(state))
    r.state = state
}


/*
 * Execute the whole run.  Returns errInterrupted if the run was cut short by
 * a signal (but still drained, cleaned up and reported), or another error if
 * it could not start at all.
 */
func (r *Run) Execute() error {
    if err := r.initialize(); err != nil {
        return err
    }

    r.provision()
    r.awaitHealth()
    r.runWorkers()
    r.cleanup()
    r.finish()

    if r.interrupted {
        return errInterrupted
    }

    return nil
}


/*
 * Parse the endpoint specs, build the shared document pool and connect to
 * every target.  Any failure here is a configuration error: nothing has been
 * provisioned yet, and we abort the whole process rather than limp on with a
 * subset of the targets the user asked for.
 */
func (r *Run) initialize() error {
    for _, spec := range r.conf.Addresses {
        endpoint, err := ParseEndpoint(spec)
        if err != nil {
            return err
        }

        conn, err := r.connect(endpoint, r.conf)
        if err != nil {
            return err
        }

        r.targets = append(r.targets, &runTarget{ endpoint: endpoint, conn: conn })
    }

    gen, err := NewDocumentGenerator(r.conf.MaxFields, r.conf.MaxFieldSize)
    if err != nil {
        return err
    }

    log.Infof("Generating %v documents", r.conf.Documents)

    r.pool, err = gen.BuildPool(r.conf.Documents)
    if err != nil {
        return err
    }

    return nil
}


func (r *Run) provision() {
    r.setState(RS_Provisioning)

    settings := IndexSettings{ Shards: r.conf.Shards, Replicas: r.conf.Replicas }

    for _, t := range r.targets {
        log.Infof("Creating %v indices on %v", r.conf.Indices, t.conn.Target())
        t.indices = createIndices(t.conn, r.conf.Indices, settings)
    }
}


/*
 * Wait for each target cluster to report green, unless we've been told not
 * to bother.  A cluster that doesn't make it in time is dropped from the run
 * and its indices are cleaned up immediately; the other targets are
 * unaffected.
 */
func (r *Run) awaitHealth() {
    r.setState(RS_AwaitingHealth)

    if r.conf.NotGreen {
        return
    }

    for _, t := range r.targets {
        log.Infof("Waiting for %v to reach green status", t.conn.Target())

        if err := t.conn.WaitForHealthy(healthWaitTimeout); err != nil {
            log.Errorf("Giving up on %v: %v", t.conn.Target(), err)

            if err := deleteIndices(t.conn, t.indices); err != nil {
                log.Warnf("Cleanup on %v was incomplete: %v", t.conn.Target(), err)
            }

            t.indices = nil
            t.skipped = true
        }
    }
}


func (r *Run) runnableTargets() []*runTarget {
    var runnable []*runTarget

    for _, t := range r.targets {
        if !t.skipped {
            runnable = append(runnable, t)
        }
    }

    return runnable
}


/*
 * The Running and Draining states.
 *
 * Every runnable target gets its own set of workers, all sharing the
 * document pool, the stats and the shutdown signal.  We then wait for either
 * all workers to finish (deadline expiry) or an interrupt.  On interrupt we
 * set the shutdown signal and block on the same WaitGroup the deadline path
 * uses; the signal handler is deregistered first, so a second interrupt
 * falls through to the default disposition and kills the process.
 */
func (r *Run) runWorkers() {
    runnable := r.runnableTargets()
    if len(runnable) == 0 {
        log.Warnf("No targets survived health checking; nothing to run")
        return
    }

    r.setState(RS_Running)

    start := time.Now()
    deadline := start.Add(time.Duration(r.conf.Seconds) * time.Second)
    r.stats = NewRunStats(start)

    sigChannel := r.signals
    if sigChannel == nil {
        sigChannel = make(chan os.Signal, 1)
        signal.Notify(sigChannel, os.Interrupt, syscall.SIGTERM)
        defer signal.Stop(sigChannel)
    }

    var workers sync.WaitGroup
    id := 0

    for _, t := range runnable {
        for i := 0; i < r.conf.Clients; i++ {
            w := NewWorker(&WorkerSpec {
                Id: id,
                Conn: t.conn,
                Indices: t.indices,
                Pool: r.pool,
                BulkSize: r.conf.BulkSize,
                Stats: r.stats,
                Shutdown: r.shutdown,
                Deadline: deadline,
            })

            workers.Add(1)
            go w.Run(&workers)
            id++
        }
    }

    var reporter sync.WaitGroup
    reporter.Add(1)
    go runReporter(r.stats, time.Duration(r.conf.StatsFrequency) * time.Second, deadline, r.conf.BulkSize, r.shutdown, &reporter)

    fmt.Printf("Starting the test with %v workers. Will print stats every %v seconds.\n", id, r.conf.StatsFrequency)
    fmt.Printf("The test will run for %v seconds, but it might take a bit more because we wait for in-flight bulks to complete.\n\n", r.conf.Seconds)

    workersDone := make(chan struct{})
    go func() {
        workers.Wait()
        close(workersDone)
    }()

    select {
        case <-workersDone:

        case <-sigChannel:
            r.interrupted = true
            fmt.Printf("\nInterrupt received! Draining workers...\n")
            r.shutdown.Set()
            signal.Stop(sigChannel)
            <-workersDone
    }

    r.setState(RS_Draining)

    // The workers have joined; stop the reporter too.
    r.shutdown.Set()
    reporter.Wait()

    r.finalSnap = r.stats.Snapshot()
}


/*
 * Delete everything we created, unless cleanup is suppressed.  Cleanup is
 * best-effort and idempotent: failures are logged and collected rather than
 * aborting, and a second pass over an already-cleaned target is a no-op.
 */
func (r *Run) cleanup() {
    r.setState(RS_Cleanup)

    for _, t := range r.targets {
        if r.conf.NoCleanup && len(t.indices) > 0 {
            log.Infof("Leaving %v indices behind on %v", len(t.indices), t.conn.Target())
        } else if !r.conf.NoCleanup && len(t.indices) > 0 {
            log.Infof("Cleaning up %v indices on %v", len(t.indices), t.conn.Target())

            if err := deleteIndices(t.conn, t.indices); err != nil {
                log.Warnf("Cleanup on %v was incomplete: %v", t.conn.Target(), err)
            }

            t.indices = nil
        }

        t.conn.Close()
    }
}


func (r *Run) finish() {
    r.setState(RS_Done)

    fmt.Printf("\nTest is done! Final results:\n")

    r.finalSnap.Summarize(r.conf.BulkSize).Print()
}
