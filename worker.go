package main

import "bytes"
import "math/rand"
import "sync"
import "time"

import log "github.com/sirupsen/logrus"


/* The arguments used to construct a worker, bundled into a struct purely for readability. */
type WorkerSpec struct {
    Id int
    Conn StoreConnection
    Indices []string
    Pool *DocumentPool
    BulkSize int
    Stats *RunStats
    Shutdown *ShutdownSignal
    Deadline time.Time
}


/*
 * A Worker does the actual load generation: it assembles bulk bodies from
 * the shared pool and submits them until told to stop.
 *
 * The stop conditions (shutdown signal, deadline) are checked at the top of
 * every iteration, never mid-batch, so an in-flight bulk always completes or
 * fails before the worker re-evaluates them.  Batches are at-most-once: a
 * failed bulk is counted and abandoned, never retried.
 */
type Worker struct {
    spec WorkerSpec
}


func NewWorker(spec *WorkerSpec) *Worker {
    var w Worker
    w.spec = *spec
    return &w
}


func (w *Worker) Run(wg *sync.WaitGroup) {
    defer wg.Done()

    log.Debugf("[worker %v] starting against %v", w.spec.Id, w.spec.Conn.Target())

    for !w.spec.Shutdown.IsSet() && time.Now().Before(w.spec.Deadline) {
        body := w.assembleBatch()

        err := w.spec.Conn.BulkIndex(body)
        if err != nil {
            log.Debugf("[worker %v] bulk failure: %v", w.spec.Id, err)
            w.spec.Stats.RecordFailure()
            continue
        }

        w.spec.Stats.RecordSuccess(uint64(len(body)))
    }

    log.Debugf("[worker %v] shutting down", w.spec.Id)
}


/*
 * Assemble one bulk body: BulkSize action/document line pairs, drawing the
 * index and the document uniformly at random (with replacement) from the
 * shared, read-only index list and document pool.
 *
 * Index names are lowercase ASCII, so they can be spliced into the action
 * line without escaping.
 */
func (w *Worker) assembleBatch() []byte {
    var buf bytes.Buffer

    for i := 0; i < w.spec.BulkSize; i++ {
        index := w.spec.Indices[rand.Intn(len(w.spec.Indices))]

        buf.WriteString(`{"index":{"_index":"`)
        buf.WriteString(index)
        buf.WriteString("\"}}\n")

        buf.Write(w.spec.Pool.PickEncoded())
        buf.WriteByte('\n')
    }

    return buf.Bytes()
}
