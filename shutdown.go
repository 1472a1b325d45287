package main

import "sync"


/*
 * A ShutdownSignal is a process-wide stop flag shared by the workers, the
 * reporter and the orchestrator.
 *
 * It is write-once: Set may be called any number of times from any goroutine,
 * but once set the signal never resets.  Readers either poll it with IsSet at
 * their loop boundaries, or select on Done.
 */
type ShutdownSignal struct {
    once sync.Once
    done chan struct{}
}


func NewShutdownSignal() *ShutdownSignal {
    var s ShutdownSignal
    s.done = make(chan struct{})
    return &s
}


func (s *ShutdownSignal) Set() {
    s.once.Do(func() { close(s.done) })
}


func (s *ShutdownSignal) IsSet() bool {
    select {
        case <-s.done: return true
        default:       return false
    }
}


/* Returns a channel that is closed once the signal has been set. */
func (s *ShutdownSignal) Done() <-chan struct{} {
    return s.done
}
