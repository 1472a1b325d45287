package main

import "sync"
import "testing"
import "time"


/*
 * A StoreConnection that records everything it's asked to do.  Hooks let a
 * test inject failures per call; all bookkeeping is behind a mutex because
 * workers hit the mock concurrently.
 */
type mockConnection struct {
    mu sync.Mutex
    target string
    created []string
    deleted []string
    bulkCalls int
    bulkBodies [][]byte // only the first few are kept
    closed bool

    createErr func(name string) error
    deleteErr func(name string) error
    healthErr error
    bulkErr func(call int) error
}


func newMockConnection(target string) *mockConnection {
    return &mockConnection{ target: target }
}


func (m *mockConnection) Target() string {
    return m.target
}


func (m *mockConnection) CreateIndex(name string, settings IndexSettings) error {
    m.mu.Lock()
    defer m.mu.Unlock()

    m.created = append(m.created, name)

    if m.createErr != nil {
        return m.createErr(name)
    }

    return nil
}


func (m *mockConnection) DeleteIndex(name string) error {
    m.mu.Lock()
    defer m.mu.Unlock()

    m.deleted = append(m.deleted, name)

    if m.deleteErr != nil {
        return m.deleteErr(name)
    }

    return nil
}


func (m *mockConnection) WaitForHealthy(timeout time.Duration) error {
    return m.healthErr
}


func (m *mockConnection) BulkIndex(body []byte) error {
    m.mu.Lock()

    m.bulkCalls++
    call := m.bulkCalls
    if len(m.bulkBodies) < 64 {
        m.bulkBodies = append(m.bulkBodies, body)
    }
    hook := m.bulkErr

    m.mu.Unlock()

    if hook != nil {
        return hook(call)
    }

    return nil
}


func (m *mockConnection) Close() {
    m.mu.Lock()
    defer m.mu.Unlock()
    m.closed = true
}


func (m *mockConnection) bulkCount() int {
    m.mu.Lock()
    defer m.mu.Unlock()
    return m.bulkCalls
}


func (m *mockConnection) createdNames() []string {
    m.mu.Lock()
    defer m.mu.Unlock()
    return append([]string(nil), m.created...)
}


func (m *mockConnection) deletedNames() []string {
    m.mu.Lock()
    defer m.mu.Unlock()
    return append([]string(nil), m.deleted...)
}


/* Wait on a WaitGroup, failing the test rather than hanging forever. */
func waitWithTimeout(t *testing.T, wg *sync.WaitGroup) {
    t.Helper()

    done := make(chan struct{})
    go func() {
        wg.Wait()
        close(done)
    }()

    select {
        case <-done:
        case <-time.After(10 * time.Second):
            t.Fatal("timed out waiting for goroutines to finish")
    }
}
