package main

import "fmt"
import "time"


/* Per-index creation settings passed through to the store. */
type IndexSettings struct {
    Shards int
    Replicas int
}


/*
 * StoreConnection is the abstraction of the data store we are loading.
 *
 * Currently we only have an Elasticsearch connection, but anything that can
 * create and delete named indices and accept bulk writes would do.
 */
type StoreConnection interface {
    /* Return the target of this connection, as a convenience. */
    Target() string

    CreateIndex(name string, settings IndexSettings) error

    /* Deleting an index that doesn't exist is not an error. */
    DeleteIndex(name string) error

    /* Block until the store reports healthy, or the timeout elapses. */
    WaitForHealthy(timeout time.Duration) error

    /* Submit one pre-encoded batch.  The batch is a single success/failure
       unit, however the transport slices it. */
    BulkIndex(body []byte) error

    /* Close the connection. */
    Close()
}


/*
 * Factory function that mints new connections of the appropriate type.
 */
func NewStoreConnection(connectionType string, endpoint *Endpoint, conf *Config) (StoreConnection, error) {
    switch connectionType {
        case "elastic": return NewElasticConnection(endpoint, conf)
    }

    return nil, fmt.Errorf("unknown connectionType: %v", connectionType)
}
