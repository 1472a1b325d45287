package main

import "github.com/hashicorp/go-multierror"

import log "github.com/sirupsen/logrus"


/* Index names are random, so collisions are vanishingly unlikely. */
const indexNameLen = 16


/*
 * Create count randomly named indices on the store.
 *
 * Creation is best-effort: a failure is logged and the name is still
 * returned to the caller so that cleanup can have a go at it later, and the
 * remaining indices are still created.
 */
func createIndices(conn StoreConnection, count int, settings IndexSettings) []string {
    names := make([]string, 0, count)

    for i := 0; i < count; i++ {
        name := randomStringExact(indexNameLen)
        names = append(names, name)

        if err := conn.CreateIndex(name, settings); err != nil {
            log.Warnf("Could not create index %v on %v: %v", name, conn.Target(), err)
        }
    }

    return names
}


/*
 * Delete the given indices, best-effort.
 *
 * A failed delete doesn't stop us deleting the rest; all failures are logged
 * and collected into the returned error so the caller can see what was left
 * behind.
 */
func deleteIndices(conn StoreConnection, names []string) error {
    var errs *multierror.Error

    for _, name := range names {
        if err := conn.DeleteIndex(name); err != nil {
            log.Warnf("Could not delete index %v on %v: %v", name, conn.Target(), err)
            errs = multierror.Append(errs, err)
        }
    }

    return errs.ErrorOrNil()
}
