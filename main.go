package main

import "fmt"
import "os"

import "github.com/docopt/docopt-go"

import log "github.com/sirupsen/logrus"


/*
 * All the knobs a run needs, bound straight from the command line.
 * Set once in main and read-only after that.
 */
type Config struct {
    Addresses []string
    Indices int
    Documents int
    Clients int
    Seconds int
    UseHttps bool
    Username string
    Password string
    Shards int
    Replicas int
    BulkSize int
    MaxFields int
    MaxFieldSize int
    NoCleanup bool
    NotGreen bool
    StatsFrequency int
    Verbose bool
}


/* Return a usage string for DocOpt argument parsing. */
func usage() string {
    return `Elasticsearch Stress Test Tool.

Writes randomly generated documents to one or more clusters through a pool of
concurrent workers for a bounded amount of time, then reports throughput and
cleans up after itself.

Usage:
  elasticsearch-stress-test [options] (-i COUNT) (-d COUNT) (-c COUNT) (-s TIME) <addresses> ...

Each address is a comma-separated list of hosts (with an optional shared
port) forming one cluster, e.g. "es1:9200,es2:9200".

Options:
  -i COUNT, --indices COUNT       The number of indices to write to on each cluster.
  -d COUNT, --documents COUNT     The number of documents to pre-generate for the shared pool.
  -c COUNT, --clients COUNT       The number of concurrent clients writing to each cluster.
  -s TIME, --seconds TIME         The number of seconds to run for.
  --use-https                     Connect over https instead of http.
  --username USER                 The user to connect to the cluster as, if required.
  --password PASS                 The password to connect with, if required.
  --shards COUNT                  The number of shards per index.  [default: 3]
  --replicas COUNT                The number of replicas per index.  [default: 1]
  --bulk-size COUNT               The number of documents per bulk request.  [default: 1000]
  --max-fields COUNT              The maximum number of fields per document.  [default: 100]
  --max-field-size SIZE           The maximum content size per field, in bytes.  [default: 1000]
  --no-cleanup                    Don't delete the created indices when the run finishes.
  --not-green                     Don't wait for clusters to reach green status before starting.
  --stats-frequency TIME          The number of seconds between stats reports.  [default: 30]
  --verbose                       Enable debug logging.
`
}


func dieOnError(err error, format string, a ...interface{}) {
    if err != nil {
        fmt.Fprintf(os.Stderr, format, a...)
        fmt.Fprintf(os.Stderr, ": %v\n", err)
        os.Exit(1)
    }
}


func validateConfig(conf *Config) error {
    atLeastOne := map[string]int {
        "indices": conf.Indices,
        "documents": conf.Documents,
        "clients": conf.Clients,
        "seconds": conf.Seconds,
        "shards": conf.Shards,
        "bulk-size": conf.BulkSize,
        "max-fields": conf.MaxFields,
        "max-field-size": conf.MaxFieldSize,
        "stats-frequency": conf.StatsFrequency,
    }

    for name, val := range atLeastOne {
        if val < 1 {
            return fmt.Errorf("--%v must be at least 1, not %v", name, val)
        }
    }

    if conf.Replicas < 0 {
        return fmt.Errorf("--replicas must not be negative")
    }

    return nil
}


func main() {
    defer func() {
        if r := recover(); r != nil {
            fmt.Fprintf(os.Stderr, "Got an unexpected fault, probably a bug, please report it: %v\n", r)
            os.Exit(1)
        }
    }()

    // Error should never happen outside of development, since docopt is
    // complaining that our usage string has bad syntax.
    opts, err := docopt.ParseDoc(usage())
    dieOnError(err, "Error parsing arguments")

    // Error should never happen outside of development, since docopt is
    // complaining that our type bindings are wrong.
    var conf Config
    err = opts.Bind(&conf)
    dieOnError(err, "Failure binding config")

    // This can error on bad user input.
    err = validateConfig(&conf)
    dieOnError(err, "Failure validating arguments")

    if conf.Verbose {
        log.SetLevel(log.DebugLevel)
    }

    run := NewRun(&conf)

    err = run.Execute()
    if err == errInterrupted {
        os.Exit(130)
    }

    dieOnError(err, "Failure running test")
}
