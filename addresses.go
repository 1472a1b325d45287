package main

import "fmt"
import "regexp"
import "strconv"


/* The port Elasticsearch listens on when the address spec doesn't say. */
const defaultPort = 9200


var hostPortRegex = regexp.MustCompile(`^([a-zA-Z_0-9.-]+):(\d+)$`)


/*
 * An Endpoint is one target cluster: a set of hosts sharing a single port,
 * produced from one comma-separated address spec on the command line.
 */
type Endpoint struct {
    Spec string
    Hosts []string
    Port int
}


/*
 * Parse an address spec of the form "host[:port][,host[:port]]...".
 *
 * Every host that names a port must name the same one; a mismatch is a
 * configuration error that aborts the whole process, not just this endpoint.
 * Hosts without a port get the Elasticsearch default.
 */
func ParseEndpoint(spec string) (*Endpoint, error) {
    e := Endpoint{ Spec: spec, Port: -1 }

    if spec == "" {
        return nil, fmt.Errorf("empty address spec")
    }

    start := 0
    for i := 0; i <= len(spec); i++ {
        if i < len(spec) && spec[i] != ',' {
            continue
        }

        host := spec[start:i]
        start = i + 1

        if host == "" {
            return nil, fmt.Errorf("empty host in address spec %q", spec)
        }

        m := hostPortRegex.FindStringSubmatch(host)
        if m == nil {
            e.Hosts = append(e.Hosts, host)
            continue
        }

        port, err := strconv.Atoi(m[2])
        if err != nil || port < 1 || port > 65535 {
            return nil, fmt.Errorf("bad port %q in address spec %q", m[2], spec)
        }

        if e.Port > 0 && port != e.Port {
            return nil, fmt.Errorf("ports in address spec %q don't match", spec)
        }

        e.Port = port
        e.Hosts = append(e.Hosts, m[1])
    }

    if e.Port < 0 {
        e.Port = defaultPort
    }

    return &e, nil
}


/* The URLs an Elasticsearch client should dial for this endpoint. */
func (e *Endpoint) URLs(useHttps bool) []string {
    scheme := "http"
    if useHttps {
        scheme = "https"
    }

    urls := make([]string, len(e.Hosts))
    for i, h := range e.Hosts {
        urls[i] = fmt.Sprintf("%v://%v:%v", scheme, h, e.Port)
    }

    return urls
}
