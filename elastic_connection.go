package main

import "bytes"
import "fmt"
import "io"
import "strings"
import "time"

import "github.com/elastic/go-elasticsearch/v7"
import "github.com/elastic/go-elasticsearch/v7/esapi"

import log "github.com/sirupsen/logrus"


type ElasticConnection struct {
    target string
    client *elasticsearch.Client
}


func NewElasticConnection(endpoint *Endpoint, conf *Config) (*ElasticConnection, error) {
    cfg := elasticsearch.Config {
        Addresses: endpoint.URLs(conf.UseHttps),
        Username: conf.Username,
        Password: conf.Password,
    }

    client, err := elasticsearch.NewClient(cfg)
    if err != nil {
        return nil, fmt.Errorf("failure creating elasticsearch client for %v: %v", endpoint.Spec, err)
    }

    log.Infof("Created elasticsearch connection to %v (port %v)", endpoint.Hosts, endpoint.Port)

    var conn ElasticConnection
    conn.target = endpoint.Spec
    conn.client = client
    return &conn, nil
}


func (conn *ElasticConnection) Target() string {
    return conn.target
}


func (conn *ElasticConnection) CreateIndex(name string, settings IndexSettings) error {
    body := fmt.Sprintf(`{"settings":{"number_of_shards":%v,"number_of_replicas":%v}}`, settings.Shards, settings.Replicas)

    res, err := conn.client.Indices.Create(name, conn.client.Indices.Create.WithBody(strings.NewReader(body)))
    if err != nil {
        return err
    }

    defer drainResponse(res)

    if res.IsError() {
        return fmt.Errorf("failure creating index %v: %v", name, res.Status())
    }

    return nil
}


func (conn *ElasticConnection) DeleteIndex(name string) error {
    res, err := conn.client.Indices.Delete(
        []string{name},
        conn.client.Indices.Delete.WithIgnoreUnavailable(true))

    if err != nil {
        return err
    }

    defer drainResponse(res)

    if res.IsError() {
        return fmt.Errorf("failure deleting index %v: %v", name, res.Status())
    }

    return nil
}


func (conn *ElasticConnection) WaitForHealthy(timeout time.Duration) error {
    res, err := conn.client.Cluster.Health(
        conn.client.Cluster.Health.WithWaitForStatus("green"),
        conn.client.Cluster.Health.WithMasterTimeout(timeout),
        conn.client.Cluster.Health.WithTimeout(timeout))

    if err != nil {
        return err
    }

    defer drainResponse(res)

    if res.IsError() {
        return fmt.Errorf("cluster %v did not reach green status: %v", conn.target, res.Status())
    }

    return nil
}


func (conn *ElasticConnection) BulkIndex(body []byte) error {
    res, err := conn.client.Bulk(bytes.NewReader(body))
    if err != nil {
        return err
    }

    defer drainResponse(res)

    /* Item-level errors inside a 2xx response are deliberately not unpacked:
       the batch is one success/failure unit, and only a failure of the bulk
       call itself counts against us. */
    if res.IsError() {
        return fmt.Errorf("bulk request to %v failed: %v", conn.target, res.Status())
    }

    return nil
}


func (conn *ElasticConnection) Close() {
    // The elasticsearch client is stateless as far as we're concerned, so
    // there is no Close necessary.
}


/* Consume the rest of a response body so the transport can reuse the connection. */
func drainResponse(res *esapi.Response) {
    if res.Body != nil {
        io.Copy(io.Discard, res.Body)
        res.Body.Close()
    }
}
