package main

import "testing"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"


func TestParseEndpointBareHost(t *testing.T) {
    e, err := ParseEndpoint("es1.example.com")
    require.NoError(t, err)

    assert.Equal(t, []string{"es1.example.com"}, e.Hosts)
    assert.Equal(t, defaultPort, e.Port)
}


func TestParseEndpointHostWithPort(t *testing.T) {
    e, err := ParseEndpoint("es1:9300")
    require.NoError(t, err)

    assert.Equal(t, []string{"es1"}, e.Hosts)
    assert.Equal(t, 9300, e.Port)
}


func TestParseEndpointHostList(t *testing.T) {
    e, err := ParseEndpoint("es1:9300,es2:9300,es3")
    require.NoError(t, err)

    assert.Equal(t, []string{"es1", "es2", "es3"}, e.Hosts)
    assert.Equal(t, 9300, e.Port)
}


func TestParseEndpointMismatchedPorts(t *testing.T) {
    _, err := ParseEndpoint("es1:9200,es2:9300")
    assert.Error(t, err)
}


func TestParseEndpointMalformed(t *testing.T) {
    _, err := ParseEndpoint("")
    assert.Error(t, err)

    _, err = ParseEndpoint(",es1")
    assert.Error(t, err)

    _, err = ParseEndpoint("es1,")
    assert.Error(t, err)
}


func TestEndpointURLs(t *testing.T) {
    e, err := ParseEndpoint("es1,es2")
    require.NoError(t, err)

    assert.Equal(t, []string{"http://es1:9200", "http://es2:9200"}, e.URLs(false))
    assert.Equal(t, []string{"https://es1:9200", "https://es2:9200"}, e.URLs(true))
}
