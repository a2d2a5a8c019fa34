package runner

import (
	"bytes"
	"strings"
	"testing"

	"github.com/projectdiscovery/portprobe/pkg/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var sampleResult = result.ScanResult{
	"127.0.0.1": {
		"8080": {Status: "open"},
		"22":   {Status: "open", Service: "ssh"},
		"81":   {Status: "error", Detail: "network is unreachable"},
	},
	"10.0.0.1": {},
}

func TestWriteHostOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHostOutput(sampleResult, &buf, true))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"127.0.0.1:22 open ssh",
		"127.0.0.1:81 error (network is unreachable)",
		"127.0.0.1:8080 open",
	}, lines)
}

func TestWriteJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONOutput(sampleResult, &buf))

	assert.JSONEq(t, `{
		"127.0.0.1": {
			"8080": {"status": "open"},
			"22": {"status": "open", "service": "ssh"},
			"81": {"status": "error", "detail": "network is unreachable"}
		},
		"10.0.0.1": {}
	}`, buf.String())
	assert.NotContains(t, buf.String(), `"service":""`)
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestWriteYAMLOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAMLOutput(sampleResult, &buf))

	var decoded result.ScanResult
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "ssh", decoded["127.0.0.1"]["22"].Service)
	assert.Contains(t, decoded, "10.0.0.1")
}
