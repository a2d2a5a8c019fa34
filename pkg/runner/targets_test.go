package runner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandTargets(t *testing.T) {
	hosts, err := ExpandTargets([]string{" 127.0.0.1 ", "", "example.com", "::ffff:c0a8:101"})
	require.NoError(t, err)
	assert.Equal(t, []string{"127.0.0.1", "example.com", "::ffff:c0a8:101"}, hosts)

	hosts, err = ExpandTargets([]string{"127.0.0.1/30"})
	require.NoError(t, err, "ipv4 cidr incorrectly parsed")
	assert.Contains(t, hosts, "127.0.0.1")
	assert.Contains(t, hosts, "127.0.0.2")
	assert.LessOrEqual(t, len(hosts), 4)

	_, err = ExpandTargets([]string{"10.0.0.0/8"})
	assert.Error(t, err)
}

func TestLoadTargets(t *testing.T) {
	file := filepath.Join(t.TempDir(), "hosts.txt")
	require.NoError(t, os.WriteFile(file, []byte("10.0.0.1\n\n10.0.0.2\n"), 0o600))

	options := &Options{Host: []string{"127.0.0.1"}, HostsFile: file}
	hosts, err := options.loadTargets()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"127.0.0.1", "10.0.0.1", "10.0.0.2"}, hosts)

	_, err = (&Options{}).loadTargets()
	assert.Error(t, err)
}

func TestReadTargets(t *testing.T) {
	targets, err := readTargets(strings.NewReader("a\nb\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, targets)
}
