package runner

import (
	"os"
	"strings"
	"testing"

	fileutil "github.com/projectdiscovery/utils/file"
	"github.com/stretchr/testify/require"
	"github.com/yl2chen/cidranger"
)

func TestParseExcludedHosts(t *testing.T) {
	tmpFileName, err := fileutil.GetTempFileName()
	require.Nil(t, err)
	defer os.RemoveAll(tmpFileName)

	expectedFromCLI := []string{"8.8.8.0/24", "7.7.7.7"}
	expectedFromFile := []string{"10.10.10.0/24", "example.com"}
	require.Nil(t, os.WriteFile(tmpFileName, []byte(strings.Join(expectedFromFile, "\n")), 0o600))
	expected := append(expectedFromCLI, expectedFromFile...)

	actual, err := parseExcludedHosts(&Options{
		ExcludeHosts:     strings.Join(expectedFromCLI, ","),
		ExcludeHostsFile: tmpFileName,
	})
	require.Nil(t, err)
	require.Equal(t, expected, actual)
}

func TestExcludeHosts(t *testing.T) {
	hosts := []string{"8.8.8.8", "8.8.4.4", "7.7.7.7", "7.7.7.8", "example.com", "scanme.sh", "10.10.10.1", "2001:db8::1", "2001:db9::1"}
	excluded := []string{"8.8.8.0/24", "7.7.7.7", "example.com", "10.10.10.0/24", "2001:db8::/32"}

	filtered, err := excludeHosts(hosts, excluded)
	require.Nil(t, err)
	require.Equal(t, []string{"8.8.4.4", "7.7.7.8", "scanme.sh", "2001:db9::1"}, filtered)

	filtered, err = excludeHosts(hosts, nil)
	require.Nil(t, err)
	require.Equal(t, hosts, filtered)
}

func TestRanger(t *testing.T) {
	ranger := cidranger.NewPCTrieRanger()
	require.Nil(t, addToRanger(ranger, "192.168.1.0/30"))
	require.Nil(t, addToRanger(ranger, "::1"))
	require.NotNil(t, addToRanger(ranger, "not-an-ip"))

	require.True(t, rangerContains(ranger, "192.168.1.2"))
	require.False(t, rangerContains(ranger, "192.168.1.4"))
	require.True(t, rangerContains(ranger, "::1"))
	require.False(t, rangerContains(ranger, "example.com"))
}

func TestIsIpOrCidr(t *testing.T) {
	valid := []string{"1.1.1.1", "2.2.2.2", "1.1.1.0/24"}
	invalid := []string{"1.1.1.1.1", "a.a.a.a", "77"}
	for _, validItem := range valid {
		require.True(t, isIpOrCidr(validItem))
	}
	for _, invalidItem := range invalid {
		require.False(t, isIpOrCidr(invalidItem))
	}
}
