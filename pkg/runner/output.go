package runner

import (
	"bufio"
	"io"
	"sort"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/logrusorgru/aurora"
	"github.com/projectdiscovery/portprobe/pkg/result"
	"golang.org/x/exp/maps"
	"gopkg.in/yaml.v3"
)

// WriteJSONOutput writes the whole result as a single json object
func WriteJSONOutput(scanResult result.ScanResult, writer io.Writer) error {
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(scanResult)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = writer.Write(data)
	return err
}

// WriteYAMLOutput writes the whole result as a yaml document
func WriteYAMLOutput(scanResult result.ScanResult, writer io.Writer) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(scanResult); err != nil {
		return err
	}
	return encoder.Close()
}

// WriteHostOutput writes one "host:port status [service]" line per reported
// port, hosts and ports in ascending order
func WriteHostOutput(scanResult result.ScanResult, writer io.Writer, noColor bool) error {
	bufwriter := bufio.NewWriter(writer)
	au := aurora.NewAurora(!noColor)
	sb := &strings.Builder{}

	hosts := maps.Keys(scanResult)
	sort.Strings(hosts)
	for _, host := range hosts {
		records := scanResult[host]
		for _, p := range sortedPorts(records) {
			record := records[p]
			sb.WriteString(host)
			sb.WriteString(":")
			sb.WriteString(p)
			sb.WriteString(" ")
			sb.WriteString(colorStatus(au, record.Status))
			if record.Service != "" {
				sb.WriteString(" ")
				sb.WriteString(record.Service)
			}
			if record.Detail != "" {
				sb.WriteString(" (")
				sb.WriteString(record.Detail)
				sb.WriteString(")")
			}
			sb.WriteString("\n")

			if _, err := bufwriter.WriteString(sb.String()); err != nil {
				bufwriter.Flush()
				return err
			}
			sb.Reset()
		}
	}
	return bufwriter.Flush()
}

func sortedPorts(records map[string]result.PortRecord) []string {
	ports := maps.Keys(records)
	sort.Slice(ports, func(i, j int) bool {
		a, _ := strconv.Atoi(ports[i])
		b, _ := strconv.Atoi(ports[j])
		return a < b
	})
	return ports
}

func colorStatus(au aurora.Aurora, status string) string {
	switch status {
	case result.Open.String():
		return au.Green(status).String()
	case result.OpenFiltered.String():
		return au.Yellow(status).String()
	case result.Error.String():
		return au.Red(status).String()
	default:
		return au.Gray(12, status).String()
	}
}
