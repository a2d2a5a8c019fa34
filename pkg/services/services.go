// Package services maps port numbers to well-known service names.
package services

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/projectdiscovery/gologger"
)

// DefaultServicesFile is merged over the built-in table when readable
const DefaultServicesFile = "/etc/services"

type key struct {
	port      int
	transport string
}

// Resolver looks up service names by (port, transport)
type Resolver struct {
	names map[key]string
}

var (
	defaultOnce     sync.Once
	defaultResolver *Resolver
)

// Default returns the shared resolver built from the embedded table and /etc/services
func Default() *Resolver {
	defaultOnce.Do(func() {
		defaultResolver = New(DefaultServicesFile)
	})
	return defaultResolver
}

// New builds a resolver from the embedded table merged with the given services
// files. Missing or unreadable files are skipped.
func New(files ...string) *Resolver {
	r := &Resolver{names: make(map[key]string, len(wellKnown)*2)}
	for _, s := range wellKnown {
		for _, transport := range s.transports {
			r.names[key{s.port, transport}] = s.name
		}
	}
	for _, file := range files {
		if err := r.loadFile(file); err != nil {
			gologger.Debug().Msgf("skipping services file %s: %s\n", file, err)
		}
	}
	return r
}

// Resolve returns the service name for port on transport ("tcp" or "udp")
func (r *Resolver) Resolve(port int, transport string) (string, bool) {
	name, ok := r.names[key{port, strings.ToLower(transport)}]
	return name, ok
}

func (r *Resolver) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return r.load(f)
}

// load parses the services(5) format: "name port/proto [aliases...] [# comment]"
func (r *Resolver) load(reader io.Reader) error {
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		portProto := strings.SplitN(fields[1], "/", 2)
		if len(portProto) != 2 {
			continue
		}
		port, err := strconv.Atoi(portProto[0])
		if err != nil || port < 1 || port > 65535 {
			continue
		}
		transport := strings.ToLower(portProto[1])
		if transport != "tcp" && transport != "udp" {
			continue
		}
		r.names[key{port, transport}] = fields[0]
	}
	return scanner.Err()
}
