package result

import "fmt"

// Status is the classification of a single probe
type Status int

const (
	Open Status = iota
	Closed
	Filtered
	OpenFiltered
	Error
)

func (s Status) String() string {
	switch s {
	case Open:
		return "open"
	case Closed:
		return "closed"
	case Filtered:
		return "filtered"
	case OpenFiltered:
		return "open|filtered"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Outcome is the raw result of probing one (host, port) pair
type Outcome struct {
	Host   string
	Port   int
	Status Status
	Detail string
}

// Failed builds an error outcome carrying err as detail
func Failed(host string, port int, err error) Outcome {
	return Outcome{Host: host, Port: port, Status: Error, Detail: err.Error()}
}
