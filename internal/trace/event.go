package trace

import "time"

type Kind uint8

const (
	KindBegin Kind = iota + 1
	KindEnd
	KindBeat // heartbeat
)

func (k Kind) String() string {
	switch k {
	case KindBegin:
		return "begin"
	case KindEnd:
		return "end"
	case KindBeat:
		return "beat"
	}
	return "unknown"
}

// Attr is one key/value pair attached to an end event. Order is kept.
type Attr struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Event is one recorded trace event.
type Event struct {
	Time     time.Time
	Seq      uint64 // присваивает Recorder
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64
	Name     string
	Severity string // DEBUG, INFO, ... для pass и file
	Path     string // для file
	Elapsed  time.Duration
	Err      string
	Attrs    []Attr
}
