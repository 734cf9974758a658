package shadowcast

import(
	"fmt"
	"io"
)

// Sink receives alert records, best-effort. A sink that returns false (or
// panics) just gets counted; it can never fail a tick.
type Sink interface {
	Notify(r AlertRecord) bool
}

// WriterSink prints alerts to a writer; the default terminal notifier.
type WriterSink struct {
	Writer io.Writer
}

func (s WriterSink)Notify(r AlertRecord) bool {
	_,err := fmt.Fprintf(s.Writer, "ALERT: %s\n", r)
	return err == nil
}
