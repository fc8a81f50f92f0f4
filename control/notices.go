package control

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// A NoticeSink receives the observational notices handlers emit as they fire.
// Notices never affect control flow.
type NoticeSink interface {
	Notice(text string)
}

// LogrusNoticeSink forwards notices to a logrus logger at info level.
type LogrusNoticeSink struct {
	Logger *logrus.Logger
}

// Notice logs the notice.
func (s LogrusNoticeSink) Notice(text string) {
	s.Logger.Info(text)
}

// NoticeSinks fans each notice out to every sink, in order.
type NoticeSinks []NoticeSink

// Notice forwards the notice to all sinks.
func (ss NoticeSinks) Notice(text string) {
	for _, s := range ss {
		s.Notice(text)
	}
}

// A NoticeBuffer retains notices in memory so that the monitoring server and
// tests can read them back.
type NoticeBuffer struct {
	mu      sync.Mutex
	notices []string
}

// NewNoticeBuffer creates an empty NoticeBuffer.
func NewNoticeBuffer() *NoticeBuffer {
	return &NoticeBuffer{}
}

// Notice appends the notice to the buffer.
func (b *NoticeBuffer) Notice(text string) {
	b.mu.Lock()
	b.notices = append(b.notices, text)
	b.mu.Unlock()
}

// Snapshot returns a copy of the notices emitted so far.
func (b *NoticeBuffer) Snapshot() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	dup := make([]string, len(b.notices))
	copy(dup, b.notices)

	return dup
}
