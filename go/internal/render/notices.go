package render

import (
	"fmt"
	"io"
	"sync"

	"github.com/mcdev12/genrevote/go/internal/voteclient"
)

var noticePrefix = map[voteclient.NoticeKind]string{
	voteclient.NoticeVoteConfirmed: "✔",
	voteclient.NoticeConnected:     "•",
	voteclient.NoticeServerError:   "✖",
	voteclient.NoticeSendFailed:    "✖",
	voteclient.NoticeDisconnected:  "!",
	voteclient.NoticeNotConnected:  "!",
}

// NoticePrinter writes notices to a terminal, one per line.
type NoticePrinter struct {
	mu  sync.Mutex
	out io.Writer
}

func NewNoticePrinter(out io.Writer) *NoticePrinter {
	return &NoticePrinter{out: out}
}

func (p *NoticePrinter) Notify(n voteclient.Notice) {
	prefix, ok := noticePrefix[n.Kind]
	if !ok {
		prefix = "-"
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "%s %s\n", prefix, n.Text)
}
