package cli

import (
	"fmt"
	"io"
	"sync"
)

// termNotifier prints sync notifications between REPL lines.
type termNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

func newTermNotifier(w io.Writer) *termNotifier {
	return &termNotifier{w: w}
}

func (n *termNotifier) Info(msg string) { n.write("info", msg) }
func (n *termNotifier) Warn(msg string) { n.write("warn", msg) }

func (n *termNotifier) write(level, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "\n[%s] %s\n", level, msg)
}
