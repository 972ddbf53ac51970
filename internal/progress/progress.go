// Package progress reports per-file transfer progress during approved
// runs.
package progress

import (
	"io"

	"github.com/cheggaaa/pb/v3"
)

// Reporter receives transfer progress events. The executor drives it;
// implementations decide how (or whether) to render them.
type Reporter interface {
	// Start begins tracking one file transfer.
	Start(name string, totalBytes int64)

	// Add reports bytes written for the current transfer.
	Add(n int64)

	// Complete marks the current transfer as finished.
	Complete()
}

// Null discards all progress events. Used in preview mode and when
// output is not a terminal.
type Null struct{}

func (Null) Start(string, int64) {}
func (Null) Add(int64)           {}
func (Null) Complete()           {}

// Bar renders one byte-progress bar per transferred file.
type Bar struct {
	out io.Writer
	bar *pb.ProgressBar
}

// NewBar creates a bar reporter writing to out. Pass stderr so the plan
// report on stdout stays clean.
func NewBar(out io.Writer) *Bar {
	return &Bar{out: out}
}

func (b *Bar) Start(name string, totalBytes int64) {
	bar := pb.New64(totalBytes)
	bar.Set(pb.Bytes, true)
	bar.Set("prefix", name+" ")
	bar.SetWriter(b.out)
	bar.Start()
	b.bar = bar
}

func (b *Bar) Add(n int64) {
	if b.bar != nil {
		b.bar.Add64(n)
	}
}

func (b *Bar) Complete() {
	if b.bar != nil {
		b.bar.Finish()
		b.bar = nil
	}
}
