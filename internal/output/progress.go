package output

import (
	"os"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Progress is a live counter for paginated collections where the total is
// unknown until the server signals exhaustion. It renders on stderr so stdout
// stays pipeable.
type Progress struct {
	progress *mpb.Progress
	bar      *mpb.Bar
}

func NewProgress(name string) *Progress {
	p := mpb.New(mpb.WithWidth(64), mpb.WithOutput(os.Stderr))

	bar := p.AddBar(0,
		mpb.PrependDecorators(
			decor.Name(name+":", decor.WC{C: decor.DindentRight | decor.DextraSpace}),
		),
		mpb.AppendDecorators(
			decor.CurrentNoUnit("%d collected "),
			decor.Spinner([]string{" /", " -", " \\", " |"}),
		),
	)

	return &Progress{progress: p, bar: bar}
}

// Add records n more collected items.
func (p *Progress) Add(n int) {
	if p == nil {
		return
	}
	p.bar.IncrBy(n)
}

// Done pins the total at the current count and waits for the bar to flush.
func (p *Progress) Done() {
	if p == nil {
		return
	}
	p.bar.SetTotal(p.bar.Current(), true)
	p.progress.Wait()
}
