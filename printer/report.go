package printer

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/gcvm/vm"
)

// Reporter formats collector activity with locale-aware digit grouping.
type Reporter struct {
	p *message.Printer
}

// NewReporter creates a Reporter for the given locale. language.Und falls
// back to English grouping.
func NewReporter(tag language.Tag) *Reporter {
	if tag == language.Und {
		tag = language.English
	}
	return &Reporter{p: message.NewPrinter(tag)}
}

// Cycle formats one collection cycle, e.g. "Collected 1,000 objects, 24 left.".
func (r *Reporter) Cycle(cs vm.CollectStats) string {
	return r.p.Sprintf("Collected %d objects, %d left.", cs.Reclaimed, cs.Remaining)
}

// Summary writes the cumulative statistics of a VM.
func (r *Reporter) Summary(w io.Writer, st vm.Stats) error {
	_, err := r.p.Fprintf(w,
		"Cycles: %d (%d automatic)\n"+
			"Allocated: %d objects\n"+
			"Reclaimed: %d objects\n"+
			"Live: %d (peak %d)\n"+
			"Threshold: %d\n",
		st.Cycles, st.AutoCycles,
		st.Allocated,
		st.Reclaimed,
		st.Live, st.PeakLive,
		st.Threshold)
	return err
}

// Number formats n with digit grouping.
func (r *Reporter) Number(n int64) string {
	return r.p.Sprintf("%d", n)
}
