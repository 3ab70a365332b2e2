package download

import (
	"fmt"
	"sync"
)

// ProgressStatus mirrors the status field of engine progress events
type ProgressStatus string

const (
	StatusDownloading    ProgressStatus = "downloading"
	StatusFinished       ProgressStatus = "finished"
	StatusPostProcessing ProgressStatus = "post_processing"
	StatusError          ProgressStatus = "error"
)

// MaxPercent is the value a finished download reports
const MaxPercent = 100.0

// ProgressUpdate is one event from the engine's progress hook
type ProgressUpdate struct {
	Status             ProgressStatus
	DownloadedBytes    int64
	TotalBytes         int64
	TotalBytesEstimate int64
}

// Progress is a snapshot of a Reporter
type Progress struct {
	Percent    float64
	Downloaded int64
	Total      int64
	Finished   bool
}

// String renders the percentage the way the progress label shows it
func (p Progress) String() string {
	if p.Finished {
		return "100%"
	}
	return fmt.Sprintf("%.1f%%", p.Percent)
}

// Fraction returns Percent scaled to [0,1] for progress bar widgets
func (p Progress) Fraction() float64 {
	return p.Percent / MaxPercent
}

// Reporter accumulates engine progress for a single download. The
// percentage never decreases and sticks at 100 once finished.
type Reporter struct {
	mu       sync.Mutex
	state    Progress
	onChange func(Progress)
}

// NewReporter returns a reporter starting at 0%. onChange, if set, is called
// with a snapshot whenever the state changes.
func NewReporter(onChange func(Progress)) *Reporter {
	return &Reporter{onChange: onChange}
}

// Handle applies one engine update
func (r *Reporter) Handle(u ProgressUpdate) {
	r.mu.Lock()
	changed := r.apply(u)
	snapshot := r.state
	r.mu.Unlock()

	if changed && r.onChange != nil {
		r.onChange(snapshot)
	}
}

func (r *Reporter) apply(u ProgressUpdate) bool {
	if r.state.Finished {
		return false
	}

	switch u.Status {
	case StatusDownloading:
		total := u.TotalBytesEstimate
		if total <= 0 {
			total = u.TotalBytes
		}
		if total <= 0 {
			return false
		}
		percent := float64(u.DownloadedBytes) / float64(total) * MaxPercent
		if percent > MaxPercent {
			percent = MaxPercent
		}
		r.state.Downloaded = u.DownloadedBytes
		r.state.Total = total
		if percent > r.state.Percent {
			r.state.Percent = percent
		}
		return true
	case StatusFinished:
		r.state.Percent = MaxPercent
		r.state.Finished = true
		if r.state.Total > 0 {
			r.state.Downloaded = r.state.Total
		}
		return true
	default:
		return false
	}
}

// Snapshot returns the current state
func (r *Reporter) Snapshot() Progress {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Percent returns the current percentage
func (r *Reporter) Percent() float64 {
	return r.Snapshot().Percent
}
