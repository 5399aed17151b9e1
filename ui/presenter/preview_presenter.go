package presenter

import (
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/soocke/spectator-recorder/ui/images"
)

// FrameSource lends the latest recorded frame. Snapshot returns false when
// nothing is recording; seq increases with every delivered frame.
type FrameSource interface {
	Snapshot(fn func(img *image.RGBA, seq int64)) bool
}

// PreviewView describes the UI surface updated by the presenter.
type PreviewView interface {
	UpdateCapture(img image.Image)
}

type previewTask struct {
	seq   int64
	frame *image.RGBA
}

type previewResult struct {
	seq   int64
	thumb image.Image
}

// PreviewPresenter copies the latest frame on the UI tick and scales it on a
// worker goroutine. Only the newest pending task and result are kept.
type PreviewPresenter struct {
	Enabled  func() bool
	Source   FrameSource
	View     PreviewView
	MaxW     int
	MaxH     int
	Interval time.Duration
	logger   *slog.Logger

	workerOnce sync.Once
	closeOnce  sync.Once
	workCh     chan previewTask
	resultCh   chan previewResult

	lastSeq  int64
	lastTime time.Time
	now      func() time.Time
}

func NewPreviewPresenter(enabled func() bool, source FrameSource, view PreviewView, maxW, maxH int, logger *slog.Logger) *PreviewPresenter {
	return &PreviewPresenter{
		Enabled:  enabled,
		Source:   source,
		View:     view,
		MaxW:     maxW,
		MaxH:     maxH,
		Interval: 250 * time.Millisecond,
		logger:   logger,
		workCh:   make(chan previewTask, 1),
		resultCh: make(chan previewResult, 1),
		lastSeq:  -1,
		now:      time.Now,
	}
}

// ProcessFrame flushes a finished thumbnail to the view and, when due,
// dispatches the newest frame for scaling.
func (p *PreviewPresenter) ProcessFrame() {
	if p == nil || p.Enabled == nil || p.Source == nil || p.View == nil {
		return
	}
	p.ensureWorker()

	select {
	case res := <-p.resultCh:
		p.View.UpdateCapture(res.thumb)
	default:
	}

	if !p.Enabled() {
		return
	}
	now := p.now()
	if !p.lastTime.IsZero() && now.Sub(p.lastTime) < p.Interval {
		return
	}
	p.Source.Snapshot(func(img *image.RGBA, seq int64) {
		if seq == p.lastSeq || img == nil {
			return
		}
		p.lastSeq = seq
		p.lastTime = now
		cp := &image.RGBA{
			Pix:    append([]uint8(nil), img.Pix...),
			Stride: img.Stride,
			Rect:   img.Rect,
		}
		p.dispatch(previewTask{seq: seq, frame: cp})
	})
}

// Close stops the worker goroutine.
func (p *PreviewPresenter) Close() {
	if p == nil {
		return
	}
	p.closeOnce.Do(func() { close(p.workCh) })
}

func (p *PreviewPresenter) ensureWorker() {
	p.workerOnce.Do(func() {
		go p.runWorker()
	})
}

func (p *PreviewPresenter) runWorker() {
	for task := range p.workCh {
		start := time.Now()
		thumb := images.Thumbnail(task.frame, p.MaxW, p.MaxH)
		if p.logger != nil {
			p.logger.Debug("preview scaled", "seq", task.seq, "took", time.Since(start))
		}
		res := previewResult{seq: task.seq, thumb: thumb}
		select {
		case p.resultCh <- res:
		default:
			select {
			case <-p.resultCh:
			default:
			}
			select {
			case p.resultCh <- res:
			default:
			}
		}
	}
}

func (p *PreviewPresenter) dispatch(task previewTask) {
	select {
	case p.workCh <- task:
	default:
		select {
		case <-p.workCh:
		default:
		}
		select {
		case p.workCh <- task:
		default:
		}
	}
}
