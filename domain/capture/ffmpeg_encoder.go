package capture

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
)

// EncoderOptions configures the external encoder invocation.
type EncoderOptions struct {
	Binary     string
	OutputPath string
	Codec      string
	Preset     string
	CRF        int
}

// DefaultEncoderOptions returns options for a fast x264 encode to out.
func DefaultEncoderOptions(out string) EncoderOptions {
	return EncoderOptions{Binary: "ffmpeg", OutputPath: out, Codec: "libx264", Preset: "ultrafast", CRF: 23}
}

// Args returns the encoder command line for a raw RGB24 stream of
// width x height at fps read from standard input.
func (o EncoderOptions) Args(width, height, fps int) []string {
	return []string{
		"-hide_banner", "-loglevel", "warning", "-nostats",
		"-f", "rawvideo",
		"-pixel_format", "rgb24",
		"-video_size", fmt.Sprintf("%dx%d", width, height),
		"-framerate", strconv.Itoa(fps),
		"-i", "pipe:0",
		// libx264 with yuv420p rejects odd dimensions
		"-vf", "pad=ceil(iw/2)*2:ceil(ih/2)*2",
		"-c:v", o.Codec,
		"-preset", o.Preset,
		"-crf", strconv.Itoa(o.CRF),
		"-pix_fmt", "yuv420p",
		"-y", o.OutputPath,
	}
}

// LogPath is the side-car file receiving the encoder's stdout and stderr.
func (o EncoderOptions) LogPath() string {
	return strings.TrimSuffix(o.OutputPath, filepath.Ext(o.OutputPath)) + ".ffmpeg.log"
}

type encoderProcess interface {
	Wait() error
	Pid() int
}

// processLauncher starts binary with args, binding stdout/stderr to logFile.
type processLauncher func(binary string, args []string, logFile *os.File) (encoderProcess, io.WriteCloser, error)

type execProcess struct{ cmd *exec.Cmd }

func (p *execProcess) Wait() error { return p.cmd.Wait() }
func (p *execProcess) Pid() int    { return p.cmd.Process.Pid }

func launchExec(binary string, args []string, logFile *os.File) (encoderProcess, io.WriteCloser, error) {
	return startCommand(exec.Command(binary, args...), logFile)
}

// startCommand hands logFile to the child as a raw descriptor, so the
// encoder's diagnostics never flow through a pipe this process has to drain.
func startCommand(cmd *exec.Cmd, logFile *os.File) (encoderProcess, io.WriteCloser, error) {
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	configureProcAttr(cmd)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, nil, err
	}
	return &execProcess{cmd: cmd}, stdin, nil
}

type encoderState int

const (
	encoderCreated encoderState = iota
	encoderStarted
	encoderFailed
	encoderClosed
)

// FFmpegEncoder is a FrameConsumer that pipes raw RGB24 frames into an
// external encoder process and finalizes the video file on Close.
//
// ConsumeFrame and Close must be called from a single goroutine (the owning
// session's capture thread). Stats and ProcessStats are safe from any
// goroutine.
type FFmpegEncoder struct {
	opts   EncoderOptions
	logger *slog.Logger
	launch processLauncher

	state   encoderState
	proc    encoderProcess
	stdin   io.WriteCloser
	logFile *os.File
	scratch []byte
	width   int
	height  int

	pid        atomic.Int64
	written    atomic.Uint64
	dropped    atomic.Uint64
	pipeBroken atomic.Bool
	exited     atomic.Bool
	exitCode   atomic.Int64
}

var _ FrameConsumer = (*FFmpegEncoder)(nil)

// NewFFmpegEncoder constructs an encoder; the process is launched by Start.
func NewFFmpegEncoder(opts EncoderOptions, logger *slog.Logger) *FFmpegEncoder {
	if opts.Binary == "" {
		opts.Binary = "ffmpeg"
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &FFmpegEncoder{opts: opts, logger: logger, launch: launchExec}
}

// Options returns the encoder configuration.
func (e *FFmpegEncoder) Options() EncoderOptions { return e.opts }

// Start launches the encoder for a width x height stream at fps. Any failure
// wraps ErrEncoderStart and leaves the encoder in a terminal failed state.
func (e *FFmpegEncoder) Start(width, height, fps int) error {
	if e.state != encoderCreated {
		return ErrAlreadyStarted
	}
	if width <= 0 || height <= 0 || fps <= 0 {
		e.state = encoderFailed
		return fmt.Errorf("%w: invalid stream %dx%d@%d", ErrEncoderStart, width, height, fps)
	}
	logPath := e.opts.LogPath()
	logFile, err := os.Create(logPath)
	if err != nil {
		e.state = encoderFailed
		return fmt.Errorf("%w: create log %s: %w", ErrEncoderStart, logPath, err)
	}
	args := e.opts.Args(width, height, fps)
	proc, stdin, err := e.launch(e.opts.Binary, args, logFile)
	if err != nil {
		_ = logFile.Close()
		e.state = encoderFailed
		return fmt.Errorf("%w: %s: %w", ErrEncoderStart, e.opts.Binary, err)
	}
	e.proc, e.stdin, e.logFile = proc, stdin, logFile
	e.width, e.height = width, height
	e.scratch = make([]byte, width*height*BytesPerPixelRGB24)
	e.pid.Store(int64(proc.Pid()))
	e.state = encoderStarted
	e.logger.Info("encoder started",
		"pid", proc.Pid(),
		"binary", e.opts.Binary,
		"size", fmt.Sprintf("%dx%d", width, height),
		"fps", fps,
		"output", e.opts.OutputPath,
		"log", logPath,
	)
	return nil
}

// ConsumeFrame converts frame to RGB24 and writes it to the encoder. After the
// first failed write the pipe is considered broken and every later frame is
// dropped without touching the pipe.
func (e *FFmpegEncoder) ConsumeFrame(frame image.Image, index int64) {
	if e.state != encoderStarted || e.pipeBroken.Load() {
		e.dropped.Add(1)
		return
	}
	ConvertRGB24(e.scratch, e.width, e.height, frame)
	if _, err := e.stdin.Write(e.scratch); err != nil {
		e.pipeBroken.Store(true)
		e.dropped.Add(1)
		e.logger.Warn("encoder pipe broken; dropping remaining frames",
			"frame", index,
			"error", err,
			"log", e.opts.LogPath(),
		)
		return
	}
	e.written.Add(1)
}

// Close signals end-of-stream, waits for the encoder to exit and releases the
// log file. A non-zero exit is logged, never returned. Close is idempotent
// and a no-op before a successful Start.
func (e *FFmpegEncoder) Close() {
	if e.state != encoderStarted {
		return
	}
	e.state = encoderClosed
	if err := e.stdin.Close(); err != nil {
		e.logger.Debug("encoder stdin close", "error", err)
	}
	werr := e.proc.Wait()
	code := exitCode(werr)
	e.exitCode.Store(int64(code))
	e.exited.Store(true)
	if err := e.logFile.Close(); err != nil {
		e.logger.Debug("encoder log close", "error", err)
	}
	if werr != nil {
		e.logger.Warn("encoder exited with error; output may be incomplete",
			"exit_code", code,
			"error", werr,
			"output", e.opts.OutputPath,
			"log", e.opts.LogPath(),
		)
		return
	}
	e.logger.Info("encoder finished",
		"output", e.opts.OutputPath,
		"frames", e.written.Load(),
		"dropped", e.dropped.Load(),
	)
}

// Stats returns a snapshot of the write path counters.
func (e *FFmpegEncoder) Stats() EncoderStats {
	return EncoderStats{
		PID:        int(e.pid.Load()),
		Written:    e.written.Load(),
		Dropped:    e.dropped.Load(),
		PipeBroken: e.pipeBroken.Load(),
		Exited:     e.exited.Load(),
		ExitCode:   int(e.exitCode.Load()),
		LogPath:    e.opts.LogPath(),
	}
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
