// Package tail produces an ordered stream of text lines from a single
// growing log file, tolerating the file not existing yet, rotating, or
// being truncated.
package tail

import (
	"bufio"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const (
	// absentPoll is how often a missing file is checked for.
	absentPoll = 5 * time.Second
	// idlePoll is the sleep between reads when no new data is available.
	idlePoll = 150 * time.Millisecond
	// errorRetry is the backoff after a transient I/O error.
	errorRetry = 500 * time.Millisecond
	// recentWindow bounds startup cost: on first open, skip to the final
	// part of the file instead of replaying all of it.
	recentWindow = 500 * 1024
)

// Tailer reads the target file incrementally and pushes lines into a
// bounded channel. The push blocks when the channel is full; the tailer
// is the only writer, so this provides backpressure without dropping
// lines.
type Tailer struct {
	path  string
	lines chan string
	done  chan struct{}
	wg    sync.WaitGroup

	// Stats
	linesRead uint64
	reopens   uint64
	ioErrors  uint64

	running atomic.Bool
}

// New creates a tailer for path with the given channel capacity.
func New(path string, buffer int) *Tailer {
	return &Tailer{
		path:  path,
		lines: make(chan string, buffer),
		done:  make(chan struct{}),
	}
}

// Lines returns the channel of log lines. Closed after Stop.
func (t *Tailer) Lines() <-chan string {
	return t.lines
}

// Start begins tailing in a goroutine.
func (t *Tailer) Start() {
	if t.running.Swap(true) {
		log.Printf("[Tail] already running")
		return
	}
	t.wg.Add(1)
	go t.run()
	log.Printf("[Tail] started for %s", t.path)
}

// Stop signals the read loop to finish and closes the line channel once
// it has.
func (t *Tailer) Stop() {
	if !t.running.Swap(false) {
		return
	}
	close(t.done)
	t.wg.Wait()
	close(t.lines)
	log.Printf("[Tail] stopped (lines=%d, reopens=%d, errors=%d)",
		atomic.LoadUint64(&t.linesRead), atomic.LoadUint64(&t.reopens), atomic.LoadUint64(&t.ioErrors))
}

// Stats returns current statistics.
func (t *Tailer) Stats() map[string]interface{} {
	return map[string]interface{}{
		"path":        t.path,
		"lines_read":  atomic.LoadUint64(&t.linesRead),
		"reopens":     atomic.LoadUint64(&t.reopens),
		"io_errors":   atomic.LoadUint64(&t.ioErrors),
		"channel_len": len(t.lines),
		"channel_cap": cap(t.lines),
	}
}

func (t *Tailer) run() {
	defer t.wg.Done()

	var (
		f       *os.File
		r       *bufio.Reader
		offset  int64
		partial []byte
	)
	defer func() {
		if f != nil {
			f.Close()
		}
	}()

	for {
		select {
		case <-t.done:
			return
		default:
		}

		if f == nil {
			fi, err := os.Stat(t.path)
			if err != nil {
				if !t.sleep(absentPoll) {
					return
				}
				continue
			}

			f, err = os.Open(t.path)
			if err != nil {
				atomic.AddUint64(&t.ioErrors, 1)
				log.Printf("[Tail] open failed: %v", err)
				if !t.sleep(errorRetry) {
					return
				}
				continue
			}

			offset = fi.Size() - recentWindow
			if offset < 0 {
				offset = 0
			}
			if _, err := f.Seek(offset, io.SeekStart); err != nil {
				atomic.AddUint64(&t.ioErrors, 1)
				f.Close()
				f = nil
				if !t.sleep(errorRetry) {
					return
				}
				continue
			}
			r = bufio.NewReader(f)
			partial = nil

			// After seeking mid-file the first line is likely partial.
			if offset > 0 {
				skipped, _ := r.ReadString('\n')
				offset += int64(len(skipped))
			}
			log.Printf("[Tail] opened %s at offset %d", t.path, offset)
		}

		chunk, err := r.ReadBytes('\n')
		offset += int64(len(chunk))
		if len(chunk) > 0 {
			partial = append(partial, chunk...)
		}

		if err == nil {
			line := strings.TrimRight(string(partial), "\r\n")
			partial = nil
			atomic.AddUint64(&t.linesRead, 1)
			select {
			case t.lines <- line:
			case <-t.done:
				return
			}
			continue
		}

		if err == io.EOF {
			// Truncation/rotation: the file became smaller than what we
			// already read. Reopen from the start.
			fi, serr := os.Stat(t.path)
			if serr == nil && fi.Size() < offset {
				log.Printf("[Tail] file truncated or rotated, reopening")
				atomic.AddUint64(&t.reopens, 1)
				f.Close()
				f = nil
				continue
			}
			if !t.sleep(idlePoll) {
				return
			}
			continue
		}

		atomic.AddUint64(&t.ioErrors, 1)
		log.Printf("[Tail] read error: %v", err)
		f.Close()
		f = nil
		if !t.sleep(errorRetry) {
			return
		}
	}
}

// sleep waits for d or until Stop. Returns false when stopping.
func (t *Tailer) sleep(d time.Duration) bool {
	select {
	case <-t.done:
		return false
	case <-time.After(d):
		return true
	}
}
