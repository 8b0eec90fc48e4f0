package gps

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"gnssmon/internal/nmea"
)

// Config controls the GNSS monitor service.
//
// Source selects how sentences are ingested: "serial" (default) reads a GNSS
// receiver on a serial device, "file" replays an NMEA log.
//
// For serial, Device may be empty to auto-detect /dev/ttyACM* and
// /dev/ttyUSB*, and Baud defaults to 9600. For file, Path is required; Pace optionally
// delays between lines and Loop restarts from the top on EOF.
type Config struct {
	Enable bool
	Source string

	Device string
	Baud   int

	Path string
	Pace time.Duration
	Loop bool
}

// Snapshot is the most recent observable state of the service.
//
// Fix is a value copy; its satellite map is only ever replaced wholesale by
// the parser, never mutated in place, so retaining a snapshot is safe.
type Snapshot struct {
	Enabled bool   `json:"enabled"`
	Valid   bool   `json:"valid"`
	Source  string `json:"source,omitempty"`
	Device  string `json:"device,omitempty"`
	Baud    int    `json:"baud,omitempty"`

	Fix    nmea.Fix `json:"fix"`
	InView int      `json:"in_view,omitempty"`

	Sentences   uint64 `json:"sentences"`
	ParseErrors uint64 `json:"parse_errors"`
	Dropped     uint64 `json:"dropped"`
	LastError   string `json:"last_error,omitempty"`
}

type Service struct {
	cfg Config

	cancel context.CancelFunc
	wg     sync.WaitGroup

	last    atomic.Value // Snapshot
	out     chan nmea.Fix
	outOnce sync.Once

	mu     sync.Mutex
	closer io.Closer
}

func New(cfg Config) *Service {
	s := &Service{
		cfg: cfg,
		out: make(chan nmea.Fix, 64),
	}
	s.last.Store(Snapshot{
		Enabled: cfg.Enable,
		Source:  sourceName(cfg.Source),
		Device:  strings.TrimSpace(cfg.Device),
		Baud:    cfg.Baud,
		Fix:     *nmea.NewFix(),
	})
	return s
}

// Fixes streams a copy of the fix record after each sentence that updated it:
// every applied fix-data sentence and each completed satellites-in-view
// sequence. The channel is closed when the source goroutine exits, and also
// when Start declines to run a source (service disabled or startup failure),
// so ranging over it never blocks forever. Slow consumers lose fixes; losses
// are counted in the snapshot.
func (s *Service) Fixes() <-chan nmea.Fix { return s.out }

func (s *Service) closeFixes() {
	s.outOnce.Do(func() { close(s.out) })
}

func (s *Service) Start(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("gps service is nil")
	}
	if !s.cfg.Enable {
		// No source will ever feed consumers.
		s.closeFixes()
		return nil
	}
	if ctx == nil {
		s.closeFixes()
		return fmt.Errorf("ctx is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return nil
	}

	var err error
	if sourceName(s.cfg.Source) == "file" {
		err = s.startFileLocked(ctx)
	} else {
		err = s.startSerialLocked(ctx)
	}
	if err != nil {
		s.closeFixes()
	}
	return err
}

func (s *Service) startSerialLocked(ctx context.Context) error {
	device := strings.TrimSpace(s.cfg.Device)
	if device == "" {
		device = autoDetectDevice()
		if device == "" {
			s.setErrorLocked("gps auto-detect failed: no /dev/ttyACM* or /dev/ttyUSB* found")
			return fmt.Errorf("gps auto-detect failed")
		}
	}

	baud := s.cfg.Baud
	if baud == 0 {
		baud = 9600
	}

	f, err := openSerial(device, baud)
	if err != nil {
		s.setErrorLocked(fmt.Sprintf("gps open failed device=%s baud=%d: %v", device, baud, err))
		return err
	}
	s.closer = f

	childCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	st := newRunState(Snapshot{Enabled: true, Source: "serial", Device: device, Baud: baud})

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.closeFixes()
		defer func() { _ = f.Close() }()

		log.Printf("gps serial source device=%s baud=%d", device, baud)
		if err := s.consume(childCtx, f, st); err != nil {
			s.storeWithError(st, fmt.Sprintf("gps read stopped: %v", err))
		}
	}()

	s.last.Store(st.snapshot())
	return nil
}

func (s *Service) startFileLocked(ctx context.Context) error {
	path := strings.TrimSpace(s.cfg.Path)
	if path == "" {
		return fmt.Errorf("gps file source requires a path")
	}

	f, err := os.Open(path)
	if err != nil {
		s.setErrorLocked(fmt.Sprintf("gps open failed path=%s: %v", path, err))
		return err
	}
	s.closer = f

	childCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	st := newRunState(Snapshot{Enabled: true, Source: "file", Device: path})

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.closeFixes()
		defer func() { _ = f.Close() }()

		log.Printf("gps file source path=%s pace=%s loop=%v", path, s.cfg.Pace, s.cfg.Loop)
		for {
			err := s.consume(childCtx, f, st)
			if err != nil && err != io.EOF {
				s.storeWithError(st, fmt.Sprintf("gps read stopped: %v", err))
				return
			}
			if !s.cfg.Loop || childCtx.Err() != nil {
				return
			}
			if _, err := f.Seek(0, io.SeekStart); err != nil {
				s.storeWithError(st, fmt.Sprintf("gps replay rewind failed: %v", err))
				return
			}
		}
	}()

	s.last.Store(st.snapshot())
	return nil
}

// consume reads lines until EOF, a read error, or cancellation.
func (s *Service) consume(ctx context.Context, r io.Reader, st *runState) error {
	scanner := bufio.NewScanner(r)
	// NMEA sentences are typically < 82 chars, but allow some headroom.
	scanner.Buffer(make([]byte, 0, 256), 4096)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			return io.EOF
		}

		s.handleLine(scanner.Text(), st)

		if s.cfg.Pace > 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(s.cfg.Pace):
			}
		}
	}
}

func (s *Service) handleLine(line string, st *runState) {
	line = strings.TrimSpace(line)
	if line == "" || !strings.HasPrefix(line, "$") {
		// Receivers can emit non-NMEA chatter between sentences.
		return
	}

	kind := nmea.Classify(line)
	if kind == nmea.KindUnknown {
		return
	}
	st.base.Sentences++

	// Parse into a scratch copy so a failed sentence leaves the last good
	// record intact. The copy is shallow: the satellite map is shared, but
	// the parser replaces it wholesale rather than mutating it.
	work := st.fix
	if err := nmea.ParseLine(line, &work, st.sess); err != nil {
		st.base.ParseErrors++
		st.base.LastError = err.Error()
		s.last.Store(st.snapshot())
		return
	}
	st.fix = work

	updated := kind == nmea.KindFixData ||
		(kind == nmea.KindSatellitesInView && st.sess.Complete())
	if updated {
		select {
		case s.out <- st.fix:
		default:
			st.base.Dropped++
		}
	}
	s.last.Store(st.snapshot())
}

func (s *Service) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	cancel := s.cancel
	closer := s.closer
	s.cancel = nil
	s.closer = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if closer != nil {
		_ = closer.Close()
	}
	s.wg.Wait()
}

func (s *Service) Snapshot() Snapshot {
	if s == nil {
		return Snapshot{}
	}
	v := s.last.Load()
	if v == nil {
		return Snapshot{}
	}
	return v.(Snapshot)
}

func (s *Service) setErrorLocked(msg string) {
	cur := s.Snapshot()
	cur.LastError = msg
	s.last.Store(cur)
}

func (s *Service) storeWithError(st *runState, msg string) {
	st.base.LastError = msg
	s.last.Store(st.snapshot())
}

// runState is owned by the single source goroutine.
type runState struct {
	base Snapshot
	fix  nmea.Fix
	sess *nmea.Session
}

func newRunState(base Snapshot) *runState {
	return &runState{
		base: base,
		fix:  *nmea.NewFix(),
		sess: nmea.NewSession(),
	}
}

func (st *runState) snapshot() Snapshot {
	out := st.base
	out.Fix = st.fix
	out.InView = st.sess.InView()
	out.Valid = validFix(&st.fix)
	return out
}

func validFix(fix *nmea.Fix) bool {
	switch fix.FixType {
	case nmea.FixGPS, nmea.FixDGPS, nmea.FixRTK:
		return true
	}
	return false
}

func sourceName(src string) string {
	src = strings.ToLower(strings.TrimSpace(src))
	if src == "" {
		return "serial"
	}
	return src
}

func autoDetectDevice() string {
	var candidates []string
	for i := 0; i < 10; i++ {
		candidates = append(candidates, fmt.Sprintf("/dev/ttyACM%d", i))
	}
	for i := 0; i < 10; i++ {
		candidates = append(candidates, fmt.Sprintf("/dev/ttyUSB%d", i))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
