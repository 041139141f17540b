// Package player drives reader engine headless: scripted gestures are
// applied to a story, engine events are formatted as text lines. Time is
// virtual, so output does not depend on machine speed.
package player

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"divina/common"
	"divina/config"
	"divina/frame"
	"divina/loader"
	"divina/manifest"
	"divina/navigator"
	"divina/render"
	"divina/resource"
	"divina/story"
	"divina/utils/debug"
)

// settleLimit bounds virtual time spent waiting for animations to finish.
const settleLimit = time.Minute

// Line is what event format template is executed with.
type Line struct {
	Elapsed time.Duration
	Name    string
	Details string
	Event   navigator.Event
}

type Options struct {
	Viewport common.Size
	// Format is text/template for event lines, sprig functions are available.
	Format  string
	Session uuid.UUID
	// Out receives formatted event lines, may be nil.
	Out io.Writer
	// Loader replaces file loader, used by tests.
	Loader resource.Loader
}

// Player owns reader together with the loop it runs on.
type Player struct {
	log    *zap.Logger
	clock  *frame.ManualClock
	sched  *frame.Scheduler
	loop   *frame.Loop
	rec    *render.Recorder
	reader *navigator.Reader
	tmpl   *template.Template
	out    io.Writer
	start  time.Time
	trace  bytes.Buffer
	errs   error
}

// Open prepares story for reading. Unless options provide a loader story
// resources are read from its source.
func Open(st *manifest.Story, cfg *config.ReaderConfig, opts Options, log *zap.Logger) (*Player, error) {
	if log == nil {
		log = zap.NewNop()
	}
	format := opts.Format
	if format == "" {
		format = `{{ .Name }} {{ .Details }}`
	}
	tmpl, err := template.New("event").Funcs(sprig.FuncMap()).Parse(format)
	if err != nil {
		return nil, fmt.Errorf("unable to parse event format: %w", err)
	}

	p := &Player{
		log:   log.Named("player"),
		clock: frame.NewManualClock(time.Now()),
		rec:   render.NewRecorder(),
		tmpl:  tmpl,
		out:   opts.Out,
	}
	p.start = p.clock.Now()
	p.sched = frame.NewScheduler(p.clock, log)
	p.loop = frame.NewLoop(p.sched, cfg.Navigation.FPS)

	ld := opts.Loader
	if ld == nil {
		files, err := loaderFor(st, p.loop, &cfg.Images, log)
		if err != nil {
			return nil, err
		}
		ld = files
	}

	p.reader, err = navigator.NewReader(st, cfg, navigator.Options{
		Loader:   ld,
		Factory:  p.rec,
		Sched:    p.sched,
		Viewport: opts.Viewport,
		Listener: p.onEvent,
		Session:  opts.Session,
	}, log)
	if err != nil {
		if c, ok := ld.(io.Closer); ok {
			err = multierr.Append(err, c.Close())
		}
		return nil, err
	}
	return p, nil
}

func (p *Player) Reader() *navigator.Reader { return p.reader }

// Elapsed returns virtual time since player was opened.
func (p *Player) Elapsed() time.Duration {
	return p.clock.Now().Sub(p.start)
}

// Trace returns every event line and executed command so far.
func (p *Player) Trace() []byte {
	return bytes.Clone(p.trace.Bytes())
}

func (p *Player) onEvent(e navigator.Event) {
	line := Line{
		Elapsed: p.Elapsed().Round(time.Millisecond),
		Name:    e.Name(),
		Details: e.Details(),
		Event:   e,
	}
	p.log.Debug("Event", zap.String("name", line.Name), zap.String("details", line.Details))

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, line); err != nil {
		p.errs = multierr.Append(p.errs, fmt.Errorf("unable to format %s event: %w", line.Name, err))
		return
	}
	buf.WriteByte('\n')
	p.trace.Write(buf.Bytes())
	if p.out != nil {
		_, _ = p.out.Write(buf.Bytes())
	}
}

// Settle runs loop until there are neither loads nor animations in flight.
// Loads are waited for first, then animations advance virtual clock frame by
// frame.
func (p *Player) Settle(ctx context.Context) error {
	limit := p.clock.Now().Add(settleLimit)
	queue := p.reader.Resources().Queue()
	for {
		p.loop.Drain()
		switch {
		case queue.Running() > 0:
			// virtual time stands still while loads are in flight
			if !p.loop.Wait(ctx) {
				return ctx.Err()
			}
		case p.sched.Active() > 0:
			if p.clock.Now().After(limit) {
				p.log.Warn("Animations did not settle", zap.Int("active", p.sched.Active()), zap.Duration("limit", settleLimit))
				return p.flushErrors()
			}
			p.clock.Advance(p.loop.Interval())
			p.loop.Step()
		default:
			return p.flushErrors()
		}
	}
}

// Wait advances virtual clock by d ticking every frame.
func (p *Player) Wait(d time.Duration) {
	for end := p.clock.Now().Add(d); p.clock.Now().Before(end); {
		p.clock.Advance(p.loop.Interval())
		p.loop.Step()
	}
}

func (p *Player) flushErrors() error {
	err := p.errs
	p.errs = nil
	return err
}

// Play executes commands in order settling the engine after each of them.
func (p *Player) Play(ctx context.Context, cmds []Command) error {
	if err := p.Settle(ctx); err != nil {
		return err
	}
	for _, cmd := range cmds {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.Exec(ctx, cmd); err != nil {
			return fmt.Errorf("line %d (%s): %w", cmd.Line, cmd, err)
		}
	}
	return nil
}

// Exec applies a single command.
func (p *Player) Exec(ctx context.Context, cmd Command) error {
	fmt.Fprintf(&p.trace, "# %s\n", cmd)
	p.log.Debug("Executing", zap.Stringer("command", cmd))

	nav := p.reader.Navigator()
	done := true
	switch cmd.Verb {
	case "next":
		done = nav.Go(common.WayForward, false)
	case "prev":
		done = nav.Go(common.WayBackward, false)
	case "first":
		done = nav.Go(common.WayBackward, true)
	case "last":
		done = nav.Go(common.WayForward, true)
	case "go":
		way, err := common.ParseWay(cmd.Args[0])
		if err != nil {
			return err
		}
		done = nav.Go(way, false)
	case "page":
		nums, err := floats(cmd.Args)
		if err != nil {
			return err
		}
		progress := navigator.NoProgress
		if len(nums) > 1 {
			progress = nums[1]
		}
		done = nav.GoToPageWithIndex(int(nums[0]), progress, false)
	case "link":
		li, err := strconv.Atoi(cmd.Args[0])
		if err != nil {
			return err
		}
		done = nav.GoToLink(li)
	case "href":
		done = nav.GoToHref(cmd.Args[0])
	case "drag":
		nums, err := floats(cmd.Args)
		if err != nil {
			return err
		}
		// gesture continues, nothing to settle yet
		nav.HandleScroll(navigator.ScrollRequest{DeltaX: nums[0], DeltaY: nums[1], ViewportPercent: nums[2]}, false)
		p.loop.Drain()
		return p.flushErrors()
	case "wheel":
		nums, err := floats(cmd.Args)
		if err != nil {
			return err
		}
		done = nav.HandleScroll(navigator.ScrollRequest{DeltaX: nums[0], DeltaY: nums[1]}, true)
	case "release":
		nums, err := floats(cmd.Args)
		if err != nil {
			return err
		}
		var vx, vy float64
		if len(nums) == 2 {
			vx, vy = nums[0], nums[1]
		}
		nav.EndScroll(vx, vy)
	case "zoom":
		nums, err := floats(cmd.Args)
		if err != nil {
			return err
		}
		req := navigator.ZoomRequest{}
		if len(nums) == 2 {
			req.TouchPoint = common.Point{X: nums[0], Y: nums[1]}
		}
		nav.Zoom(req)
	case "pinch":
		nums, err := floats(cmd.Args)
		if err != nil {
			return err
		}
		nav.Zoom(navigator.ZoomRequest{Continuous: true, TouchPoint: common.Point{X: nums[0], Y: nums[1]}, Multiplier: nums[2]})
	case "percent":
		nums, err := floats(cmd.Args)
		if err != nil {
			return err
		}
		nav.SetPercentInCurrentPage(nums[0])
	case "mode":
		mode, err := common.ParseReadingMode(cmd.Args[0])
		if err != nil {
			return err
		}
		if err := p.reader.SetReadingMode(mode); err != nil {
			return err
		}
	case "tags":
		tags := map[string]string{}
		if len(cmd.Args) > 0 {
			var err error
			if tags, err = ParseTags(cmd.Args[0]); err != nil {
				return err
			}
		}
		p.reader.SetTags(tags)
	case "resize":
		size, err := ParseSize(cmd.Args[0])
		if err != nil {
			return err
		}
		p.reader.Resize(size)
	case "wait":
		d, err := time.ParseDuration(cmd.Args[0])
		if err != nil {
			return err
		}
		p.Wait(d)
	case "tree":
		tree := p.Tree(false)
		p.trace.WriteString(tree)
		if p.out != nil {
			_, _ = io.WriteString(p.out, tree)
		}
	default:
		return fmt.Errorf("unknown command %q", cmd.Verb)
	}
	if !done {
		p.log.Info("Command had no effect", zap.Stringer("command", cmd), zap.Int("line", cmd.Line))
	}
	return p.Settle(ctx)
}

// Tree describes composition tree of current reading mode and, when scene
// is set, scene graph it drives.
func (p *Player) Tree(scene bool) string {
	tw := debug.NewTreeWriter()
	story.Dump(tw, p.reader.Navigator().Root(), 0)
	if scene {
		if n, ok := p.reader.Surface().(*render.Node); ok {
			render.Dump(tw, n, 0)
		}
	}
	return tw.String()
}

// Close releases reader and its loader.
func (p *Player) Close() error {
	err := p.reader.Close()
	p.sched.Close()
	p.loop.Drain()
	return err
}

func loaderFor(st *manifest.Story, poster loader.Poster, cfg *config.ImagesConfig, log *zap.Logger) (*loader.Files, error) {
	files, err := loader.Open(st.Source, poster, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("unable to open story resources: %w", err)
	}
	return files, nil
}

func floats(args []string) ([]float64, error) {
	nums := make([]float64, 0, len(args))
	for _, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q: %w", a, err)
		}
		nums = append(nums, v)
	}
	return nums, nil
}

var errBadSize = errors.New("size must look like WIDTHxHEIGHT")

// ParseSize parses "1080x1920".
func ParseSize(s string) (common.Size, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return common.Size{}, errBadSize
	}
	w, err := strconv.ParseFloat(ws, 64)
	if err != nil {
		return common.Size{}, fmt.Errorf("%w: %w", errBadSize, err)
	}
	h, err := strconv.ParseFloat(hs, 64)
	if err != nil {
		return common.Size{}, fmt.Errorf("%w: %w", errBadSize, err)
	}
	if w <= 0 || h <= 0 {
		return common.Size{}, errBadSize
	}
	return common.Size{Width: w, Height: h}, nil
}

// ParseTags parses "language=fr,contrast=high".
func ParseTags(s string) (map[string]string, error) {
	tags := make(map[string]string)
	for kv := range strings.SplitSeq(s, ",") {
		if kv = strings.TrimSpace(kv); kv == "" {
			continue
		}
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("bad tag %q, expected key=value", kv)
		}
		tags[k] = v
	}
	return tags, nil
}
