package navigator

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"divina/camera"
	"divina/common"
	"divina/config"
	"divina/frame"
	"divina/manifest"
	"divina/render"
	"divina/resource"
	"divina/story"
	"divina/tasks"
)

var ErrUnsupportedMode = errors.New("reading mode is not available for story")

// Options carry collaborators reader does not own.
type Options struct {
	Loader   resource.Loader
	Factory  render.Factory
	Sched    *frame.Scheduler
	Viewport common.Size
	Listener Listener
	// Session identifies reading session in logs, generated when zero.
	Session uuid.UUID
}

// Reader is the engine front: it owns resource manager and navigator for
// current reading mode and rebuilds navigator when mode changes.
type Reader struct {
	log      *zap.Logger
	cfg      *config.ReaderConfig
	story    *manifest.Story
	session  uuid.UUID
	loader   resource.Loader
	manager  *resource.Manager
	env      story.Env
	surface  render.Surface
	listener Listener
	viewport common.Size

	modes []common.ReadingMode
	nav   *Navigator
}

// NewReader prepares story for reading and shows its first page. Loads
// requested for the first window are reported by InitialLoadProgress events.
func NewReader(st *manifest.Story, cfg *config.ReaderConfig, opts Options, log *zap.Logger) (*Reader, error) {
	if len(st.Links) == 0 {
		return nil, ErrEmptyStory
	}
	if log == nil {
		log = zap.NewNop()
	}
	session := opts.Session
	if session == uuid.Nil {
		var err error
		if session, err = uuid.NewV7(); err != nil {
			session = uuid.New()
		}
	}
	listener := opts.Listener
	if listener == nil {
		listener = func(Event) {}
	}

	r := &Reader{
		log:      log.Named("reader").With(zap.Stringer("session", session)),
		cfg:      cfg,
		story:    st,
		session:  session,
		loader:   opts.Loader,
		listener: listener,
		viewport: opts.Viewport,
	}

	nav := cfg.Navigation
	if st.Direction != nil {
		nav.Direction = *st.Direction
	}
	if st.Overflow != nil {
		nav.Overflow = *st.Overflow
	}

	ceiling := tasks.NoCeiling
	if cfg.Loading.Mode == common.QueueModeParallel {
		ceiling = float64(cfg.Loading.MaxPagesAfter)
	}
	queue := tasks.NewResourceQueue(cfg.Loading.Mode, ceiling, cfg.Loading.BeforeFactor(), r.log)
	r.manager = resource.NewManager(opts.Loader, queue, cfg.Tags, r.log)

	r.env = story.Env{
		Log:                r.log,
		Sched:              opts.Sched,
		Factory:            opts.Factory,
		Resources:          r.manager,
		Direction:          nav.Direction,
		Overflow:           nav.Overflow,
		TransitionDuration: nav.TransitionDuration,
		Camera:             camera.NewConfig(&nav, &cfg.Camera),
	}
	r.surface = opts.Factory.NewSurface("reader")
	r.surface.Resize(opts.Viewport)

	r.modes = AvailableModes(st, nav.Direction)
	mode := nav.ReadingMode
	if !slices.Contains(r.modes, mode) {
		r.log.Debug("Configured reading mode is not available", zap.Stringer("mode", mode))
		mode = r.modes[0]
	}
	r.listener(ReadingModesUpdate{Modes: slices.Clone(r.modes)})

	if err := r.open(mode, 0); err != nil {
		return nil, err
	}
	r.manager.Start(func(done, total int) {
		r.listener(InitialLoadProgress{Done: done, Total: total})
	})
	r.log.Info("Story opened",
		zap.String("id", st.ID),
		zap.String("title", st.Title),
		zap.Stringer("direction", nav.Direction),
		zap.Stringer("mode", mode),
		zap.Int("links", len(st.Links)))
	return r, nil
}

// open builds navigator for mode and shows link li.
func (r *Reader) open(mode common.ReadingMode, li int) error {
	nav, err := New(r.story, mode, &r.env, r.cfg, r.listener)
	if err != nil {
		return fmt.Errorf("unable to build %s mode: %w", mode, err)
	}
	r.show(nav, li)
	return nil
}

func (r *Reader) show(nav *Navigator, li int) {
	r.surface.AddChildAtIndex(nav.Surface(), 0)
	nav.Resize(r.viewport)
	r.nav = nav
	r.listener(ReadingModeChange{Mode: nav.Mode()})
	nav.GoToLink(li)
}

func (r *Reader) Session() uuid.UUID { return r.session }

func (r *Reader) Story() *manifest.Story { return r.story }

func (r *Reader) Navigator() *Navigator { return r.nav }

func (r *Reader) Resources() *resource.Manager { return r.manager }

// Surface returns scene root.
func (r *Reader) Surface() render.Surface { return r.surface }

func (r *Reader) Mode() common.ReadingMode { return r.nav.Mode() }

func (r *Reader) Modes() []common.ReadingMode { return slices.Clone(r.modes) }

// SetReadingMode rebuilds composition tree for mode keeping reading position.
func (r *Reader) SetReadingMode(mode common.ReadingMode) error {
	if !slices.Contains(r.modes, mode) {
		return fmt.Errorf("%s: %w", mode, ErrUnsupportedMode)
	}
	if mode == r.nav.Mode() {
		return nil
	}
	li := r.nav.CurrentLink()
	r.log.Debug("Switching reading mode", zap.Stringer("from", r.nav.Mode()), zap.Stringer("to", mode), zap.Int("link", li))

	nav, err := New(r.story, mode, &r.env, r.cfg, r.listener)
	if err != nil {
		return fmt.Errorf("unable to build %s mode: %w", mode, err)
	}
	old := r.nav
	old.Detach()
	r.surface.RemoveChild(old.Surface())

	// textures shown by both trees are handed over, not fetched again
	r.show(nav, li)
	keep := nav.WindowResourceIDs()
	r.manager.ForceDestroyAllExcept(keep)
	old.Destroy()
	r.log.Debug("Reading mode switched", zap.Stringer("mode", mode), zap.Int("kept", len(keep)))
	return nil
}

// SetTags changes tags resource variants are chosen by. Textures whose best
// variant changed are dropped and requested again.
func (r *Reader) SetTags(tags map[string]string) {
	changed := r.manager.SetTags(tags)
	r.log.Debug("Tags set", zap.Any("tags", tags), zap.Ints("released", changed))
	if len(changed) > 0 {
		r.nav.Reload()
	}
}

// Resize changes viewport of every page.
func (r *Reader) Resize(viewport common.Size) {
	r.viewport = viewport
	r.surface.Resize(viewport)
	r.nav.Resize(viewport)
}

// Close releases everything reader holds, loader is closed when it is an
// io.Closer.
func (r *Reader) Close() error {
	var errs error
	if r.nav != nil {
		r.nav.Destroy()
	}
	r.manager.Destroy()
	if c, ok := r.loader.(io.Closer); ok {
		errs = multierr.Append(errs, c.Close())
	}
	r.log.Debug("Reader closed")
	return errs
}
