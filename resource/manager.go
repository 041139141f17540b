package resource

import (
	"context"
	"errors"
	"maps"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"divina/common"
	"divina/tasks"
)

var errEmptyTexture = errors.New("loader returned no texture")

// Manager owns the resource table. It is driven from engine loop only.
type Manager struct {
	log       *zap.Logger
	loader    Loader
	queue     *tasks.ResourceQueue
	resources []*Resource
	index     map[string]int
	slots     map[string]int
	tags      map[string]string
}

func NewManager(loader Loader, queue *tasks.ResourceQueue, tags map[string]string, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		log:    log.Named("resources"),
		loader: loader,
		queue:  queue,
		index:  make(map[string]int),
		slots:  make(map[string]int),
		tags:   maps.Clone(tags),
	}
}

// ResourceID returns id of already registered resource with the same path
// and kind or registers new one. Videos are never deduplicated.
func (m *Manager) ResourceID(desc Descriptor) int {
	key := desc.Kind.String() + ":" + desc.Path
	if desc.Kind != common.ResourceKindVideo {
		if id, ok := m.index[key]; ok {
			return id
		}
	}
	id := len(m.resources)
	m.resources = append(m.resources, &Resource{ID: id, Desc: desc})
	if desc.Kind != common.ResourceKindVideo {
		m.index[key] = id
	}
	return id
}

// SlotResourceID is ResourceID for resource shown in a named place of the
// story. Videos are still not shared between places, but a place gets the
// same video every time composition tree is rebuilt.
func (m *Manager) SlotResourceID(slot string, desc Descriptor) int {
	if desc.Kind != common.ResourceKindVideo {
		return m.ResourceID(desc)
	}
	key := slot + "|" + desc.Path
	if id, ok := m.slots[key]; ok {
		return id
	}
	id := m.ResourceID(desc)
	m.slots[key] = id
	return id
}

// Resource returns resource by id or nil.
func (m *Manager) Resource(id int) *Resource {
	if id < 0 || id >= len(m.resources) {
		return nil
	}
	return m.resources[id]
}

func (m *Manager) Len() int {
	return len(m.resources)
}

func (m *Manager) Queue() *tasks.ResourceQueue {
	return m.queue
}

// Start lets queued loads run, progress reports completion of loads
// requested before the start.
func (m *Manager) Start(progress func(done, total int)) {
	m.queue.Start(progress)
}

func (m *Manager) Tags() map[string]string {
	return maps.Clone(m.tags)
}

// LoadResources serves consumer requests made in context of page. Loaded
// textures are applied immediately, resources not yet loading are loaded by
// a single task per request.
func (m *Manager) LoadResources(reqs []Request, pageIndex int) {
	for _, req := range reqs {
		var toLoad []int
		for _, id := range req.IDs {
			res := m.Resource(id)
			if res == nil {
				m.log.Warn("Request for unknown resource", zap.Int("id", id))
				continue
			}
			res.addUser(req.Consumer)

			switch res.status {
			case common.LoadStatusLoaded, common.LoadStatusPartial:
				req.Consumer.SetTexture(id, res.texture, res.status)
			case common.LoadStatusLoading:
				req.Consumer.TextureLoading(id)
				m.reprioritize(res, pageIndex)
			default:
				res.status = common.LoadStatusLoading
				req.Consumer.TextureLoading(id)
				toLoad = append(toLoad, id)
			}
		}
		if len(toLoad) > 0 {
			m.enqueue(toLoad, pageIndex)
		}
	}
}

func taskID(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, "-")
}

func (m *Manager) enqueue(ids []int, pageIndex int) {
	id := taskID(ids)
	for _, rid := range ids {
		m.resources[rid].taskID = id
	}
	ok := m.queue.AddOrUpdateTask(&tasks.Task[tasks.LoadContext]{
		ID:   id,
		Data: tasks.LoadContext{PageIndex: pageIndex},
		Run: func(ctx context.Context) *tasks.Future {
			return m.fetch(ctx, ids)
		},
		OnKill: func() {
			m.abandon(ids)
		},
	})
	if !ok {
		m.abandon(ids)
	}
}

// reprioritize moves pending load closer when resource is needed by page
// nearer to reading position.
func (m *Manager) reprioritize(res *Resource, pageIndex int) {
	t := m.queue.TaskWithID(res.taskID)
	if t == nil || m.queue.PriorityFor(pageIndex) >= t.Priority() {
		return
	}
	m.queue.AddOrUpdateTask(&tasks.Task[tasks.LoadContext]{
		ID:   t.ID,
		Data: tasks.LoadContext{PageIndex: pageIndex},
	})
}

// abandon returns resources of a killed or refused task to unloaded state.
func (m *Manager) abandon(ids []int) {
	for _, id := range ids {
		res := m.resources[id]
		if res.status != common.LoadStatusLoading {
			continue
		}
		res.status, res.taskID, res.fallback = common.LoadStatusUnloaded, "", false
		for _, u := range res.users {
			u.CancelTexture(id)
		}
	}
}

// fetch loads resources through loader, failed videos are retried with
// fallback images in the following batch.
func (m *Manager) fetch(ctx context.Context, ids []int) *tasks.Future {
	fut := tasks.NewFuture()

	var (
		errs       error
		onComplete func([]Item)
	)
	onComplete = func(items []Item) {
		if ctx.Err() != nil {
			fut.Resolve(ctx.Err())
			return
		}
		var retry []int
		for _, it := range items {
			id, err := strconv.Atoi(it.ID)
			if err != nil {
				m.log.Warn("Loader returned unknown item", zap.String("id", it.ID))
				continue
			}
			if m.apply(id, it) {
				retry = append(retry, id)
			} else if it.Err != nil {
				errs = multierr.Append(errs, it.Err)
			}
		}
		if len(retry) == 0 {
			fut.Resolve(errs)
			return
		}
		for _, id := range retry {
			m.request(id)
		}
		m.loader.Load(ctx, onComplete)
	}

	for _, id := range ids {
		res := m.resources[id]
		res.variant = m.variantFor(res)
		m.request(id)
	}
	m.loader.Load(ctx, onComplete)
	return fut
}

func (m *Manager) request(id int) {
	v := m.resources[id].variant
	m.loader.Enqueue(strconv.Itoa(id), Source{Path: v.Path, Kind: v.Kind, MimeType: v.MimeType})
}

// apply stores loader result, it returns true when resource has to be
// retried with fallback.
func (m *Manager) apply(id int, it Item) bool {
	res := m.Resource(id)
	if res == nil || res.status != common.LoadStatusLoading {
		// released while loading
		return false
	}

	err := it.Err
	if err == nil && it.Texture == nil {
		err = errEmptyTexture
	}
	if err == nil {
		res.texture, res.taskID = it.Texture, ""
		res.status = common.LoadStatusLoaded
		if res.fallback {
			res.status = common.LoadStatusPartial
		}
		for _, u := range res.users {
			if u.ResourceStatus(id).IsActive() {
				u.SetTexture(id, res.texture, res.status)
			}
		}
		return false
	}

	if !res.fallback && res.Desc.Kind == common.ResourceKindVideo && len(res.Desc.Fallbacks) > 0 {
		res.fallback = true
		res.variant = m.pick(res.Desc.Fallbacks, common.ResourceKindImage)
		m.log.Warn("Unable to load video, using fallback",
			zap.String("path", res.Desc.Path), zap.String("fallback", res.variant.Path), zap.Error(err))
		return true
	}

	m.log.Warn("Unable to load resource", zap.String("path", res.variant.Path), zap.Error(err))
	res.status, res.taskID, res.fallback = common.LoadStatusUnloaded, "", false
	for _, u := range res.users {
		if u.ResourceStatus(id).IsActive() {
			u.TextureFailed(id)
		}
	}
	return false
}

func (m *Manager) variantFor(res *Resource) Descriptor {
	if len(res.Desc.Alternates) == 0 {
		return res.Desc
	}
	return m.pick(append([]Descriptor{res.Desc}, res.Desc.Alternates...), res.Desc.Kind)
}

func (m *Manager) pick(candidates []Descriptor, kind common.ResourceKind) Descriptor {
	tags := make([]map[string]string, len(candidates))
	for i := range candidates {
		tags[i] = candidates[i].Tags
	}
	best, tied := BestMatch(tags, m.tags)
	if tied {
		m.log.Debug("Several variants match current tags equally, using first declared",
			zap.String("path", candidates[best].Path), zap.Any("tags", m.tags))
	}
	d := candidates[best]
	d.Kind = kind
	return d
}

// DestroyIfPossible releases resource unless one of its users still shows
// it or waits for it.
func (m *Manager) DestroyIfPossible(id int) {
	res := m.Resource(id)
	if res == nil || res.hasActiveUsers() {
		return
	}
	m.release(res)
}

func (m *Manager) release(res *Resource) {
	res.users = nil
	switch res.status {
	case common.LoadStatusLoading:
		if res.taskID != "" {
			m.queue.Kill(res.taskID)
		}
		res.status, res.taskID = common.LoadStatusUnloaded, ""
	case common.LoadStatusLoaded, common.LoadStatusPartial:
		m.log.Debug("Releasing texture", zap.Int("id", res.ID), zap.String("path", res.variant.Path))
	}
	res.status, res.texture, res.fallback = common.LoadStatusUnloaded, nil, false
}

func (m *Manager) cancelUsers(res *Resource) {
	for _, u := range res.users {
		if u.ResourceStatus(res.ID).IsActive() {
			u.CancelTexture(res.ID)
		}
	}
}

// ForceDestroyAllExcept releases every resource not in keep regardless of
// its users, users are told their textures are gone.
func (m *Manager) ForceDestroyAllExcept(keep map[int]bool) {
	for _, res := range m.resources {
		if keep[res.ID] {
			continue
		}
		m.cancelUsers(res)
		m.release(res)
	}
}

// SetTags changes current tags. Loaded resources whose best variant changed
// are released and their ids returned so that caller could request them again.
func (m *Manager) SetTags(tags map[string]string) []int {
	m.tags = maps.Clone(tags)

	var changed []int
	for _, res := range m.resources {
		// pending loads pick their variant when they start
		if res.fallback || res.status != common.LoadStatusLoaded || m.variantFor(res).Path == res.variant.Path {
			continue
		}
		m.cancelUsers(res)
		m.release(res)
		changed = append(changed, res.ID)
	}
	if len(changed) > 0 {
		m.log.Debug("Tags changed", zap.Any("tags", m.tags), zap.Int("released", len(changed)))
	}
	return changed
}

// Destroy kills all loads and releases every texture.
func (m *Manager) Destroy() {
	m.queue.Reset()
	for _, res := range m.resources {
		m.release(res)
	}
}
