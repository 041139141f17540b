// Package resource keeps the deduplicated table of story resources and drives
// their loading and eviction through a priority queue.
package resource

import (
	"context"
	"image"

	"divina/common"
)

// Descriptor declares resource as it comes from story manifest.
type Descriptor struct {
	Kind     common.ResourceKind
	Path     string
	MimeType string
	Size     common.Size
	Tags     map[string]string
	// tagged variants of the same content
	Alternates []Descriptor
	// used when video could not be loaded
	Fallbacks []Descriptor
}

// Texture is loaded resource content handed to the rendering collaborator.
// Decoded images satisfy it directly.
type Texture interface {
	Bounds() image.Rectangle
}

// Resource is one entry of the resource table.
type Resource struct {
	ID   int
	Desc Descriptor

	status   common.LoadStatus
	texture  Texture
	variant  Descriptor
	fallback bool
	users    []Consumer
	taskID   string
}

func (r *Resource) Status() common.LoadStatus {
	return r.status
}

func (r *Resource) Texture() Texture {
	return r.texture
}

// Variant returns descriptor actually loaded, valid when status is active.
func (r *Resource) Variant() Descriptor {
	return r.variant
}

func (r *Resource) addUser(c Consumer) {
	for _, u := range r.users {
		if u == c {
			return
		}
	}
	r.users = append(r.users, c)
}

func (r *Resource) hasActiveUsers() bool {
	for _, u := range r.users {
		if u.ResourceStatus(r.ID).IsActive() {
			return true
		}
	}
	return false
}

// Consumer is a composition node showing resource textures.
type Consumer interface {
	// TextureLoading tells consumer that resource load is pending.
	TextureLoading(id int)
	// SetTexture applies texture, status is loaded or partial (fallback used).
	SetTexture(id int, tex Texture, status common.LoadStatus)
	// TextureFailed tells consumer to show its empty state.
	TextureFailed(id int)
	// CancelTexture tells consumer that texture is gone or will not arrive.
	CancelTexture(id int)
	// ResourceStatus returns load status consumer holds for resource.
	ResourceStatus(id int) common.LoadStatus
}

// Request asks for resources on behalf of a consumer.
type Request struct {
	Consumer Consumer
	IDs      []int
}

// Source describes bytes to fetch.
type Source struct {
	Path     string
	Kind     common.ResourceKind
	MimeType string
}

// Item is a single result of a loader batch.
type Item struct {
	ID      string
	Texture Texture
	Err     error
}

// Loader fetches resource content. Load flushes everything enqueued since
// previous call and calls onComplete once for the whole batch on engine loop.
// Cancelled context means results are no longer needed.
type Loader interface {
	Enqueue(id string, src Source)
	Load(ctx context.Context, onComplete func([]Item))
}
