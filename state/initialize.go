package state

import (
	"time"

	"github.com/google/uuid"

	"divina/common"
)

// Default event line template used by read subcommand, see sprig functions
// for what is available.
const DefaultEventFormat = `{{ .Elapsed | printf "%8s" }} {{ .Name | upper }} {{ .Details }}`

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return &LocalEnv{
		start:       time.Now(),
		Session:     id,
		Viewport:    common.Size{Width: 1080, Height: 1920},
		EventFormat: DefaultEventFormat,
	}
}
