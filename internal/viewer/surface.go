package viewer

import (
	"errors"

	"github.com/ziadkadry99/molview/internal/scene"
)

// FallbackMessage is shown in place of the scene once a mount has failed.
const FallbackMessage = "graphics capability unavailable"

var (
	// ErrCapabilityUnavailable means the render surface could not be created
	// or could not draw.
	ErrCapabilityUnavailable = errors.New(FallbackMessage)
	// ErrNotMounted is returned by handle operations outside the Active state.
	ErrNotMounted = errors.New("viewer not mounted")
)

// Surface is something a scene can be drawn onto.
type Surface interface {
	Draw(s scene.Scene) error
	Close() error
}

// Sizer is implemented by surfaces that know their pixel size. Picking uses
// it for the aspect ratio.
type Sizer interface {
	Size() (width, height int)
}

// SurfaceFactory acquires a surface for a container.
type SurfaceFactory interface {
	NewSurface(container string) (Surface, error)
}

// SurfaceFactoryFunc adapts a function to SurfaceFactory.
type SurfaceFactoryFunc func(container string) (Surface, error)

func (f SurfaceFactoryFunc) NewSurface(container string) (Surface, error) {
	return f(container)
}
