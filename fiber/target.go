package fiber

// Handle is an opaque node owned by a Target.
type Handle = any

// Target is the render surface the commit phase mutates. Its methods are only
// ever called while a pass commits.
type Target interface {
	CreateElement(tag string) (Handle, error)
	CreateText() (Handle, error)
	SetProperty(h Handle, key string, value any) error
	RemoveProperty(h Handle, key string) error
	AddListener(h Handle, event string, fn any) error
	RemoveListener(h Handle, event string, fn any) error
	AppendChild(parent, child Handle) error
	RemoveChild(parent, child Handle) error
}
