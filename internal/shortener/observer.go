package shortener

// Path names the terminal state a resolution ended in.
type Path string

const (
	PathCache    Path = "cache"
	PathStore    Path = "store"
	PathNotFound Path = "not_found"
	PathExpired  Path = "expired"
)

// Observer receives notifications from the generator and resolver.
type Observer interface {
	Resolved(path Path)
	Created(probes int)
}

type nopObserver struct{}

func (nopObserver) Resolved(Path) {}
func (nopObserver) Created(int)   {}
