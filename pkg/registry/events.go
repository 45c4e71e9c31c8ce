package registry

// EventKind identifies what a watch event describes.
type EventKind int

const (
	// EntryAdded means a new immediate child appeared in a project's
	// dependency directory.
	EntryAdded EventKind = iota

	// EntryRemoved means an immediate child vanished from a project's
	// dependency directory.
	EntryRemoved

	// FileChanged means the project's manifest file was written.
	FileChanged

	// WatchError carries a non-fatal error from the underlying watcher.
	WatchError
)

// String returns the event kind name for logging.
func (k EventKind) String() string {
	switch k {
	case EntryAdded:
		return "entry-added"
	case EntryRemoved:
		return "entry-removed"
	case FileChanged:
		return "file-changed"
	case WatchError:
		return "watch-error"
	default:
		return "unknown"
	}
}

// Project identifies one registered watch target.
//
// Fields:
//   - Path: Absolute project directory (or global store directory)
//   - Name: Display name; the reserved global pseudo-project uses "(global)"
type Project struct {
	Path string
	Name string
}

// Event is one classified filesystem observation delivered to the consumer.
//
// Fields:
//   - Kind: What happened
//   - Project: The project the observation belongs to
//   - Name: Package name for entry events (scoped names included),
//     file name for FileChanged
//   - Err: The underlying error for WatchError events
type Event struct {
	Kind    EventKind
	Project Project
	Name    string
	Err     error
}
