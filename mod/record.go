package mod

// LoaderKind identifies which mod-loading ecosystem a manifest belongs to.
// It is determined by which descriptor entry name was found in the archive.
type LoaderKind int

const (
	LoaderUnknown LoaderKind = iota
	LoaderFabric
	LoaderForge
)

func (k LoaderKind) String() string {
	switch k {
	case LoaderFabric:
		return "fabric"
	case LoaderForge:
		return "forge"
	default:
		return "unknown"
	}
}

// Side is the declared runtime applicability of a dependency entry.
type Side int

const (
	SideUnspecified Side = iota
	SideClient
	SideServer
	SideBoth
)

func (s Side) String() string {
	switch s {
	case SideClient:
		return "client"
	case SideServer:
		return "server"
	case SideBoth:
		return "both"
	default:
		return "unspecified"
	}
}

// Requirement is one declared dependency and the side it applies to.
type Requirement struct {
	DependencyID string
	Side         Side
}

// Record is the normalized metadata extracted from one mod archive.
// A Record with Loader == LoaderUnknown carries no reliable Requirements;
// it only records that the archive opened but no manifest could be decoded.
type Record struct {
	Loader       LoaderKind
	ModID        string
	DisplayName  string
	IconPath     string // entry name of the icon inside the archive, if declared
	Requirements []Requirement
}

// Parse decodes raw manifest bytes for the given loader kind into a Record.
// Malformed input never fails hard; it yields a Record with LoaderUnknown
// because partial information is preferred over total failure.
func Parse(kind LoaderKind, data []byte) Record {
	switch kind {
	case LoaderFabric:
		return parseFabric(data)
	case LoaderForge:
		return parseForge(data)
	default:
		return Record{Loader: LoaderUnknown}
	}
}
