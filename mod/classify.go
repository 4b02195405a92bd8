package mod

// Category is the analyzer's final verdict for one archive.
type Category int

const (
	ServerCapable Category = iota
	ClientOnly
	Unparseable
)

// Categories lists all verdicts in report order.
var Categories = []Category{ServerCapable, ClientOnly, Unparseable}

// String returns the folder-safe name of the category.
func (c Category) String() string {
	switch c {
	case ServerCapable:
		return "server-capable"
	case ClientOnly:
		return "client-only"
	default:
		return "unparseable"
	}
}

// Label returns the human-readable name used in reports and the TUI.
func (c Category) Label() string {
	switch c {
	case ServerCapable:
		return "Server Capable"
	case ClientOnly:
		return "Client Only"
	default:
		return "Unparseable"
	}
}

// ParseCategory maps a stored category name back to its value. Unrecognized
// names fall back to Unparseable.
func ParseCategory(s string) Category {
	for _, c := range Categories {
		if c.String() == s {
			return c
		}
	}
	return Unparseable
}

// Classify applies the side decision table to a record, top to bottom, first
// match wins:
//
//  1. unknown loader: Unparseable, whatever the requirements say
//  2. any server or both entry: ServerCapable
//  3. any client entry (server and both already ruled out): ClientOnly
//  4. otherwise: ServerCapable
//
// Unspecified entries are neutral: nearly every manifest carries plain
// version-only dependencies (loader, minecraft), and they must not dilute an
// explicit client-only declaration. The last rule is the default-to-included
// policy: a mod that declares no side restriction goes into the server list
// rather than being dropped. Classify is a pure function of its input.
func Classify(r Record) Category {
	if r.Loader == LoaderUnknown {
		return Unparseable
	}

	sawClient := false
	for _, req := range r.Requirements {
		switch req.Side {
		case SideServer, SideBoth:
			return ServerCapable
		case SideClient:
			sawClient = true
		}
	}
	if sawClient {
		return ClientOnly
	}
	return ServerCapable
}
