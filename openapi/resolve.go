package openapi

import (
	"net/url"
	"strings"
)

// defaultServerURL is the server assumed when a document declares none.
const defaultServerURL = "/"

// ServerMatch is the outcome of matching a request URL against the
// document's servers.
type ServerMatch struct {
	// ServerURL is the resolved URL of the first matching server.
	ServerURL string
	// Path is the request URL with the server prefix stripped, always
	// starting with "/" and without query or fragment.
	Path string
}

func (d *Document) compile() {
	d.compileOnce.Do(func() {
		if len(d.Servers) == 0 {
			d.serverURLs = []string{defaultServerURL}
		} else {
			d.serverURLs = make([]string, 0, len(d.Servers))
			for _, s := range d.Servers {
				d.serverURLs = append(d.serverURLs, s.ResolvedURL())
			}
		}

		templates := make([]string, 0, len(d.Paths))
		for template := range d.Paths {
			templates = append(templates, template)
		}
		d.routes = newPathMatcherSet(templates)
	})
}

// ServerURLs returns the resolved server URLs in document order.
func (d *Document) ServerURLs() []string {
	d.compile()
	return append([]string(nil), d.serverURLs...)
}

// MatchServer returns the first server, in document order, whose URL is a
// prefix of baseURL. There is no longest-prefix preference.
//
// Absolute server URLs are tested against baseURL as given; relative ones
// (starting with "/") against its path component.
func (d *Document) MatchServer(baseURL string) (ServerMatch, bool) {
	d.compile()

	var requestPath string
	requestPathParsed := false

	for _, serverURL := range d.serverURLs {
		candidate := baseURL
		if strings.HasPrefix(serverURL, "/") {
			if !requestPathParsed {
				requestPath = pathComponent(baseURL)
				requestPathParsed = true
			}
			candidate = requestPath
		}
		if strings.HasPrefix(candidate, serverURL) {
			return ServerMatch{
				ServerURL: serverURL,
				Path:      logicalPath(candidate[len(serverURL):]),
			}, true
		}
	}
	return ServerMatch{}, false
}

// FindOperation returns the operation for path and method along with the
// path template that selected it. Literal paths win over templated ones;
// among templates the most specific wins. method is matched
// case-insensitively.
func (d *Document) FindOperation(path, method string) (*Operation, string, bool) {
	d.compile()

	template := path
	item, ok := d.Paths[path]
	if !ok {
		template, ok = d.routes.match(path)
		if !ok {
			return nil, "", false
		}
		item = d.Paths[template]
	}
	if item == nil {
		return nil, template, false
	}

	op, ok := item.Operations[foldMethod(method)]
	if !ok || op == nil {
		return nil, template, false
	}
	return op, template, true
}

// pathComponent returns the path of a URL, or the input itself when it is
// already a bare path.
func pathComponent(raw string) string {
	if strings.HasPrefix(raw, "/") {
		return stripQuery(raw)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if u.Path == "" {
		return "/"
	}
	return u.Path
}

// logicalPath normalizes the remainder after a server prefix.
func logicalPath(rest string) string {
	rest = stripQuery(rest)
	if !strings.HasPrefix(rest, "/") {
		rest = "/" + rest
	}
	return rest
}

func stripQuery(s string) string {
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		return s[:i]
	}
	return s
}
