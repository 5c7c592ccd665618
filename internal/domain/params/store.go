package params

import "net/url"

// Location is the navigable state the store mirrors itself into.
type Location interface {
	Values() url.Values
	Replace(v url.Values)
}

// Store owns the current FilterParams. It is read from the location once on
// construction and every Update writes the encoded state back.
type Store struct {
	current FilterParams
	loc     Location
}

func NewStore(loc Location) *Store {
	return &Store{
		current: Parse(loc.Values()),
		loc:     loc,
	}
}

func (s *Store) Read() FilterParams {
	return s.current
}

func (s *Store) Update(patch Patch) {
	s.current = Merge(s.current, patch)
	s.loc.Replace(Encode(s.current))
}

// URLLocation keeps params in the query string of a URL.
type URLLocation struct {
	u url.URL
}

func NewURLLocation(u *url.URL) *URLLocation {
	return &URLLocation{u: *u}
}

func (l *URLLocation) Values() url.Values {
	return l.u.Query()
}

func (l *URLLocation) Replace(v url.Values) {
	l.u.RawQuery = v.Encode()
}

// RequestURI returns the path and query, suitable for a relative link.
func (l *URLLocation) RequestURI() string {
	return l.u.RequestURI()
}
