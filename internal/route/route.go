// Package route models the browser-style location the content view is driven
// by: a path plus a query string carrying the selected user.
package route

import (
	"net/url"
	"strconv"
	"strings"
)

// UserParam is the query parameter carrying the selected user id
const UserParam = "user"

// Location is a path with a raw (already encoded) query string
type Location struct {
	Path     string `json:"path"`
	RawQuery string `json:"query,omitempty"`
}

// Root is the location the app starts at when nothing else is known
var Root = Location{Path: "/"}

// ParseLocation parses "path?query"; anything unparsable falls back to Root
func ParseLocation(s string) Location {
	u, err := url.Parse(s)
	if err != nil {
		return Root
	}
	path := u.Path
	if path == "" {
		path = Root.Path
	}
	return Location{Path: path, RawQuery: u.RawQuery}
}

// String renders the location as "path?query"
func (l Location) String() string {
	if l.RawQuery == "" {
		return l.Path
	}
	return l.Path + "?" + l.RawQuery
}

// Selection is either NoUser or User(id). The zero value is NoUser.
type Selection struct {
	id  int64
	set bool
}

// NoUser is the empty selection
func NoUser() Selection {
	return Selection{}
}

// User selects id. Non-positive ids are not valid users and yield NoUser.
func User(id int64) Selection {
	if id <= 0 {
		return NoUser()
	}
	return Selection{id: id, set: true}
}

// ID returns the selected user id and whether one is selected
func (s Selection) ID() (int64, bool) {
	return s.id, s.set
}

// IsSet reports whether a user is selected
func (s Selection) IsSet() bool {
	return s.set
}

// String renders the id, or "" for NoUser
func (s Selection) String() string {
	if !s.set {
		return ""
	}
	return strconv.FormatInt(s.id, 10)
}

// ParseUser extracts the selected user from a raw query string.
// Missing, malformed, zero and negative values all mean NoUser.
func ParseUser(rawQuery string) Selection {
	// ParseQuery returns what it could decode alongside the error
	values, _ := url.ParseQuery(rawQuery)
	return ParseSelection(values.Get(UserParam))
}

// ParseSelection parses a single user id as typed by a person
func ParseSelection(raw string) Selection {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return NoUser()
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return NoUser()
	}
	return User(id)
}

// WithUser returns the location to navigate to when sel is picked.
// NoUser removes the user parameter and keeps the rest of the query; a user
// replaces the whole query with just the user parameter.
func WithUser(loc Location, sel Selection) Location {
	next := Location{Path: loc.Path}
	id, ok := sel.ID()
	if !ok {
		values, _ := url.ParseQuery(loc.RawQuery)
		values.Del(UserParam)
		next.RawQuery = values.Encode()
		return next
	}
	next.RawQuery = url.Values{UserParam: {strconv.FormatInt(id, 10)}}.Encode()
	return next
}
