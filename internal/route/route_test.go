package route

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseUser(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		wantID int64
		wantOK bool
	}{
		{"set", "user=42", 42, true},
		{"with other params", "tab=x&user=7", 7, true},
		{"first value wins", "user=3&user=4", 3, true},
		{"absent", "", 0, false},
		{"other params only", "tab=x", 0, false},
		{"empty value", "user=", 0, false},
		{"not a number", "user=abc", 0, false},
		{"trailing garbage", "user=12abc", 0, false},
		{"zero", "user=0", 0, false},
		{"negative", "user=-1", 0, false},
		{"float", "user=1.5", 0, false},
		{"malformed escape keeps good pairs", "user=9&bad=%zz", 9, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ParseUser(tt.query).ID()
			if id != tt.wantID || ok != tt.wantOK {
				t.Errorf("ParseUser(%q) = (%d, %v), want (%d, %v)", tt.query, id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestParseSelection(t *testing.T) {
	for raw, want := range map[string]Selection{
		" 8 ": User(8),
		"8":   User(8),
		"":    NoUser(),
		"x8":  NoUser(),
		"-8":  NoUser(),
	} {
		if got := ParseSelection(raw); got != want {
			t.Errorf("ParseSelection(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestUserCollapsesNonPositive(t *testing.T) {
	if User(0).IsSet() || User(-5).IsSet() {
		t.Error("non-positive ids must be NoUser")
	}
	if got := User(12).String(); got != "12" {
		t.Errorf("User(12).String() = %q", got)
	}
	if got := NoUser().String(); got != "" {
		t.Errorf("NoUser().String() = %q", got)
	}
}

func TestWithUser(t *testing.T) {
	tests := []struct {
		name string
		loc  Location
		sel  Selection
		want Location
	}{
		{
			name: "set user",
			loc:  Location{Path: "/", RawQuery: ""},
			sel:  User(7),
			want: Location{Path: "/", RawQuery: "user=7"},
		},
		{
			name: "set user replaces query",
			loc:  Location{Path: "/books", RawQuery: "user=3&tab=x"},
			sel:  User(7),
			want: Location{Path: "/books", RawQuery: "user=7"},
		},
		{
			name: "clear user keeps other params",
			loc:  Location{Path: "/books", RawQuery: "tab=x&user=3"},
			sel:  NoUser(),
			want: Location{Path: "/books", RawQuery: "tab=x"},
		},
		{
			name: "clear when absent",
			loc:  Location{Path: "/", RawQuery: ""},
			sel:  NoUser(),
			want: Location{Path: "/", RawQuery: ""},
		},
		{
			name: "clear invalid user value",
			loc:  Location{Path: "/", RawQuery: "user=abc"},
			sel:  NoUser(),
			want: Location{Path: "/", RawQuery: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, WithUser(tt.loc, tt.sel)); diff != "" {
				t.Errorf("WithUser() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLocationRoundTrip(t *testing.T) {
	loc := ParseLocation("/books?user=5")
	if loc.Path != "/books" || loc.RawQuery != "user=5" {
		t.Errorf("ParseLocation() = %+v", loc)
	}
	if got := loc.String(); got != "/books?user=5" {
		t.Errorf("String() = %q", got)
	}
	if got := ParseLocation("?user=1").Path; got != "/" {
		t.Errorf("empty path should default to /, got %q", got)
	}
	if got := ParseLocation("%zz"); got != Root {
		t.Errorf("unparsable location should be Root, got %+v", got)
	}
}

func TestHistoryNavigation(t *testing.T) {
	h := NewHistory(Root, 0)
	if h.CanBack() || h.CanForward() {
		t.Fatal("fresh history should not navigate")
	}
	if h.Back() != nil {
		t.Error("Back() at start should return nil")
	}

	msg := h.Push(Location{Path: "/", RawQuery: "user=1"})()
	changed, ok := msg.(LocationChangedMsg)
	if !ok || changed.Location.RawQuery != "user=1" {
		t.Fatalf("Push() produced %#v", msg)
	}
	h.Push(Location{Path: "/", RawQuery: "user=2"})

	back := h.Back()().(LocationChangedMsg)
	if back.Location.RawQuery != "user=1" {
		t.Errorf("Back() = %+v", back.Location)
	}
	fwd := h.Forward()().(LocationChangedMsg)
	if fwd.Location.RawQuery != "user=2" {
		t.Errorf("Forward() = %+v", fwd.Location)
	}

	h.Back()
	h.Push(Location{Path: "/", RawQuery: "user=9"})
	if h.CanForward() {
		t.Error("Push() should drop forward entries")
	}
	if h.Len() != 3 {
		t.Errorf("Len() = %d, want 3", h.Len())
	}
}

func TestHistoryLimit(t *testing.T) {
	h := NewHistory(Root, 2)
	h.Push(Location{Path: "/a"})
	h.Push(Location{Path: "/b"})
	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", h.Len())
	}
	h.Back()
	if got := h.Current().Path; got != "/a" {
		t.Errorf("oldest entry should have been evicted, current = %q", got)
	}
}

func TestHistoryReloadMarksMessage(t *testing.T) {
	h := NewHistory(Location{Path: "/", RawQuery: "user=3"}, 0)

	want := LocationChangedMsg{Location: Location{Path: "/", RawQuery: "user=3"}, Reload: true}
	if diff := cmp.Diff(want, h.Reload()()); diff != "" {
		t.Errorf("Reload() (-want +got):\n%s", diff)
	}
	if got := h.Notify()().(LocationChangedMsg); got.Reload {
		t.Error("Notify() must announce a visit, not a reload")
	}
	if h.Len() != 1 {
		t.Errorf("Len() = %d, want 1", h.Len())
	}
}
