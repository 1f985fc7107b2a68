package snippets

import (
	"testing"

	"github.com/PabloPavan/sniply_projects/internal/projects"
	"github.com/PabloPavan/sniply_projects/internal/visibility"
)

var levels = []visibility.Level{visibility.Private, visibility.Internal, visibility.Public}

func TestEffectiveVisibilityIsCapped(t *testing.T) {
	for _, pl := range levels {
		for _, sl := range levels {
			got := EffectiveVisibility(&Snippet{Visibility: sl}, &projects.Project{Visibility: pl})
			if got > pl || got > sl {
				t.Fatalf("project=%s snippet=%s: effective %s exceeds a bound", pl, sl, got)
			}
		}
	}
}

func TestOutsidersOnlySeePublic(t *testing.T) {
	outsiders := map[string]Principal{
		"anonymous": {},
		"external":  {UserID: "usr_ext", External: true},
	}
	for name, p := range outsiders {
		for _, pl := range levels {
			for _, sl := range levels {
				project := &projects.Project{ID: "prj_1", Visibility: pl}
				s := &Snippet{ID: "s", Visibility: sl}
				want := visibility.Min(pl, sl) == visibility.Public
				if got := CanView(p, project, s); got != want {
					t.Fatalf("%s project=%s snippet=%s: got %v, want %v", name, pl, sl, got, want)
				}
			}
		}
	}
}

func TestMembersAndAdminsSeeEverything(t *testing.T) {
	for _, p := range []Principal{
		{UserID: "usr_m", Member: true},
		{UserID: "usr_ext_member", External: true, Member: true},
		{UserID: "usr_a", Admin: true},
	} {
		for _, pl := range levels {
			for _, sl := range levels {
				if !CanView(p, &projects.Project{Visibility: pl}, &Snippet{Visibility: sl}) {
					t.Fatalf("%+v should see project=%s snippet=%s", p, pl, sl)
				}
			}
		}
	}
}

func TestInternalVisibleToSignedInUsers(t *testing.T) {
	p := Principal{UserID: "usr_1"}
	project := &projects.Project{Visibility: visibility.Public}

	if !CanView(p, project, &Snippet{Visibility: visibility.Internal}) {
		t.Fatalf("signed-in user should see internal snippet")
	}
	if CanView(p, project, &Snippet{Visibility: visibility.Private}) {
		t.Fatalf("signed-in user must not see private snippet")
	}
	if CanView(p, &projects.Project{Visibility: visibility.Private}, &Snippet{Visibility: visibility.Public}) {
		t.Fatalf("public snippet in private project must stay hidden")
	}
}

func TestVisibleFloorMatchesCanView(t *testing.T) {
	principals := []Principal{
		{},
		{UserID: "usr_1"},
		{UserID: "usr_ext", External: true},
		{UserID: "usr_m", Member: true},
		{UserID: "usr_a", Admin: true},
	}
	for _, p := range principals {
		floor := VisibleFloor(p)
		for _, pl := range levels {
			for _, sl := range levels {
				project := &projects.Project{Visibility: pl}
				s := &Snippet{Visibility: sl}
				want := CanView(p, project, s)
				if got := visibility.Min(sl, pl) >= floor; got != want {
					t.Fatalf("%+v project=%s snippet=%s: floor %s says %v, CanView says %v", p, pl, sl, floor, got, want)
				}
			}
		}
	}
}

func TestFilterVisiblePreservesOrder(t *testing.T) {
	project := &projects.Project{Visibility: visibility.Public}
	list := []*Snippet{
		{ID: "a", Visibility: visibility.Public},
		{ID: "b", Visibility: visibility.Private},
		{ID: "c", Visibility: visibility.Public},
		{ID: "d", Visibility: visibility.Internal},
	}

	got := FilterVisible(list, Principal{}, project)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Fatalf("unexpected anonymous view: %+v", got)
	}
	if n := len(FilterVisible(list, Principal{UserID: "u", Member: true}, project)); n != 4 {
		t.Fatalf("member should see 4 snippets, got %d", n)
	}
	if out := FilterVisible(nil, Principal{}, project); out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", out)
	}
}

func TestCanCreateAndModify(t *testing.T) {
	cases := []struct {
		name string
		got  bool
		want bool
	}{
		{"anonymous create", CanCreate(Principal{}), false},
		{"non-member create", CanCreate(Principal{UserID: "u"}), false},
		{"member create", CanCreate(Principal{UserID: "u", Member: true}), true},
		{"admin create", CanCreate(Principal{UserID: "u", Admin: true}), true},
		{"author modify", CanModify(Principal{UserID: "usr_author"}, &Snippet{AuthorID: "usr_author"}), true},
		{"admin modify", CanModify(Principal{UserID: "usr_admin", Admin: true}, &Snippet{AuthorID: "usr_author"}), true},
		{"member modify", CanModify(Principal{UserID: "usr_member", Member: true}, &Snippet{AuthorID: "usr_author"}), false},
		{"anonymous modify", CanModify(Principal{}, &Snippet{}), false},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, tc.got, tc.want)
		}
	}
}
