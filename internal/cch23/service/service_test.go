package service_test

import (
	"math"
	"net/http"
	"strings"
	"testing"

	"codehunt/internal/cch23/service"
	pkgerrors "codehunt/pkg/errors"

	"github.com/google/go-cmp/cmp"
)

func intPtr(v int) *int { return &v }

func TestCubeBits(t *testing.T) {
	got, err := service.CubeBits([]int64{4, 8})
	if err != nil || got != 1728 {
		t.Fatalf("unexpected cube: %d %v", got, err)
	}
	got, err = service.CubeBits([]int64{-3})
	if err != nil || got != -27 {
		t.Fatalf("unexpected cube: %d %v", got, err)
	}
	if _, err := service.CubeBits(nil); !pkgerrors.Is(err, pkgerrors.InvalidParams) {
		t.Fatalf("expected invalid params, got %v", err)
	}
	if _, err := service.CubeBits(make([]int64, service.MaxPacketIDs+1)); err == nil {
		t.Fatalf("expected too many ids error")
	}
}

func TestSliceNames(t *testing.T) {
	names := strings.Split("Ava,Caleb,Mia,Owen,Lily,Ethan,Zoe,Nolan,Harper,Lucas,Stella,Mason,Olivia", ",")

	got, err := service.SliceNames(names, service.SliceOptions{Offset: intPtr(3), Limit: intPtr(5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"Owen", "Lily", "Ethan", "Zoe", "Nolan"}, got); diff != "" {
		t.Fatalf("unexpected slice (-want +got):\n%s", diff)
	}

	got, err = service.SliceNames(names, service.SliceOptions{Offset: intPtr(10), Split: intPtr(2)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([][]string{{"Stella", "Mason"}, {"Olivia"}}, got); diff != "" {
		t.Fatalf("unexpected chunks (-want +got):\n%s", diff)
	}

	got, err = service.SliceNames(names, service.SliceOptions{Offset: intPtr(50)})
	if err != nil || len(got.([]string)) != 0 {
		t.Fatalf("expected empty slice, got %v %v", got, err)
	}
	if _, err := service.SliceNames(names, service.SliceOptions{Split: intPtr(0)}); err == nil {
		t.Fatalf("expected split error")
	}

	got, err = service.SliceNames(names, service.SliceOptions{Offset: intPtr(11), Limit: intPtr(math.MaxInt)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"Mason", "Olivia"}, got); diff != "" {
		t.Fatalf("unexpected rest (-want +got):\n%s", diff)
	}
}

func TestReindeerContest(t *testing.T) {
	team := []service.Reindeer{
		{Name: "Zeus", Strength: 8, Speed: 51.2, Height: 81, AntlerWidth: 31, SnowMagicPower: 311, FavoriteFood: "pizza", CandiesEaten: 4},
		{Name: "Oner", Strength: 6, Speed: 41.3, Height: 51, AntlerWidth: 30, SnowMagicPower: 321, FavoriteFood: "burger", CandiesEaten: 1},
		{Name: "Faker", Strength: 7, Speed: 50, Height: 50, AntlerWidth: 37, SnowMagicPower: 6667, FavoriteFood: "broccoli", CandiesEaten: 1},
		{Name: "Gumayusi", Strength: 6, Speed: 60.1, Height: 50, AntlerWidth: 34, SnowMagicPower: 2323, FavoriteFood: "pizza", CandiesEaten: 1},
		{Name: "Keria", Strength: 6, Speed: 48.2, Height: 65, AntlerWidth: 33, SnowMagicPower: 5014, FavoriteFood: "wok", CandiesEaten: 5},
	}
	if got := service.TotalStrength(team); got != 33 {
		t.Fatalf("unexpected strength %d", got)
	}
	got, err := service.Contest(team)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := service.ContestResult{
		Fastest:  "Speeding past the finish line with a strength of 6 is Gumayusi",
		Tallest:  "Zeus is standing tall with his 31 cm wide antlers",
		Magician: "Faker could blast you away with a snow magic power of 6667",
		Consumer: "Keria ate lots of candies, but also some wok",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected result (-want +got):\n%s", diff)
	}
	if _, err := service.Contest(nil); err == nil {
		t.Fatalf("expected error for empty team")
	}
}

func TestBake(t *testing.T) {
	cases := []struct {
		recipe, pantry map[string]int64
		want           service.BakeResult
	}{
		{
			recipe: map[string]int64{"flour": 35, "sugar": 56, "butter": 3, "baking powder": 1001, "chocolate chips": 55},
			pantry: map[string]int64{"flour": 4045, "sugar": 7606, "butter": 100, "baking powder": 865543211516164409, "chocolate chips": 4587},
			want: service.BakeResult{Cookies: 33, Pantry: map[string]int64{
				"flour": 2890, "sugar": 5758, "butter": 1, "baking powder": 865543211516131376, "chocolate chips": 2772,
			}},
		},
		{
			recipe: map[string]int64{"cocoa bean": 1, "chicken": 0},
			pantry: map[string]int64{"cocoa bean": 5, "corn": 5, "cucumber": 0},
			want:   service.BakeResult{Cookies: 5, Pantry: map[string]int64{"cocoa bean": 0, "corn": 5, "cucumber": 0}},
		},
		{
			recipe: map[string]int64{"chicken": 1},
			pantry: map[string]int64{"chicken": 0},
			want:   service.BakeResult{Cookies: 0, Pantry: map[string]int64{"chicken": 0}},
		},
		{
			recipe: map[string]int64{"chicken": 0},
			pantry: map[string]int64{"chicken": 3},
			want:   service.BakeResult{Cookies: 0, Pantry: map[string]int64{"chicken": 3}},
		},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, service.Bake(tc.recipe, tc.pantry)); diff != "" {
			t.Fatalf("unexpected bake (-want +got):\n%s", diff)
		}
	}
}

func TestCountElves(t *testing.T) {
	text := "Somewhere in Belfast under a shelf store but above the shelf realm there's an elf on a shelf on a shelf on a shelf on a elf on a shelf on a shelf on a shelf on a shelf on a elf on a elf on a elf on a shelf on a "
	want := service.ElfCount{Elf: 16, ElfOnAShelf: 8, BareShelves: 2}
	if diff := cmp.Diff(want, service.CountElves(text)); diff != "" {
		t.Fatalf("unexpected count (-want +got):\n%s", diff)
	}
	if got := service.CountElves("elf elf elf"); got.Elf != 3 || got.ElfOnAShelf != 0 {
		t.Fatalf("unexpected count %+v", got)
	}
}

func TestRenderPage(t *testing.T) {
	content := `<h1>Welcome to the North Pole!</h1> "'&`
	unsafe := service.RenderPage(content, false)
	if !strings.Contains(unsafe, "    "+content+"\n") {
		t.Fatalf("unsafe page should keep content: %q", unsafe)
	}
	safe := service.RenderPage(content, true)
	want := "&lt;h1&gt;Welcome to the North Pole!&lt;/h1&gt; &quot;&#x27;&amp;"
	if !strings.Contains(safe, want) {
		t.Fatalf("unexpected escaping: %q", safe)
	}
	if !strings.HasPrefix(safe, "<html>\n  <head>\n    <title>CCH23 Day 14</title>") || !strings.HasSuffix(safe, "</body>\n</html>") {
		t.Fatalf("unexpected template: %q", safe)
	}
}

func TestIsNice(t *testing.T) {
	cases := map[string]bool{
		"hello there":     true,
		"he77o there":     false,
		"hello":           false,
		"hello xylophone": false,
		"password":        false,
	}
	for input, want := range cases {
		if got := service.IsNice(input); got != want {
			t.Fatalf("IsNice(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestJudgeGame(t *testing.T) {
	cases := []struct {
		input  string
		status int
		reason string
	}{
		{"mario", http.StatusBadRequest, "8 chars"},
		{"mariobro", http.StatusBadRequest, "more types of chars"},
		{"E3E3E3E3E3E", http.StatusBadRequest, "more types of chars"},
		{"e3E3e#eE#ee3#EeE3", http.StatusBadRequest, "55555"},
		{"Password12345", http.StatusBadRequest, "math is hard"},
		{"2+2/2-8*8 = 1-2000 OOgaBooga", http.StatusNotAcceptable, "not joyful enough"},
		{"2000.23.A joy joy", http.StatusNotAcceptable, "not joyful enough"},
		{"2020.3.A j  ;)  o  ;)  y", http.StatusUnavailableForLegalReasons, "illegal: no sandwich"},
		{"2000.23.A j  ;)  o  ;)  y⥿ AzA", http.StatusRequestedRangeNotSatisfiable, "outranged"},
		{"2000.23.A j  ;)  o  ;)  y ⦄AzA", http.StatusUpgradeRequired, "😳"},
		{"2000.23.A j  🥶  o  🍦  y ⦄AzA", http.StatusTeapot, "not a coffee brewer"},
	}
	for _, tc := range cases {
		got := service.JudgeGame(tc.input)
		if got.Nice || got.Status != tc.status || got.Reason != tc.reason {
			t.Fatalf("JudgeGame(%q) = %+v, want %d %q", tc.input, got, tc.status, tc.reason)
		}
	}
	got := service.JudgeGame("2000.23.A j ⦖⦖⦖⦖⦖⦖⦖⦖ 🥶  o  🍦  y ⦄AzA")
	if !got.Nice || got.Status != http.StatusOK {
		t.Fatalf("expected nice password, got %+v", got)
	}
}
