package qs_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"devblog/internal/common/qs"
)

func TestValues_Encode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		build func(v *qs.Values)
		want  string
	}{
		{
			name:  "empty",
			build: func(v *qs.Values) {},
			want:  "",
		},
		{
			name: "nested map keeps brackets literal",
			build: func(v *qs.Values) {
				v.Add("javascript", "filters", "category", "slug")
			},
			want: "filters[category][slug]=javascript",
		},
		{
			name: "operator key keeps dollar sign",
			build: func(v *qs.Values) {
				v.Add("hooks", "filters", "Title", "$containsi")
			},
			want: "filters[Title][$containsi]=hooks",
		},
		{
			name: "list uses indexed brackets",
			build: func(v *qs.Values) {
				v.AddList([]string{"id:desc", "title:asc"}, "sort")
			},
			want: "sort[0]=id:desc&sort[1]=title:asc",
		},
		{
			name: "insertion order is preserved",
			build: func(v *qs.Values) {
				v.Add("2", "pagination", "page")
				v.Add("1", "pagination", "pageSize")
				v.AddList([]string{"author.avatar"}, "populate")
			},
			want: "pagination[page]=2&pagination[pageSize]=1&populate[0]=author.avatar",
		},
		{
			name: "reserved characters are percent-encoded",
			build: func(v *qs.Values) {
				v.Add("react hooks & state=1", "filters", "Title", "$containsi")
			},
			want: "filters[Title][$containsi]=react%20hooks%20%26%20state%3D1",
		},
		{
			name: "non-ascii is percent-encoded as utf-8",
			build: func(v *qs.Values) {
				v.Add("café", "q")
			},
			want: "q=caf%C3%A9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var v qs.Values
			tt.build(&v)
			if got := v.Encode(); got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	raw := "filters[Title][$containsi]=react%20hooks&pagination%5Bpage%5D=3&sort[0]=id:desc&flag"
	got, err := qs.Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := qs.Values{
		{Path: []string{"filters", "Title", "$containsi"}, Value: "react hooks"},
		{Path: []string{"pagination", "page"}, Value: "3"},
		{Path: []string{"sort", "0"}, Value: "id:desc"},
		{Path: []string{"flag"}, Value: ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_RoundTripsEncode(t *testing.T) {
	t.Parallel()

	var v qs.Values
	v.Add("a b&c", "filters", "Title", "$containsi")
	v.AddList([]string{"author.avatar"}, "populate")

	got, err := qs.Parse(v.Encode())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if diff := cmp.Diff(v, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_MalformedKey(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"filters[category=go", "a]b=1", "a[b]c=1"} {
		if _, err := qs.Parse(raw); !errors.Is(err, qs.ErrMalformedKey) {
			t.Errorf("Parse(%q) error = %v, want ErrMalformedKey", raw, err)
		}
	}
}

func TestValues_GetAndHas(t *testing.T) {
	t.Parallel()

	var v qs.Values
	v.Add("go", "filters", "category", "slug")

	if got, ok := v.Get("filters", "category", "slug"); !ok || got != "go" {
		t.Errorf("Get() = %q, %v; want %q, true", got, ok, "go")
	}
	if _, ok := v.Get("filters", "Title", "$containsi"); ok {
		t.Error("Get() found a title filter that was never added")
	}
	if !v.Has("filters", "category") {
		t.Error("Has(filters, category) = false, want true")
	}
	if v.Has("filters", "Title") {
		t.Error("Has(filters, Title) = true, want false")
	}
}
