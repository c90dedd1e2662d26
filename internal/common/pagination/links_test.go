package pagination_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"devblog/internal/common/pagination"
)

func TestBuildLinks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		meta pagination.Metadata
		want pagination.Links
	}{
		{
			name: "middle page has both links",
			meta: pagination.Metadata{Page: 2, PageCount: 3},
			want: pagination.Links{
				Page:      2,
				PageCount: 3,
				Prev:      "/category/javascript?page=1",
				Next:      "/category/javascript?page=3",
			},
		},
		{
			name: "first page has no prev",
			meta: pagination.Metadata{Page: 1, PageCount: 3},
			want: pagination.Links{Page: 1, PageCount: 3, Next: "/category/javascript?page=2"},
		},
		{
			name: "last page has no next",
			meta: pagination.Metadata{Page: 3, PageCount: 3},
			want: pagination.Links{Page: 3, PageCount: 3, Prev: "/category/javascript?page=2"},
		},
		{
			name: "empty result set",
			meta: pagination.Metadata{Page: 1, PageCount: 0},
			want: pagination.Links{Page: 1, PageCount: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := pagination.BuildLinks("/category/javascript", tt.meta)
			if got != tt.want {
				t.Errorf("BuildLinks() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRecordRequest(t *testing.T) {
	before := testutil.ToFloat64(pagination.RequestsTotal.WithLabelValues("200", "11-50", "search"))

	pagination.RecordRequest(200, 12, true)

	after := testutil.ToFloat64(pagination.RequestsTotal.WithLabelValues("200", "11-50", "search"))
	if after-before != 1 {
		t.Errorf("category_page_requests_total delta = %v, want 1", after-before)
	}
}
