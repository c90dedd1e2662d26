package category_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devblog/internal/common/pagination"
	"devblog/internal/common/qs"
	"devblog/internal/handler/http/category"
	"devblog/internal/handler/http/requestid"
	"devblog/internal/infra/strapi"
	catUC "devblog/internal/usecase/category"
	"devblog/internal/view"
)

// fakeCMS is a minimal content API. It filters its fixed article set by
// category slug or title substring and pages it by the requested page size.
type fakeCMS struct {
	mu           sync.Mutex
	queries      []qs.Values
	failArticles int // status to answer article requests with, 0 = OK
}

type fakeArticle struct {
	id       int
	title    string
	category string
}

var corpus = []fakeArticle{
	{id: 5, title: "React hooks in depth", category: "javascript"},
	{id: 4, title: "CSS grid layouts", category: "web-development"},
	{id: 3, title: "Async iterators", category: "javascript"},
	{id: 2, title: "Semantic HTML", category: "web-development"},
	{id: 1, title: "Closures explained", category: "javascript"},
}

func (f *fakeCMS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/api/categories":
		_, _ = w.Write([]byte(`{"data":[
			{"id":1,"attributes":{"Title":"JavaScript","Slug":"javascript"}},
			{"id":2,"attributes":{"Title":"Web development","Slug":"web-development"}}
		],"meta":{"pagination":{"page":1,"pageSize":25,"pageCount":1,"total":2}}}`))
	case "/api/articles":
		f.serveArticles(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeCMS) serveArticles(w http.ResponseWriter, r *http.Request) {
	values, err := qs.Parse(r.URL.RawQuery)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	f.mu.Lock()
	f.queries = append(f.queries, values)
	fail := f.failArticles
	f.mu.Unlock()

	if fail != 0 {
		w.WriteHeader(fail)
		fmt.Fprintf(w, `{"data":null,"error":{"status":%d,"name":"InternalServerError","message":"Internal Server Error"}}`, fail)
		return
	}

	var matched []fakeArticle
	slug, bySlug := values.Get("filters", "category", "slug")
	term, byTitle := values.Get("filters", "Title", "$containsi")
	for _, a := range corpus {
		switch {
		case byTitle && strings.Contains(strings.ToLower(a.title), strings.ToLower(term)):
			matched = append(matched, a)
		case bySlug && a.category == slug:
			matched = append(matched, a)
		}
	}

	page, size := 1, 25
	if v, ok := values.Get("pagination", "page"); ok {
		fmt.Sscan(v, &page)
	}
	if v, ok := values.Get("pagination", "pageSize"); ok {
		fmt.Sscan(v, &size)
	}
	pageCount := (len(matched) + size - 1) / size
	from := min((page-1)*size, len(matched))
	to := min(from+size, len(matched))

	data := make([]string, 0, to-from)
	for _, a := range matched[from:to] {
		data = append(data, fmt.Sprintf(`{"id":%d,"attributes":{"Title":%q,"Slug":"article-%d","Body":"Body of %s","createdAt":"2024-01-0%dT10:00:00.000Z","author":{"data":{"id":7,"attributes":{"username":"mirza"}}}}}`,
			a.id, a.title, a.id, a.title, a.id))
	}
	fmt.Fprintf(w, `{"data":[%s],"meta":{"pagination":{"page":%d,"pageSize":%d,"pageCount":%d,"total":%d}}}`,
		strings.Join(data, ","), page, size, pageCount, len(matched))
}

func (f *fakeCMS) lastQuery(t *testing.T) qs.Values {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.queries, "no article query received")
	return f.queries[len(f.queries)-1]
}

type testServer struct {
	cms  *fakeCMS
	mux  *http.ServeMux
	page *category.PageHandler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cms := &fakeCMS{}
	upstream := httptest.NewServer(cms)
	t.Cleanup(upstream.Close)

	cfg := strapi.DefaultConfig()
	cfg.BaseURL = upstream.URL
	cfg.Timeout = 2 * time.Second
	client, err := strapi.NewClient(cfg)
	require.NoError(t, err)

	renderer, err := view.NewRenderer()
	require.NoError(t, err)

	pc := pagination.Config{DefaultPage: 1, PageSize: 1, MaxPageSize: 100}
	svc := catUC.NewService(client, pc)
	page := &category.PageHandler{
		Svc:        svc,
		Renderer:   renderer,
		Site:       view.Site{Name: "DevMirza Blog", MediaBaseURL: upstream.URL},
		Debounce:   500 * time.Millisecond,
		Pagination: pc,
	}

	mux := http.NewServeMux()
	category.Register(mux, page, category.APIHandler{Svc: svc, Pagination: pc})
	return &testServer{cms: cms, mux: mux, page: page}
}

func (s *testServer) get(t *testing.T, target string) (*httptest.ResponseRecorder, *goquery.Document) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	requestid.Middleware(s.mux).ServeHTTP(rec, req)

	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html") {
		return rec, nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	return rec, doc
}

func TestPageHandler_CategoryPageTwo(t *testing.T) {
	s := newTestServer(t)

	rec, doc := s.get(t, "/category/javascript?page=2")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotNil(t, doc)

	query := s.cms.lastQuery(t)
	assert.Equal(t,
		"filters[category][slug]=javascript&pagination[page]=2&pagination[pageSize]=1&sort[0]=id:desc&populate[0]=author.avatar",
		query.Encode())

	assert.Equal(t, "DevMirza Blog | Javascript", doc.Find("title").Text())
	assert.Equal(t, "Javascript", doc.Find("main h1").Text())

	articles := doc.Find("ul.articles li.article")
	require.Equal(t, 1, articles.Length())
	id, _ := articles.Attr("data-id")
	assert.Equal(t, "3", id, "page 2 of the javascript articles, newest first")
	assert.Equal(t, "Async iterators", articles.Find("h2 a").Text())

	nav := doc.Find("nav.pagination")
	assert.Equal(t, "2", nav.AttrOr("data-page", ""))
	assert.Equal(t, "3", nav.AttrOr("data-page-count", ""))
	assert.Equal(t, "/category/javascript?page=1", nav.Find("a.prev").AttrOr("href", ""))
	assert.Equal(t, "/category/javascript?page=3", nav.Find("a.next").AttrOr("href", ""))

	assert.Equal(t, "javascript", doc.Find("nav.tabs li.tab.active").AttrOr("data-slug", ""))
	assert.Equal(t, 2, doc.Find("nav.tabs li.tab").Length())
	assert.Equal(t, "500", doc.Find("input[name=search]").AttrOr("data-debounce-ms", ""))
}

func TestPageHandler_SearchOverridesCategory(t *testing.T) {
	s := newTestServer(t)

	rec, doc := s.get(t, "/category/javascript?search=css%20grid")
	require.Equal(t, http.StatusOK, rec.Code)

	query := s.cms.lastQuery(t)
	term, ok := query.Get("filters", "Title", "$containsi")
	assert.True(t, ok)
	assert.Equal(t, "css grid", term)
	assert.False(t, query.Has("filters", "category"), "search must drop the category filter")

	articles := doc.Find("li.article")
	require.Equal(t, 1, articles.Length())
	assert.Equal(t, "CSS grid layouts", articles.Find("h2 a").Text(), "matches come from any category")
	assert.Equal(t, "css grid", doc.Find("input[name=search]").AttrOr("value", ""))
	assert.Equal(t, 0, doc.Find("nav.pagination").Length(), "single page hides the control")
}

func TestPageHandler_LenientPage(t *testing.T) {
	s := newTestServer(t)

	for _, raw := range []string{"", "abc", "0", "-4", "1.5"} {
		t.Run("page="+raw, func(t *testing.T) {
			rec, _ := s.get(t, "/category/javascript?page="+raw)
			require.Equal(t, http.StatusOK, rec.Code)

			page, _ := s.cms.lastQuery(t).Get("pagination", "page")
			assert.Equal(t, "1", page)
		})
	}
}

func TestPageHandler_EmptyCategory(t *testing.T) {
	s := newTestServer(t)

	rec, doc := s.get(t, "/category/rust")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "No articles found.", doc.Find("p.empty").Text())
	assert.Equal(t, 0, doc.Find("nav.tabs li.tab.active").Length())
}

func TestPageHandler_UpstreamFailure(t *testing.T) {
	s := newTestServer(t)
	s.cms.failArticles = http.StatusInternalServerError

	before := testutil.ToFloat64(pagination.ErrorsTotal.WithLabelValues("upstream"))

	rec, doc := s.get(t, "/category/javascript")
	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.NotNil(t, doc)

	assert.Equal(t, "502", doc.Find("main.error h1").Text())
	assert.Equal(t, 0, doc.Find("ul.articles").Length(), "no partial page")
	assert.Equal(t, rec.Header().Get(requestid.RequestIDHeader), doc.Find("p.request-id code").Text())
	assert.Equal(t, float64(1), testutil.ToFloat64(pagination.ErrorsTotal.WithLabelValues("upstream"))-before)
}

type stubLoader struct {
	err error
}

func (s stubLoader) LoadPage(context.Context, catUC.RouteParams) (*catUC.Page, error) {
	return nil, s.err
}

func TestPageHandler_InternalFailure(t *testing.T) {
	renderer, err := view.NewRenderer()
	require.NoError(t, err)
	h := &category.PageHandler{Svc: stubLoader{err: catUC.ErrNoRepository}, Renderer: renderer}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/category/javascript", nil)
	req.SetPathValue("category", "javascript")
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Something went wrong")
}

func TestPageHandler_ClientGone(t *testing.T) {
	renderer, err := view.NewRenderer()
	require.NoError(t, err)
	h := &category.PageHandler{Svc: stubLoader{err: fmt.Errorf("fetch articles: %w", context.Canceled)}, Renderer: renderer}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/category/javascript", nil).WithContext(ctx))

	assert.Zero(t, rec.Body.Len(), "nothing is written for a departed client")
}

func TestWriteError(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/category/javascript?search=x", nil)
	s.page.WriteError(rec, req.WithContext(requestid.WithRequestID(req.Context(), "req-9")), http.StatusTooManyRequests)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Contains(t, rec.Body.String(), "searching too fast")
	assert.Contains(t, rec.Body.String(), "req-9")
}

func TestAPIHandler_Props(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.get(t, "/api/category/web-development")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var props category.PropsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &props))

	assert.Equal(t, "web-development", props.Slug)
	assert.Equal(t, pagination.Metadata{Page: 1, PageSize: 1, PageCount: 2, Total: 2}, props.Articles.Pagination)
	require.Len(t, props.Articles.Items, 1)
	assert.Equal(t, "CSS grid layouts", props.Articles.Items[0].Title)
	require.NotNil(t, props.Articles.Items[0].Author)
	assert.Equal(t, "mirza", props.Articles.Items[0].Author.Username)

	want := []category.CategoryDTO{
		{ID: 1, Title: "JavaScript", Slug: "javascript"},
		{ID: 2, Title: "Web development", Slug: "web-development"},
	}
	if diff := cmp.Diff(want, props.Categories.Items); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}
}

func TestAPIHandler_UpstreamFailure(t *testing.T) {
	s := newTestServer(t)
	s.cms.failArticles = http.StatusServiceUnavailable

	rec, _ := s.get(t, "/api/category/javascript")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error":"content service unavailable"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "InternalServerError", "upstream detail must not leak")
}

func TestAPIHandler_InternalFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	category.APIHandler{Svc: stubLoader{err: errors.New("boom")}}.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/category/x", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestAPIHandler_RecordsRequests(t *testing.T) {
	s := newTestServer(t)
	ok := pagination.RequestsTotal.WithLabelValues("200", "1-10", "category")
	before := testutil.ToFloat64(ok)

	rec, _ := s.get(t, "/api/category/javascript?page=2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(ok)-before)

	s.cms.failArticles = http.StatusServiceUnavailable
	failed := pagination.RequestsTotal.WithLabelValues("502", "11-50", "search")
	before = testutil.ToFloat64(failed)

	rec, _ = s.get(t, "/api/category/javascript?page=12&search=hooks")
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(failed)-before)
}

func TestPageHandler_RecordsRequestedPageOnFailure(t *testing.T) {
	renderer, err := view.NewRenderer()
	require.NoError(t, err)
	h := &category.PageHandler{
		Svc:        stubLoader{err: catUC.ErrNoRepository},
		Renderer:   renderer,
		Pagination: pagination.Config{DefaultPage: 1, PageSize: 6, MaxPageSize: 50},
	}
	failed := pagination.RequestsTotal.WithLabelValues("500", "51-100", "category")
	before := testutil.ToFloat64(failed)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/category/javascript?page=60", nil)
	req.SetPathValue("category", "javascript")
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(failed)-before)
}
