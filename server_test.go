package admaiora_test

import (
	"context"
	"io"
	"io/fs"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-admaiora"
	contactcomponent "github.com/goliatone/go-admaiora/components/contact"
	"github.com/goliatone/go-admaiora/internal/config"
	pkgcontact "github.com/goliatone/go-admaiora/pkg/contact"
	pkgopenapi "github.com/goliatone/go-admaiora/pkg/openapi"
	"github.com/goliatone/go-admaiora/pkg/testsupport"
)

func newTestServer(t *testing.T) (*admaiora.Server, *testsupport.RecordingChannel) {
	t.Helper()
	channel := &testsupport.RecordingChannel{}
	srv, err := admaiora.NewServer(config.Default(), admaiora.WithChannel(channel))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return srv, channel
}

func get(t *testing.T, client *http.Client, target string) (*http.Response, string) {
	t.Helper()
	res, err := client.Get(target)
	if err != nil {
		t.Fatalf("GET %s: %v", target, err)
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return res, string(body)
}

func TestServer_PagesAndNotFound(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	for _, path := range []string{"/", "/about", "/services", "/success-stories", "/blog", "/contact"} {
		res, _ := get(t, ts.Client(), ts.URL+path)
		if res.StatusCode != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, res.StatusCode)
		}
	}

	res, body := get(t, ts.Client(), ts.URL+"/nope")
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
	if !strings.Contains(body, "404 Page Not Found") {
		t.Fatalf("expected not found page, got:\n%s", body)
	}
}

func TestServer_ContactRoundTrip(t *testing.T) {
	srv, channel := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := ts.Client()
	client.Jar = jar

	get(t, client, ts.URL+"/contact")

	res, err := client.PostForm(ts.URL+"/contact", url.Values{
		"name":    {"Ada Lovelace"},
		"email":   {"ada@example.com"},
		"company": {"Analytical Engines"},
		"message": {"We need a sourcing review."},
	})
	require.NoError(t, err)
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()

	// the client follows the 303 back to the contact page
	if res.StatusCode != http.StatusOK || res.Request.Method != http.MethodGet {
		t.Fatalf("expected redirected GET, got %s %d", res.Request.Method, res.StatusCode)
	}
	if !strings.Contains(string(body), "Your Inquiry Has Been Received") {
		t.Fatalf("expected success banner on the contact page")
	}

	require.Eventually(t, func() bool { return channel.Len() == 1 }, time.Second, 5*time.Millisecond)
	want := []pkgcontact.FormValues{{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Company: "Analytical Engines",
		Message: "We need a sourcing review.",
	}}
	if diff := cmp.Diff(want, channel.Deliveries()); diff != "" {
		t.Fatalf("delivery mismatch (-want +got):\n%s", diff)
	}
}

func TestServer_ServeStopsOnCancel(t *testing.T) {
	srv, _ := newTestServer(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		res, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		res.Body.Close()
		return res.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatalf("serve did not stop")
	}
}

func TestNewChannel(t *testing.T) {
	channel, err := admaiora.NewChannel(config.ContactConfig{}, nil)
	require.NoError(t, err)
	if _, ok := channel.(pkgcontact.LogChannel); !ok {
		t.Fatalf("expected LogChannel without endpoint, got %T", channel)
	}

	channel, err = admaiora.NewChannel(config.ContactConfig{Endpoint: "https://forms.example.com/", FormName: "inquiry"}, nil)
	require.NoError(t, err)
	post, ok := channel.(*pkgcontact.FormPostChannel)
	if !ok {
		t.Fatalf("expected FormPostChannel, got %T", channel)
	}
	if post.FormName() != "inquiry" {
		t.Fatalf("unexpected form name %q", post.FormName())
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	if _, err := fs.Stat(admaiora.EmbeddedTemplates(), "templates/form.tmpl"); err != nil {
		t.Fatalf("expected form template: %v", err)
	}
	if _, err := fs.Stat(admaiora.SiteTemplates(), "layout.tmpl"); err != nil {
		t.Fatalf("expected layout template: %v", err)
	}
}

func TestLoaderParserFacade(t *testing.T) {
	loader := admaiora.NewLoader(pkgopenapi.WithFileSystem(contactcomponent.SchemaFS()))
	doc, err := loader.Load(context.Background(), pkgopenapi.SourceFromFS("contact.yaml"))
	require.NoError(t, err)

	ops, err := admaiora.NewParser().Operations(context.Background(), doc)
	require.NoError(t, err)
	if _, ok := ops["submitContact"]; !ok {
		t.Fatalf("expected submitContact operation, got %v", ops)
	}
}
