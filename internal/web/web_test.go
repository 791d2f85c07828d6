package web

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/mmynk/wispgen/internal/service"
	"github.com/mmynk/wispgen/internal/session"
	"github.com/mmynk/wispgen/internal/storage/sqlite"
	"github.com/mmynk/wispgen/internal/wizard"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	dir, err := os.MkdirTemp("", "web-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	store, err := sqlite.New(filepath.Join(dir, "web.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	sessions, err := session.NewManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}
	srv, err := NewServer(wizard.NewController(store, wizard.Options{}), service.NewWisps(store, service.Options{}), sessions)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	mux := http.NewServeMux()
	srv.Register(mux)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

func get(t *testing.T, c *http.Client, u string) (*http.Response, string) {
	t.Helper()
	resp, err := c.Get(u)
	if err != nil {
		t.Fatalf("GET %s failed: %v", u, err)
	}
	return resp, readBody(t, resp)
}

func post(t *testing.T, c *http.Client, u string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := c.PostForm(u, form)
	if err != nil {
		t.Fatalf("POST %s failed: %v", u, err)
	}
	return resp, readBody(t, resp)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return string(b)
}

var submissions = []url.Values{
	{
		"company_name":       {"Acme CPA"},
		"street_address":     {"1 Main St"},
		"city":               {"Nashua"},
		"state":              {"NH"},
		"zip_code":           {"03060"},
		"contact_email":      {"owner@acme.test"},
		"company_size":       {"1-10"},
		"industry":           {"accounting"},
		"prepared_by":        {"Pat Doe"},
		"annual_review_date": {"2027-01-15"},
	},
	{
		"personal_info_types": {"financial"},
		"data_retention":      {"7years"},
	},
	{"quickbooks": {"on"}},
	{"mfa_enabled": {"on"}, "mfa_vendor": {"Duo"}},
	{"vendor_list": {"Payroll Co."}},
	{"qualified_individual_name": {"Sam Lee"}},
}

// completeWizard walks every step and returns the new plan's id.
func completeWizard(t *testing.T, ts *httptest.Server, c *http.Client) string {
	t.Helper()

	resp, body := get(t, c, ts.URL+"/wizard/start")
	if resp.Request.URL.Path != "/wizard/step/1" || !strings.Contains(body, "company_name") {
		t.Fatalf("start landed on %s", resp.Request.URL)
	}

	for i, form := range submissions {
		n := i + 1
		resp, _ = post(t, c, ts.URL+"/wizard/step/"+strconv.Itoa(n), form)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("step %d: status %d", n, resp.StatusCode)
		}
		if n < len(submissions) {
			if want := "/wizard/step/" + strconv.Itoa(n+1); resp.Request.URL.Path != want {
				t.Fatalf("step %d redirected to %s, want %s", n, resp.Request.URL.Path, want)
			}
		}
	}

	if resp.Request.URL.Path != "/wizard/complete" {
		t.Fatalf("last step redirected to %s", resp.Request.URL)
	}
	id := resp.Request.URL.Query().Get("id")
	if id == "" {
		t.Fatal("expected wisp id in completion url")
	}
	return id
}

func TestWizardFlow(t *testing.T) {
	ts := setupTestServer(t)
	c := newClient(t)

	id := completeWizard(t, ts, c)

	_, body := get(t, c, ts.URL+"/dashboard")
	if !strings.Contains(body, "Acme CPA") || !strings.Contains(body, "/wisp/"+id) {
		t.Error("dashboard should list the new plan")
	}

	resp, body := get(t, c, ts.URL+"/wisp/"+id)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("view status %d", resp.StatusCode)
	}
	for _, want := range []string{"Acme CPA", "Accounting/CPA", "Duo", "Yes"} {
		if !strings.Contains(body, want) {
			t.Errorf("view missing %q", want)
		}
	}

	// The draft is gone, so a new visit starts over with empty fields.
	_, body = get(t, c, ts.URL+"/wizard/step/1")
	if strings.Contains(body, `value="Acme CPA"`) {
		t.Error("expected a fresh draft after completion")
	}
}

func TestStepValidation(t *testing.T) {
	ts := setupTestServer(t)
	c := newClient(t)

	resp, body := post(t, c, ts.URL+"/wizard/step/1", url.Values{"city": {"Nashua"}})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}
	if !strings.Contains(body, "This field is required.") {
		t.Error("expected field errors in the page")
	}
	if !strings.Contains(body, `value="Nashua"`) {
		t.Error("expected submitted values to be kept")
	}
}

func TestStepPrefill(t *testing.T) {
	ts := setupTestServer(t)
	c := newClient(t)

	get(t, c, ts.URL+"/wizard/start")
	post(t, c, ts.URL+"/wizard/step/1", submissions[0])

	_, body := get(t, c, ts.URL+"/wizard/step/1")
	if !strings.Contains(body, `value="Acme CPA"`) {
		t.Error("expected step 1 to be pre-filled")
	}
}

func TestStepOutOfRange(t *testing.T) {
	ts := setupTestServer(t)
	c := newClient(t)

	for _, n := range []string{"0", "7", "abc"} {
		resp, _ := get(t, c, ts.URL+"/wizard/step/"+n)
		if resp.Request.URL.Path != "/" {
			t.Errorf("step %s redirected to %s, want /", n, resp.Request.URL.Path)
		}
	}
}

func TestCompleteWithoutAnswers(t *testing.T) {
	ts := setupTestServer(t)
	c := newClient(t)

	resp, body := get(t, c, ts.URL+"/wizard/complete")
	if resp.Request.URL.Path != "/wizard/step/1" {
		t.Errorf("redirected to %s, want step 1", resp.Request.URL.Path)
	}
	if !strings.Contains(body, "Please complete all wizard steps") {
		t.Error("expected incomplete submission flash")
	}
}

func TestPDFDownload(t *testing.T) {
	ts := setupTestServer(t)
	c := newClient(t)
	id := completeWizard(t, ts, c)

	resp, body := get(t, c, ts.URL+"/wisp/"+id+"/pdf")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); cd != `attachment; filename="Acme CPA_WISP.pdf"` {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !strings.HasPrefix(body, "%PDF-") {
		t.Error("body is not a PDF")
	}

	resp, _ = get(t, c, ts.URL+"/wisp/"+id+"/pdf?variant=summary")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("summary status = %d", resp.StatusCode)
	}
	resp, _ = get(t, c, ts.URL+"/wisp/"+id+"/pdf?variant=brief")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown variant status = %d, want 400", resp.StatusCode)
	}
}

func TestDeleteWithFlash(t *testing.T) {
	ts := setupTestServer(t)
	c := newClient(t)
	id := completeWizard(t, ts, c)

	resp, body := post(t, c, ts.URL+"/wisp/"+id+"/delete", nil)
	if resp.Request.URL.Path != "/dashboard" {
		t.Fatalf("redirected to %s", resp.Request.URL.Path)
	}
	if !strings.Contains(body, "WISP deleted successfully") {
		t.Error("expected success flash")
	}

	// The flash is shown once.
	_, body = get(t, c, ts.URL+"/dashboard")
	if strings.Contains(body, "WISP deleted successfully") {
		t.Error("flash should not repeat")
	}

	_, body = post(t, c, ts.URL+"/wisp/"+id+"/delete", nil)
	if !strings.Contains(body, "WISP not found") {
		t.Error("expected not found flash")
	}
}

func TestNotFound(t *testing.T) {
	ts := setupTestServer(t)
	c := newClient(t)

	for _, path := range []string{"/wisp/missing", "/wisp/missing/pdf", "/wizard/complete?id=missing"} {
		resp, _ := get(t, c, ts.URL+path)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", path, resp.StatusCode)
		}
	}
}

func TestHealthz(t *testing.T) {
	ts := setupTestServer(t)
	resp, body := get(t, newClient(t), ts.URL+"/healthz")
	if resp.StatusCode != http.StatusOK || body != "ok" {
		t.Errorf("healthz = %d %q", resp.StatusCode, body)
	}
}
