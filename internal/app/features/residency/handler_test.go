package residency_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/barangayhub/internal/app/client/civic"
	uierrors "github.com/dalemusser/barangayhub/internal/app/features/errors"
	"github.com/dalemusser/barangayhub/internal/app/features/residency"
	"github.com/dalemusser/barangayhub/internal/app/system/auth"
	"github.com/dalemusser/barangayhub/internal/app/system/session"
	"go.uber.org/zap"
)

const pendingBody = `{"user":{"id":"1","role":"residents","profile":{"residents_id":"R-1","verification_status":"pending"}}}`

func newTestHandler(t *testing.T, uploads *int) *residency.Handler {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/profile/upload-residency-verification":
			if uploads != nil {
				*uploads++
			}
			// Drain the multipart body like the real upstream would.
			_, _ = io.Copy(io.Discard, r.Body)
			w.Write([]byte(`{"image_path":"uploads/r-1.jpg"}`))
		case "/profile":
			w.Write([]byte(pendingBody))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	logger := zap.NewNop()
	client := civic.New(srv.URL, "", srv.Client(), logger)
	sessions := session.New(client, time.Minute, logger)
	sessionMgr, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return residency.NewHandler(client, sessions, sessionMgr, uierrors.NewErrorLogger(logger), logger)
}

func multipartUpload(t *testing.T, filename string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("residency_verification_image", filename)
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("fake image bytes"))
	mw.Close()

	req := httptest.NewRequest("POST", "/residents/residencyVerification", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return auth.WithTestUser(req, &auth.SessionUser{
		ID:    "1",
		Role:  "residents",
		Creds: civic.Credentials{Token: "tok"},
	})
}

func TestHandleUpload_Success(t *testing.T) {
	var uploads int
	handler := newTestHandler(t, &uploads)

	rec := httptest.NewRecorder()
	handler.HandleUpload(rec, multipartUpload(t, "proof.jpg"))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/residents/residencyVerification?uploaded=1" {
		t.Errorf("Location = %q", loc)
	}
	if uploads != 1 {
		t.Errorf("upstream uploads = %d, want 1", uploads)
	}
}

func TestHandleUpload_RejectsNonImage(t *testing.T) {
	var uploads int
	handler := newTestHandler(t, &uploads)

	rec := httptest.NewRecorder()
	handler.HandleUpload(rec, multipartUpload(t, "proof.pdf"))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
	if uploads != 0 {
		t.Errorf("upstream uploads = %d, want 0", uploads)
	}
}

func TestHandleUpload_MissingFile(t *testing.T) {
	handler := newTestHandler(t, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("unrelated", "value")
	mw.Close()

	req := httptest.NewRequest("POST", "/residents/residencyVerification", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "1", Role: "residents", Creds: civic.Credentials{Token: "tok"}})

	rec := httptest.NewRecorder()
	handler.HandleUpload(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestServeDenied_RedirectsWhenNotDenied(t *testing.T) {
	handler := newTestHandler(t, nil)

	req := httptest.NewRequest("GET", "/residency-denied", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "1", Role: "residents", Creds: civic.Credentials{Token: "tok"}})
	rec := httptest.NewRecorder()
	handler.ServeDenied(rec, req)

	if loc := rec.Header().Get("Location"); loc != "/residents/dashboard" {
		t.Errorf("Location = %q, want /residents/dashboard", loc)
	}
}
