// internal/app/client/civic/upload.go
package civic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
)

// uploadField is the multipart field name the upstream expects for the
// proof-of-residency document.
const uploadField = "residency_verification_image"

// UploadResidencyVerification streams a proof-of-residency image to the
// upstream and returns the stored image path. The caller should force a
// session refresh afterwards so the new verification state is visible.
func (c *Client) UploadResidencyVerification(ctx context.Context, creds Credentials, filename string, file io.Reader) (string, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile(uploadField, safeUploadName(filename))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := c.newRequest(ctx, http.MethodPost, "/profile/upload-residency-verification", creds, pr)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("civic: upload residency verification: %w", err)
	}
	defer resp.Body.Close()

	if err := statusErr(resp.StatusCode, "/profile/upload-residency-verification"); err != nil {
		return "", err
	}

	var body struct {
		ImagePath string `json:"image_path"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("civic: decode upload response: %w", err)
	}
	return body.ImagePath, nil
}

// safeUploadName strips any client-supplied directory components and
// prefixes a UUID so upstream names never collide.
func safeUploadName(filename string) string {
	base := filepath.Base(filename)
	if base == "." || base == "/" || base == "" {
		base = "upload"
	}
	return uuid.NewString() + "-" + base
}
