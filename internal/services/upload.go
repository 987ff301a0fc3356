package services

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/raymondartguy/portfolio-backend/internal/storage"
	"github.com/raymondartguy/portfolio-backend/pkg/response"

	_ "golang.org/x/image/webp"
	"golang.org/x/text/unicode/norm"
)

// UploadService issues short-lived signed upload tickets and accepts
// the matching blob writes. The signature covers key, mime type and
// expiry so the client cannot alter any of the three after issuance.
type UploadService struct {
	store         storage.ObjectStore
	signingSecret string
	expiry        time.Duration
}

func NewUploadService(store storage.ObjectStore, signingSecret string, expirySeconds int) *UploadService {
	return &UploadService{
		store:         store,
		signingSecret: signingSecret,
		expiry:        time.Duration(expirySeconds) * time.Second,
	}
}

type CreateUploadURLRequest struct {
	Filename  string `json:"filename"`
	MimeType  string `json:"mimeType"`
	ProjectID string `json:"projectId"`
}

type UploadTicket struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
	MimeType  string `json:"mimeType"`
	Expires   int64  `json:"expires"`
	Signature string `json:"signature"`
}

type StoredUpload struct {
	Key      string `json:"key"`
	MimeType string `json:"mimeType"`
	Size     int    `json:"size"`
	Width    *int   `json:"width"`
	Height   *int   `json:"height"`
}

// CreateUploadURL mints a signed one-shot upload ticket. A declared
// MIME type off the allow-list is normalized from the filename
// extension rather than rejected, so browsers that send
// application/octet-stream for GLB files still get a ticket.
func (s *UploadService) CreateUploadURL(req *CreateUploadURLRequest) (*UploadTicket, error) {
	filename := SanitizeFilename(req.Filename)
	mimeType := NormalizeMimeType(filename, req.MimeType)

	allowedModel := strings.HasPrefix(mimeType, "model/") ||
		strings.HasSuffix(filename, ".glb") || strings.HasSuffix(filename, ".gltf")
	allowedImage := strings.HasPrefix(mimeType, "image/")
	if !allowedModel && !allowedImage {
		return nil, response.NewBadRequest("Only image and GLB/GLTF files are allowed.")
	}

	scope := req.ProjectID
	if scope == "" {
		scope = "unassigned"
	}
	key := scope + "--" + uuid.New().String() + "-" + filename
	expires := time.Now().Add(s.expiry).Unix()
	signature := s.sign(key, mimeType, expires)

	params := url.Values{}
	params.Set("key", key)
	params.Set("mimeType", mimeType)
	params.Set("expires", strconv.FormatInt(expires, 10))
	params.Set("signature", signature)

	return &UploadTicket{
		Key:       key,
		UploadURL: "/api/admin/upload?" + params.Encode(),
		MimeType:  mimeType,
		Expires:   expires,
		Signature: signature,
	}, nil
}

// VerifyAndStore checks the ticket and writes the blob. Expiry is a
// hard deadline and is checked before the signature so an attacker
// learns nothing about signature validity from a stale ticket.
func (s *UploadService) VerifyAndStore(ctx context.Context, key, mimeType, expiresRaw, signature, contentType string, body []byte) (*StoredUpload, error) {
	if key == "" || mimeType == "" || expiresRaw == "" || signature == "" {
		return nil, response.NewBadRequest("key, mimeType, expires and signature are required.")
	}

	expires, err := strconv.ParseInt(expiresRaw, 10, 64)
	if err != nil {
		return nil, response.NewBadRequest("expires must be a unix timestamp.")
	}
	if time.Now().Unix() > expires {
		return nil, response.NewForbidden("Upload ticket has expired.")
	}

	expected := s.sign(key, mimeType, expires)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return nil, response.NewForbidden("Invalid upload signature.")
	}

	if len(body) == 0 {
		return nil, response.NewBadRequest("Upload body is empty.")
	}

	// The request's own Content-Type wins for storage metadata; the
	// signed mime type is the fallback.
	storedType := strings.TrimSpace(contentType)
	if storedType == "" {
		storedType = mimeType
	}

	if err := s.store.Put(ctx, key, body, storedType); err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	stored := &StoredUpload{
		Key:      key,
		MimeType: storedType,
		Size:     len(body),
	}
	if strings.HasPrefix(storedType, "image/") {
		if cfg, _, err := image.DecodeConfig(bytes.NewReader(body)); err == nil {
			stored.Width = &cfg.Width
			stored.Height = &cfg.Height
		}
	}
	return stored, nil
}

func (s *UploadService) sign(key, mimeType string, expires int64) string {
	mac := hmac.New(sha256.New, []byte(s.signingSecret))
	fmt.Fprintf(mac, "%s:%s:%d", key, mimeType, expires)
	return hex.EncodeToString(mac.Sum(nil))
}

// maxFilenameLen caps the sanitized filename so arbitrarily long
// client names cannot inflate object keys.
const maxFilenameLen = 140

// SanitizeFilename keeps letters, digits, dots, dashes and
// underscores; everything else collapses into a single dash. The
// result is safe inside an object key and a URL.
func SanitizeFilename(name string) string {
	name = norm.NFKD.String(strings.TrimSpace(name))
	var b strings.Builder
	dash := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_':
			b.WriteRune(r)
			dash = false
		default:
			if !dash {
				b.WriteByte('-')
			}
			dash = true
		}
	}
	out := b.String()
	if out == "" {
		return "file"
	}
	if len(out) > maxFilenameLen {
		out = out[:maxFilenameLen]
	}
	return out
}

// NormalizeMimeType strips parameters and lowercases the declared
// type. When the result is off the allow-list the filename extension
// decides, with application/octet-stream as the final fallback.
func NormalizeMimeType(filename, mimeType string) string {
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = mimeType[:idx]
	}
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if AllowedMimeTypes[mimeType] {
		return mimeType
	}

	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".jpg"), strings.HasSuffix(name, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(name, ".png"):
		return "image/png"
	case strings.HasSuffix(name, ".webp"):
		return "image/webp"
	case strings.HasSuffix(name, ".avif"):
		return "image/avif"
	case strings.HasSuffix(name, ".glb"):
		return "model/gltf-binary"
	case strings.HasSuffix(name, ".gltf"):
		return "model/gltf+json"
	}
	return "application/octet-stream"
}
