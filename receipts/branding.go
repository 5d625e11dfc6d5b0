package receipts

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
)

// Branding supplies the logo printed on receipts. It is decoration only:
// renderers must carry on without it when Logo fails.
type Branding interface {
	// Logo returns an <img> src, or "" for no logo.
	Logo(ctx context.Context) (string, error)
}

type NoBranding struct{}

func (NoBranding) Logo(context.Context) (string, error) { return "", nil }

const maxLogoBytes = 512 * 1024

// CloudinaryBranding fetches the school logo from a Cloudinary asset and
// inlines it as a data URI so the PDF does not depend on network access.
type CloudinaryBranding struct {
	cld      *cloudinary.Cloudinary
	publicID string
	http     *http.Client
}

func NewCloudinaryBranding(cloudinaryURL, publicID string) (*CloudinaryBranding, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, err
	}
	return &CloudinaryBranding{
		cld:      cld,
		publicID: publicID,
		http:     &http.Client{Timeout: 5 * time.Second},
	}, nil
}

func (b *CloudinaryBranding) Logo(ctx context.Context) (string, error) {
	asset, err := b.cld.Image(b.publicID)
	if err != nil {
		return "", err
	}
	assetURL, err := asset.String()
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := b.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("logo fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxLogoBytes))
	if err != nil {
		return "", err
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
