package participant

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"connect-chat/domain"
	chaterrors "connect-chat/errors"

	"github.com/gabriel-vasile/mimetype"
	"github.com/hashicorp/go-retryablehttp"
)

// DescribeUpload builds the upload descriptor for a local file.
// The content type is sniffed from the file bytes rather than trusted from
// the extension, since the control plane rejects mismatched types.
func DescribeUpload(path string) (domain.AttachmentUpload, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.AttachmentUpload{}, fmt.Errorf("stat attachment: %w", err)
	}
	if info.IsDir() {
		return domain.AttachmentUpload{}, fmt.Errorf("attachment %s is a directory", path)
	}

	mime, err := mimetype.DetectFile(path)
	if err != nil {
		return domain.AttachmentUpload{}, fmt.Errorf("detect attachment type: %w", err)
	}

	return domain.AttachmentUpload{
		Name:        filepath.Base(path),
		ContentType: mime.String(),
		SizeBytes:   info.Size(),
	}, nil
}

// UploadFile sends the file bytes to the pre-signed URL of the ticket.
// The pre-signed headers must be sent verbatim or the storage side rejects
// the signature, so the caller never adds its own.
func UploadFile(ctx context.Context, ticket domain.AttachmentTicket, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open attachment: %w", err)
	}
	defer func() { _ = file.Close() }()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPut, ticket.UploadURL, file)
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	for name, value := range ticket.Headers {
		req.Header.Set(name, value)
	}

	uploader := retryablehttp.NewClient()
	uploader.RetryMax = 2
	uploader.Logger = nil

	resp, err := uploader.Do(req)
	if err != nil {
		return fmt.Errorf("%w: upload %s: %v", chaterrors.ErrNetwork, ticket.AttachmentID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: upload %s returned %d", chaterrors.ErrNetwork, ticket.AttachmentID, resp.StatusCode)
	}
	return nil
}
