package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/SscSPs/workspace_dashboard/internal/core/domain"
)

const uploadFieldName = "file"

// ListAttachments calls GET /workspaces/:id/attachments.
func (c *Client) ListAttachments(ctx context.Context, workspaceID string) ([]domain.Attachment, error) {
	out := []domain.Attachment{}
	if _, err := c.doJSON(ctx, http.MethodGet, c.endpoint("workspaces", workspaceID, "attachments"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UploadAttachment streams file as multipart/form-data to POST /workspaces/:id/attachments.
func (c *Client) UploadAttachment(ctx context.Context, workspaceID string, file domain.FileUpload) (*domain.Attachment, error) {
	if file.Content == nil {
		return nil, fmt.Errorf("upload %q: empty content", file.FileName)
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeMultipartFile(mw, file))
	}()

	req, err := c.newRequest(ctx, http.MethodPost, c.endpoint("workspaces", workspaceID, "attachments"), pr, mw.FormDataContentType())
	if err != nil {
		pr.Close()
		return nil, err
	}
	resp, err := c.send(req)
	if err != nil {
		pr.Close()
		return nil, err
	}
	defer resp.Body.Close()

	var out domain.Attachment
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

func writeMultipartFile(mw *multipart.Writer, file domain.FileUpload) error {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{
		"name":     uploadFieldName,
		"filename": file.FileName,
	}))
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := mw.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file.Content); err != nil {
		return err
	}
	return mw.Close()
}

// DownloadAttachment calls GET /workspaces/:id/attachments/:attachmentId and
// hands the open body to the caller.
func (c *Client) DownloadAttachment(ctx context.Context, workspaceID, attachmentID string) (*domain.AttachmentContent, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.endpoint("workspaces", workspaceID, "attachments", attachmentID), nil, "")
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "*/*")
	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}

	content := &domain.AttachmentContent{
		FileName:    attachmentID,
		ContentType: resp.Header.Get("Content-Type"),
		Size:        resp.ContentLength,
		Body:        resp.Body,
	}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		content.FileName = params["filename"]
	}
	if content.ContentType == "" {
		content.ContentType = "application/octet-stream"
	}
	return content, nil
}
