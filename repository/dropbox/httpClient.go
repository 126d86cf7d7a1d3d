package dropboxrepo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Aurosonic7/RentaProductoServer/util/httpx"
)

const (
	uploadURL   = "https://content.dropboxapi.com/2/files/upload"
	deleteURL   = "https://api.dropboxapi.com/2/files/delete_v2"
	tempLinkURL = "https://api.dropboxapi.com/2/files/get_temporary_link"
)

type httpRepo struct {
	accessToken string
	client      *http.Client
}

func NewHTTP(accessToken string) Repo {
	return &httpRepo{accessToken: accessToken, client: httpx.Client()}
}

func (r *httpRepo) Upload(ctx context.Context, path string, contents []byte) (string, error) {
	arg, _ := json.Marshal(map[string]any{
		"path":       path,
		"mode":       "add",
		"autorename": true,
		"mute":       true,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(contents))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+r.accessToken)
	req.Header.Set("Dropbox-API-Arg", string(arg))
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("dropbox upload failed: %s", resp.Status)
	}

	var out struct {
		PathDisplay string `json:"path_display"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.PathDisplay == "" {
		return path, nil
	}
	return out.PathDisplay, nil
}

func (r *httpRepo) Delete(ctx context.Context, path string) error {
	resp, err := r.rpc(ctx, deleteURL, map[string]string{"path": path})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("dropbox delete failed: %s", resp.Status)
	}
	return nil
}

func (r *httpRepo) TemporaryLink(ctx context.Context, path string) (string, error) {
	resp, err := r.rpc(ctx, tempLinkURL, map[string]string{"path": path})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("dropbox temporary link failed: %s", resp.Status)
	}

	var out struct {
		Link string `json:"link"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Link, nil
}

func (r *httpRepo) rpc(ctx context.Context, url string, body any) (*http.Response, error) {
	b, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+r.accessToken)
	req.Header.Set("Content-Type", "application/json")
	return r.client.Do(req)
}
