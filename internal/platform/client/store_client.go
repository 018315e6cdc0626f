package client

import (
	"FragFS/internal/domain"
	"FragFS/internal/platform/server/handler/file"
	"FragFS/internal/platform/server/handler/response"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-resty/resty/v2"
)

const (
	files_endpoint      = "/files"
	layout_endpoint     = "/layout"
	defragment_endpoint = "/defragment"
	wipe_endpoint       = "/wipe"
	restore_endpoint    = "/restore"
)

// StoreClient talks to the HTTP API and turns error statuses back into the
// store's sentinel errors.
type StoreClient struct {
	client    *resty.Client
	serverUrl string
}

func NewStoreClient(serverUrl string) *StoreClient {
	return &StoreClient{
		client:    resty.New(),
		serverUrl: serverUrl,
	}
}

func (c *StoreClient) Create(name string, size float64) ([]int, error) {
	var resp file.CreateFileResponse
	body := file.CreateFileRequest{Name: name, Size: size}
	r, err := c.client.R().SetResult(&resp).SetError(&response.ErrorResponse{}).SetBody(&body).
		Post(c.serverUrl + files_endpoint)
	if err := check(r, err, domain.ErrNotFound); err != nil {
		return nil, err
	}
	return resp.Blocks, nil
}

func (c *StoreClient) Delete(name string) (int, error) {
	var resp file.DeleteFileResponse
	r, err := c.client.R().SetResult(&resp).SetError(&response.ErrorResponse{}).
		Delete(c.fileUri(name))
	if err := check(r, err, domain.ErrNotFound); err != nil {
		return 0, err
	}
	return resp.Freed, nil
}

func (c *StoreClient) Resize(name string, size float64) (int, error) {
	var resp file.ResizeFileResponse
	body := file.ResizeFileRequest{Size: size}
	r, err := c.client.R().SetResult(&resp).SetError(&response.ErrorResponse{}).SetBody(&body).
		Put(c.fileUri(name))
	if err := check(r, err, domain.ErrNotFound); err != nil {
		return 0, err
	}
	return resp.BlockCount, nil
}

func (c *StoreClient) File(name string) (*domain.File, error) {
	var resp domain.File
	r, err := c.client.R().SetResult(&resp).SetError(&response.ErrorResponse{}).
		Get(c.fileUri(name))
	if err := check(r, err, domain.ErrNotFound); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *StoreClient) Layout() (*domain.Layout, error) {
	return c.layoutCall(http.MethodGet, layout_endpoint, domain.ErrNotFound)
}

func (c *StoreClient) Defragment() (*domain.Layout, error) {
	return c.layoutCall(http.MethodPost, defragment_endpoint, domain.ErrNotFound)
}

func (c *StoreClient) Wipe() (*domain.Layout, error) {
	return c.layoutCall(http.MethodPost, wipe_endpoint, domain.ErrNotFound)
}

// Restore reports ErrNoBackup when the server has no snapshot.
func (c *StoreClient) Restore() (*domain.Layout, error) {
	return c.layoutCall(http.MethodPost, restore_endpoint, domain.ErrNoBackup)
}

func (c *StoreClient) layoutCall(method, endpoint string, notFound error) (*domain.Layout, error) {
	var resp domain.Layout
	r, err := c.client.R().SetResult(&resp).SetError(&response.ErrorResponse{}).
		Execute(method, c.serverUrl+endpoint)
	if err := check(r, err, notFound); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *StoreClient) fileUri(name string) string {
	return c.serverUrl + files_endpoint + "/" + url.PathEscape(name)
}

func check(r *resty.Response, err error, notFound error) error {
	if err != nil {
		return err
	}
	if !r.IsError() {
		return nil
	}
	message := r.Status()
	if body, ok := r.Error().(*response.ErrorResponse); ok && body.Error != "" {
		message = body.Error
	}
	if r.StatusCode() == http.StatusNotFound {
		return fmt.Errorf("%w (%s)", notFound, message)
	}
	if kind := errorKind(r.StatusCode()); kind != nil {
		return fmt.Errorf("%w (%s)", kind, message)
	}
	return fmt.Errorf("server answered %s: %s", r.Status(), message)
}

func errorKind(status int) error {
	switch status {
	case http.StatusBadRequest:
		return domain.ErrInvalidSize
	case http.StatusConflict:
		return domain.ErrDuplicateName
	case http.StatusInsufficientStorage:
		return domain.ErrInsufficientSpace
	case http.StatusUnprocessableEntity:
		return domain.ErrCorruptSnapshot
	default:
		return nil
	}
}
