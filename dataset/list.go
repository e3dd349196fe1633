package dataset

import (
	"context"
	"net/url"
	"strconv"

	"github.com/matgraph/sdk/gemd"
	"github.com/matgraph/sdk/paging"
)

// DefaultPageSize is the page size ListObjects requests when none is
// given.
const DefaultPageSize = 100

// ListOption configures a listing.
type ListOption func(*listConfig)

type listConfig struct {
	objectType gemd.ObjectType
	pageSize   int
}

// WithObjectType restricts the listing to a single object type.
func WithObjectType(typ gemd.ObjectType) ListOption {
	return func(c *listConfig) {
		c.objectType = typ
	}
}

// WithPageSize sets how many objects each page requests.
func WithPageSize(n int) ListOption {
	return func(c *listConfig) {
		c.pageSize = n
	}
}

// ListObjects returns a pager over the dataset's stored objects,
// fetching pages lazily as the caller iterates. Objects come back with
// their references as links, exactly as registered.
func (d *Dataset) ListObjects(opts ...ListOption) paging.Pager[gemd.DataObject] {
	cfg := listConfig{pageSize: DefaultPageSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	path := d.objectsPath()
	fetch := func(ctx context.Context, cursor string) ([]gemd.DataObject, string, error) {
		params := url.Values{}
		params.Set("per_page", strconv.Itoa(cfg.pageSize))
		if cfg.objectType != "" {
			params.Set("type", cfg.objectType.String())
		}
		if cursor != "" {
			params.Set("cursor", cursor)
		}

		var resp struct {
			Objects []map[string]any `json:"objects"`
			Next    string           `json:"next"`
		}
		if err := d.transport.GetJSON(ctx, path, params, &resp); err != nil {
			return nil, "", err
		}

		objs := make([]gemd.DataObject, 0, len(resp.Objects))
		for _, w := range resp.Objects {
			obj, err := gemd.FromWire(w)
			if err != nil {
				return nil, "", err
			}
			objs = append(objs, obj)
		}
		return objs, resp.Next, nil
	}
	return paging.Pager[gemd.DataObject]{Fetch: fetch}
}
