package logmeinapi

import (
	"context"
	"fmt"
	"net/http"
)

const hostsEndpoint = "/hosts"

// ListHosts fetches every host of the account in a single request. A 2xx
// response without a hosts array is an error, not an empty account.
func (c *Client) ListHosts(ctx context.Context) ([]Host, error) {
	var list HostList
	if _, err := c.doJSON(ctx, http.MethodGet, hostsEndpoint, nil, &list); err != nil {
		return nil, fmt.Errorf("list hosts: %w", err)
	}
	return *list.Hosts, nil
}

// DeleteHosts removes the given hosts in one request and returns the
// response status. An empty ids slice sends nothing.
func (c *Client) DeleteHosts(ctx context.Context, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	status, err := c.doJSON(ctx, http.MethodDelete, hostsEndpoint, DeleteRequest{HostIDs: ids}, nil)
	if err != nil {
		return status, fmt.Errorf("delete hosts: %w", err)
	}
	return status, nil
}
