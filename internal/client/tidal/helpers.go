package tidal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// fetchJSON fetches JSON from the specified URI.
//
//nolint:revive // Has no sense, it's cause Go doesn't allow struct methods to be generic.
func fetchJSON[T any](c *ClientImpl, ctx context.Context, uri string) (*T, error) {
	return fetchJSONWithQuery[T](c, ctx, uri, nil)
}

// fetchJSONWithQuery fetches JSON from the specified URI with the specified query.
//
//nolint:revive // Has no sense, it's cause Go doesn't allow struct methods to be generic.
func fetchJSONWithQuery[T any](
	c *ClientImpl,
	ctx context.Context,
	uri string,
	query url.Values,
) (*T, error) {
	route, err := url.JoinPath(c.baseURL, uri)
	if err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, route, http.NoBody)
	if err != nil {
		return nil, err
	}

	if query != nil {
		request.URL.RawQuery = query.Encode()
	}

	response, err := c.apiHTTPClient.Do(request)
	if err != nil {
		return nil, err
	}

	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, response.StatusCode)
	}

	var result T
	if err = json.NewDecoder(response.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}

// listPaged walks a paginated list endpoint until all reported items are collected.
// Extra query parameters are preserved across pages.
//
//nolint:revive // Has no sense, it's cause Go doesn't allow struct methods to be generic.
func listPaged[T any](
	c *ClientImpl,
	ctx context.Context,
	uri string,
	query url.Values,
) ([]T, error) {
	var (
		items  []T
		offset int64
	)

	for {
		pageQuery := url.Values{}
		for key, values := range query {
			pageQuery[key] = values
		}

		pageQuery.Set("limit", strconv.Itoa(pageLimit))
		pageQuery.Set("offset", strconv.FormatInt(offset, 10))

		page, err := fetchJSONWithQuery[pagedItems[T]](c, ctx, uri, pageQuery)
		if err != nil {
			return nil, err
		}

		items = append(items, page.Items...)

		// An empty page guards against a server-reported total that never converges.
		if len(page.Items) == 0 {
			break
		}

		offset += int64(len(page.Items))
		if offset >= page.TotalNumberOfItems {
			break
		}
	}

	return items, nil
}
