/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package restapiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

func sendInternal[T any, V any](
	ctx context.Context,
	client httpClient,
	method string,
	requestURL string,
	request *T,
) (*V, error) {
	var buf bytes.Buffer

	if request != nil {
		if reqMarshalErr := json.NewEncoder(&buf).Encode(request); reqMarshalErr != nil {
			return nil, reqMarshalErr
		}
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		method,
		requestURL,
		&buf,
	)
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Content-Type", "application/json")

	return doInternal[V](client, httpReq)
}

func getInternal[V any](
	ctx context.Context,
	client httpClient,
	requestURL string,
	query url.Values,
) (*V, error) {
	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		requestURL,
		nil,
	)
	if err != nil {
		return nil, err
	}

	if len(query) > 0 {
		httpReq.URL.RawQuery = query.Encode()
	}

	return doInternal[V](client, httpReq)
}

func doInternal[V any](client httpClient, httpReq *http.Request) (*V, error) {
	resp, httpErr := client.Do(httpReq)
	if httpErr != nil {
		return nil, httpErr
	}

	var body []byte

	if resp.Body != nil {
		defer resp.Body.Close() //nolint:errcheck

		b, bodyErr := io.ReadAll(resp.Body)
		if bodyErr != nil {
			return nil, bodyErr
		}

		body = b
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %v with body %v",
			resp.StatusCode, string(body))
	}

	var final V

	if unmarshalErr := json.Unmarshal(body, &final); unmarshalErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, unmarshalErr)
	}

	return &final, nil
}
