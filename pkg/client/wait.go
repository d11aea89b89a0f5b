/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"
)

// WaitForReady polls the health check until it returns 201 or the timeout
// expires.  Transport errors during polling are logged and retried.
func (c *Client) WaitForReady(ctx context.Context, interval, timeout time.Duration) error {
	poll := func(ctx context.Context) (bool, error) {
		resp, err := c.HealthCheck(ctx)
		if err != nil {
			c.log.Info("service not ready", "baseURL", c.baseURL, "error", err.Error())

			return false, nil
		}

		return resp.StatusCode == http.StatusCreated, nil
	}

	if err := wait.PollUntilContextTimeout(ctx, interval, timeout, true, poll); err != nil {
		return fmt.Errorf("service at %s not ready: %w", c.baseURL, err)
	}

	return nil
}
