/*
Copyright 2024-2025 the Unikorn Authors.

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

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Service Health", func() {
	Context("When checking the service is up", func() {
		Describe("Given the service is running", func() {
			It("should answer the health check with 201 Created", func() {
				resp, err := bookings.HealthCheck(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusCreated))
				Expect(resp.String()).To(Equal("Created"))

				suite.ExpectSchemaValid(ctx, resp)
			})

			It("should answer within the request timeout", func() {
				resp, err := bookings.HealthCheck(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.Duration).To(BeNumerically("<", config.RequestTimeout))
			})
		})
	})
})
