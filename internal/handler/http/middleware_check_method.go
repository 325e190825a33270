// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-lead-keeper/internal/utils"
	"github.com/MKhiriev/go-lead-keeper/models"
)

// CheckHTTPMethod returns the router's MethodNotAllowed handler. A request
// whose path exists but whose method is not routed is answered as if the
// path did not exist, so unsupported methods never reveal a route.
//
// Parameterised routes (/api/leads/{leadID}) are resolved with
// [chi.Mux.Match]; a method that does match is handed back to the router.
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if router.Match(chi.NewRouteContext(), r.Method, r.URL.Path) {
			router.ServeHTTP(w, r)
			return
		}

		notFound(w, r)
	}
}

// notFound writes the JSON 404 body shared by unknown paths and unrouted
// methods.
func notFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.ErrorResponse{Detail: http.StatusText(http.StatusNotFound)}, http.StatusNotFound)
}
