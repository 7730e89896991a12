// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package observe records route compilation metrics.
//
// A [Recorder] implements compiler.Observer. Register it on a compiler and
// every compilation updates three instruments:
//
//   - route_compilations_total: counter, labelled by result (ok or error),
//     error code and whether the route has a host pattern
//   - route_compile_duration_seconds: histogram of compile times
//   - route_variables: histogram of variable counts of compiled routes
//
// By default the instruments are exported to a private Prometheus registry:
//
//	rec, err := observe.New()
//	if err != nil {
//	    return err
//	}
//	defer rec.Shutdown(ctx)
//
//	c := compiler.New(compiler.WithObserver(rec))
//	http.Handle("/metrics", rec.Handler())
//
// Use WithMeterProvider to record into an existing OpenTelemetry pipeline.
package observe
