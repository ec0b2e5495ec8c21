// Package httpapi exposes policy validation over HTTP with a chi router.
//
//	GET  /healthz                       liveness, plus readiness checks when configured
//	GET  /v1/policies                   registered policies
//	GET  /v1/policies/{name}            one policy
//	POST /v1/policies/{name}/validate   validate a batch of records
//
// The validate body is a JSON array of objects by default. NDJSON and YAML are
// accepted with Content-Type application/x-ndjson and application/yaml. The
// optional "normalize" query parameter adds normalisers, comma separated.
//
// Responses: 200 {"valid":true}, 422 {"valid":false,"index":..,"field":..,"reason":..},
// 404 for unknown policies and 400 for malformed input. Every request carries
// a run id in the X-Run-ID header, taken from the request when valid.
package httpapi
