// Package webapi is a client for the Steam public web api.
//
// Upstream responses are loosely typed and differ in shape from endpoint to endpoint. Every
// normalizer in this package calls the upstream exactly once and maps the response into a
// stable value wrapped in a Result. Logical failures (bad input, missing or rejected keys,
// unknown resources, upstream faults and unexpected response shapes) are reported through
// Result.Error. Only transport failures and programmer errors are returned as a Go error.
//
// A Client holds the api key used for requests. The package level functions forward to a
// shared default client for callers that only ever need a single key.
//
// There is no caching, rate limiting or retrying. A failed call is reported once.
package webapi
