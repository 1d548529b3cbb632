// Package gate guards protected dashboard routes at the edge. For each
// matched request it forwards the session cookie to the backend's refresh
// endpoint and admits the request only on a successful response; rejections
// and unreachable validation both collapse to a redirect to the landing
// route. A host-based bypass list keeps local development usable without
// production cookies.
package gate
