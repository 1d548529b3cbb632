// Package transitkit is the client-resident session and state layer for
// the DuckCross transit-status dashboard. It keeps the authentication
// session alive across restarts, gates access to protected views,
// reconciles optimistic preference mutations with the backend, and
// maintains a rate-limited polling cache of live station status.
//
// The packages compose around one apiclient.Client:
//
//   - pkg/session owns the credential lifecycle and durable persistence.
//   - pkg/gate admits or redirects requests to protected routes.
//   - pkg/profile applies preference mutations optimistically with
//     snapshot rollback.
//   - pkg/stationcache polls the status feed under a cooldown window.
//
// The root package wires them together; see Client and New.
package transitkit
