// Package account mounts the account HTTP endpoints: registration, login,
// logout, verification and authentication method management. Gated routes
// run behind auth.Gate and read the account from the request context.
package account
