// AngelaMos | 2026
// doc.go

// Package cli is the interactive terminal front end for InternHub.
//
// It keeps the session token and the pending-apply marker in a local store,
// talks to the API through the REST client, and after every command asks the
// apply workflow whether there is an application waiting for confirmation.
package cli
