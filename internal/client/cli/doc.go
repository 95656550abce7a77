// Package cli provides the interactive LinkJournal command-line client.
//
// It wires configuration, the local session database, the identity
// provider, the REST client, and an interactive REPL over the cached data
// layer. Typical flow: restore or establish a session, then execute user
// commands against topics and journals.
//
// Key features:
//   - Signup / Login / Logout / password reset
//   - Topics: list, create, rename, delete
//   - Journals: list (all or per topic), show, add, edit, delete,
//     toggle the important flag
//   - Profile: show, upload a new avatar
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
