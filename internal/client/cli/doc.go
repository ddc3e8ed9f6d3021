// Package cli provides the interactive casekeeper terminal client.
//
// App is the composition root: it opens the local database, builds the case
// store, the sync orchestrator and the document generator, and runs a REPL
// until the user exits. Everything works offline; signing in adds cloud
// backup on top.
//
// Commands that take a record reference accept the list number shown by the
// matching list command, a full id, or a unique id prefix.
package cli
