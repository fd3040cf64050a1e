// Package cli is the taskpilot terminal client.
//
// App wires configuration, local storage, the session store, the HTTP client
// and the services, and plays the navigator for them: when the session dies
// mid-command the client "navigates" to the login view and asks the user to
// log in again. Protected commands pass through the session guard first.
//
// Commands are available both as cobra subcommands (taskpilot tasks list)
// and inside the interactive shell started by App.Repl.
package cli
