// Package services contains the application services the CLI drives:
// authentication, task management, debounced search and the AI assistant
// conversation. Services compose the api modules with the session store;
// they hold no transport logic of their own.
package services
