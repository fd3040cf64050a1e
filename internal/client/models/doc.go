// Package models defines the wire types exchanged with the task manager API:
// users and tokens, tasks, projects, templates and AI chat messages, plus the
// query types (filters, sorting, pagination) the list endpoints accept.
//
// Field names follow the backend's snake_case JSON. Optional request fields
// are pointers so that "unset" and "zero" stay distinguishable on the wire.
package models
