// Package devserver is an in-memory pet backend for local development and
// client tests.
//
// It serves GET/POST /pets and GET/PUT/DELETE /pets/{id} under a base path
// (default /mingoy). POST answers 201 with the stored record and 400 when
// name or species is blank. POST /pets/bulk stores an array, skipping entries
// without name or species, and answers 201 with what was stored (400 for an
// empty array). PUT and DELETE answer with a plain-text
// confirmation, or a plain-text 404 when the id is unknown.
package devserver
