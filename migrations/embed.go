// Package migrations ships the versioned schema as an embedded filesystem so
// the server and the migrate CLI do not depend on the working directory.
package migrations

import "embed"

// FS holds every *.up.sql / *.down.sql pair in this directory
//
//go:embed *.sql
var FS embed.FS
