// Package db embeds the SQL schema migrations shipped with the server.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
