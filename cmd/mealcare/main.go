// Command mealcare is the operator CLI: it manages the schema, bootstraps
// tenants and users, reads the audit trail, and serves the ops endpoints.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
