// Package repository implements the store gateway over the relational
// database.  It also defines the sentinel errors shared by the gateway
// implementations so higher layers can classify failures with
// errors.Is instead of inspecting driver error strings.
package repository

import "errors"

// ErrEntityCreate is wrapped around any store integrity or
// connectivity failure raised while inserting or updating an entity
// row.  The workflow treats it as a 500-equivalent submission failure.
var ErrEntityCreate = errors.New("entity creation failed")
