/*
Package ports defines the driven ports (interfaces) between the dfakit
core and its adapters.

# Key Interfaces

  - SessionStore: persists builder drafts for the session-editing API,
    with in-memory and Redis implementations under pkg/adapters.

RunSessionStoreContract is a reusable test suite every SessionStore
implementation must pass.
*/
package ports
