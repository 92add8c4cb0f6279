/*
Package notesdk provides a client SDK for interacting with the NoteTab notes service.

# Overview

The notesdk package implements a typed client for the NoteTab multi-tenant notes
API. It provides both unauthenticated operations (via SDKClient) and
authenticated, tenant-scoped operations (via Session).

# SDKClient vs Session

The package is organized around two main types:

  - SDKClient: Provides unauthenticated operations and creates authenticated sessions
  - Session: Provides authenticated operations scoped to the logged-in user's tenant

Create an SDKClient to interact with public endpoints and log in:

	client := notesdk.NewSDKClient("https://notes.example.com")

	// Check service health
	health, err := client.Readyz(ctx)

	// Authenticate to create a session
	session, err := client.Login(ctx, "alice@acme.test", "password")

Use a Session for tenant-scoped operations. Every call is confined to the
tenant the token was issued for:

	note, err := session.CreateNote(ctx, "title", "content")

	notes, err := session.ListNotes(ctx)

	// Admin-only operations
	invite, err := session.InviteUser(ctx, "bob@acme.test", "member", "s3cret")
	upgrade, err := session.UpgradeTenant(ctx, "acme")

# Error Handling

All API failures are returned as *APIError with the HTTP status, the
machine-readable code, and a description:

	_, err := session.CreateNote(ctx, "title", "content")
	var apiErr *notesdk.APIError
	if errors.As(err, &apiErr) && apiErr.Code == notesdk.ErrorCodeQuotaExceeded {
		// free plan limit reached; upgrade the tenant
	}

Tokens are valid for a fixed lifetime and there is no refresh flow. When a
session's token expires its calls fail with ErrorCodeInvalidToken and the
caller must log in again.
*/
package notesdk
