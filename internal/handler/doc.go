// Package handler provides the HTTP glue for CardVault.
//
// Handlers validate and decode requests (JSON or multipart card forms),
// call into the service layer, and map service errors to HTTP statuses:
// validation failures become 400 with the violated rule, absent cards
// become 404 without internal detail, and storage failures become a
// generic 500 with the cause logged server-side.
package handler
