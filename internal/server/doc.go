// Package server provides HTTP routing, middleware, and the request handlers
// for the lineup extraction service.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Handlers
//
// Three handlers cover the service surface:
//
//   - [IndexHandler] : GET / renders the upload form
//   - [ExtractHandler] : POST /extract runs the extraction pipeline
//   - [UploadsHandler] : GET /uploads lists generated files, GET /uploads/{filename} serves one
//
// [ExtractHandler] is the error-mapping boundary: pipeline failures wrapping
// [shared.ErrValidation] become 400 responses and everything else becomes
// 500, always as a JSON {"error": message} body with the message surfaced
// verbatim.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
