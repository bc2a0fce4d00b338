// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation (X-API-Key) protecting every non-public endpoint.
//   - rayid: assigns each request a Ray ID, stored in locals and echoed in the
//     X-Ray-ID response header so logs can be correlated per request.
package middleware
