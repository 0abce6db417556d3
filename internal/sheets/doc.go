// Package sheets implements the gateway to the Google Sheets REST API.
//
// The package has three layers. A closed table of operation descriptors
// (operations.go) declares the method, path and parameters of every
// supported call. The request builder (builder.go) validates tool
// arguments against a descriptor, applies defaults and canonicalizes A1
// range notation, producing a ready-to-send request without touching the
// network. The client (client.go) attaches bearer credentials from a
// TokenSource, performs the HTTP round trip with a single refresh-and-retry
// on 401, and folds every failure into a classified *Error (errors.go)
// whose Kind tells the caller whether the fault lies with the arguments,
// the credentials, the quota or the service.
package sheets
