// Package nango obtains Google OAuth access tokens through a Nango
// credential broker.
//
// The server never sees Google refresh tokens or client secrets. Instead
// it holds a Nango secret key and a connection identity (Config), asks the
// Nango API for a short-lived access token (Client.FetchToken), and caches
// it with a safety margin before expiry (Provider). Concurrent refreshes
// are collapsed into one broker call, so a burst of tool invocations after
// expiry costs a single upstream request.
package nango
