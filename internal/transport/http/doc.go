// Package http provides custom HTTP transport utilities,
// including request/response logging, User-Agent header injection,
// and API authentication via bearer tokens with market scoping.
// It is designed to enhance HTTP client functionality
// with debugging capabilities and request customization.
package http
