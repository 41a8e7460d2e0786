// Package notifications delivers push notifications for pipeline events via
// ntfy. When no topic is configured the service degrades to a noop so callers
// never need to guard their notification calls.
package notifications
