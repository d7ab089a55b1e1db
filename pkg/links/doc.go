// Package links exposes the content-link dispatch surface: feature modules
// register handlers that claim URLs, and the host asks for a
// priority-ordered list of actions when a link is clicked.
// BaseHandler provides neutral defaults for optional handler behavior.
package links
