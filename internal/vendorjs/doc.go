// Package vendorjs installs pinned vendor JavaScript bundles.
//
// The site serves its ML demos from local copies of TensorFlow.js builds
// rather than hotlinking a CDN, so deploys keep working when the CDN is
// slow, blocked, or gone. The installer downloads each configured bundle
// into the vendor directory, a few in flight at a time, retrying transient
// failures.
//
// Like every other sitekit command this is dry-run by default: without
// apply mode it only reports what it would download.
package vendorjs
