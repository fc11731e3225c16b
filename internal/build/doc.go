// Package build is the host documentation build tool that extensions plug
// into.
//
// An App owns the project configuration, the registry of extension options
// (Values), the selected Builder and the lifecycle event handlers. A build
// runs in this order:
//
//  1. builder-inited handlers run once; an error aborts the build before any
//     page is rendered.
//  2. Source pages are discovered; HTML-format builders add the synthetic
//     genindex and search pages.
//  3. Each page gets a base render context, page-context handlers run (HTML
//     formats only), and the builder renders and writes the page.
//
// Pages are rendered by a bounded worker pool. When any loaded extension is
// not parallel safe the pool is limited to one worker.
package build
