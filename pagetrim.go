// Package pagetrim reduces crawled HTML pages to their content-bearing
// structure so they can be fed to text-consuming pipelines. It crawls a
// site, simplifies every fetched document tree in place, and stores one
// artifact per visited page.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., html/, goquery/, sqlite/, rod/).
package pagetrim
