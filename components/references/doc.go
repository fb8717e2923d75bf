// Package references provides a curated catalog of standard weakness
// references (OWASP Top 10, CWE Top 25), search helpers, and a small fiber
// handler that returns JSON options for typeahead on reference list fields.
//
// The default handler responds to GET requests and supports query and limit
// parameters to filter results. The backing data is loaded from the embedded
// catalog under data/standard_references.txt, which is ordered by rank.
package references
