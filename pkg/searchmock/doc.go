// Package searchmock fabricates deterministic Roomshare search-API traffic
// for browser-based end-to-end tests.
//
// The centerpiece is the pagination interception session: it hijacks the
// browser's "load more" continuation call (a POST to the search route
// carrying the Next-Action marker header), serves flight-framed batches of
// generated listings, and leaves every other request (including the initial
// page GET) untouched on its way to the real server.
//
// Everything here is pure and reproducible: the same index always yields the
// same listing, the same offset always yields the same cursor, and a session
// with a fixed configuration serves the same byte-identical pages on every
// run. Failure injection is the one supported fault: a session can be armed
// to abort exactly one matched call at a configured 1-based position,
// exercising the application's own retry path.
//
// Typical use:
//
//	sess, err := searchmock.Install(page, searchmock.Config{
//		TotalListings: 36,
//		FailOnCall:    2,
//	})
//	defer sess.Stop()
package searchmock
