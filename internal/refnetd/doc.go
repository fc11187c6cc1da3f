// Package refnetd is the serving layer of the referral analytics daemon.
//
// It holds loaded networks in an in-memory NetworkStore and exposes the
// analysis and growth operations over an HTTP/JSON API:
//
//	POST   /v1/networks                       load a network (JSON or YAML)
//	GET    /v1/networks                       list loaded networks
//	GET    /v1/networks/{id}                  network summary
//	DELETE /v1/networks/{id}                  unload a network
//	GET    /v1/networks/{id}/reach/{user}     downstream reach of a user
//	GET    /v1/networks/{id}/top-referrers    ranking by total referral count
//	GET    /v1/networks/{id}/coverage         greedy unique-coverage selection
//	GET    /v1/networks/{id}/centrality       flow centrality (exact or sampled)
//	POST   /v1/growth/simulate                cumulative growth curve
//	POST   /v1/growth/days-to-target          minimal days to reach a target
//	POST   /v1/growth/min-bonus               minimal bonus to reach a target
//
// Stored graphs are immutable; analyses run against a network record without
// further locking. Invalid arguments map to 400, unknown networks and users
// to 404, duplicate network IDs to 409. An unachievable growth target is a
// normal result, reported with achievable=false, not an error status.
package refnetd
