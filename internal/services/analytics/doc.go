/*
Package analytics derives per-user metrics from the transaction ledger
through a cache-aside layer.

Three metrics are exposed:
  - average transaction value (mean amount over the whole ledger)
  - highest transaction day (calendar day with the most transactions)
  - transaction totals (credit/debit sums over an optional date window)

Every metric is read through the cache: on a hit the cached subunit value is
converted and returned, on a miss the store is queried and the result written
back with a TTL before returning. Cached values are always subunit integers;
division by the subunit factor happens only at the read boundary, so a cached
value and a freshly computed one are byte-comparable.

A miss and a cache fault are distinct outcomes. Only a miss falls through to
the store; a fault fails the request with ErrComputation.

The Invalidator evicts the fixed per-user key set after every transaction
mutation, and the Refresher keeps per-user caches warm on a fixed interval
with one deduplicated background loop per user.
*/
package analytics
