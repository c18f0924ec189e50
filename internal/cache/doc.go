// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

/*
Package cache provides a generic, thread-safe LRU cache with TTL expiry.

Vidfeed uses it to remember verified viewer tokens between requests, so a
client polling the feed pays the HMAC check once per minute rather than on
every call.

# Usage

	c := cache.NewLRU[string, int](4096, time.Minute)
	c.Add(token, viewerID)

	if id, ok := c.Get(token); ok {
		fmt.Println(id)
	}

# Semantics

  - Capacity bounds the entry count; the least recently used entry is evicted first
  - Every Add refreshes the entry's TTL
  - Expired entries are removed lazily on Get
  - Callers with their own expiry, such as a token's exp claim, check it on
    every hit and Remove stale entries

# Thread Safety

All methods are safe for concurrent use.
*/
package cache
