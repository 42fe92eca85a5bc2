package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute

// DiscoverySessionPrefix is the prefix used for cached discovery sessions.
const DiscoverySessionPrefix = "discovery:"

// DiscoverySessionTTL is how long a ranked candidate list stays reusable.
const DiscoverySessionTTL = 10 * time.Minute
