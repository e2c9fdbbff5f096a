// Package redis connects to the Redis server shared by the session store and
// the distributed login limiter.
package redis
