// Package types defines small value types shared by the cache, the resolver
// and the command line layer.
package types
