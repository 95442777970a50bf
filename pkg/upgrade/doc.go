// Package upgrade implements the engine that rewrites SageMaker Python SDK
// v1 call sites to their v2 names. The engine applies an ordered set of
// modifiers to one file per invocation, in a single serial pass; content
// no enabled modifier recognizes passes through byte-for-byte.
package upgrade
