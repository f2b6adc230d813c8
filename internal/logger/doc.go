// Package logger holds the structured logger used for allocator debug output.
// Logging is off unless a caller enables it or SLABKIT_LOG_ALLOC is set.
package logger
