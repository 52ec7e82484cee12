// Package config provides centralized configuration for fairflow. It loads
// from environment variables (prefix FAIRFLOW_, highest priority), an
// optional YAML config file, and built-in defaults, then validates the
// result.
//
// The funnel's column addressing lives here as configuration rather than
// literals scattered through code: the survey questions are addressed by
// header name, with the versioned positional indices of the known export as
// the documented fallback.
//
// Paths is the single source of truth for file locations; everything is
// resolved relative to the executable directory, never the working
// directory.
package config
