// Package config handles configuration loading for taskdeck.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable
// expansion. The package validates required fields at load time; in
// particular there is no default signing secret, so a missing or short
// auth.jwt_secret fails the load rather than starting insecurely.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	auth:
//	  jwt_secret: "${TASKDECK_JWT_SECRET}"
//
// Syntax: ${VAR_NAME}
//
// # Configuration Sections
//
// Server settings:
//
//	server:
//	  http_addr: "0.0.0.0:8080"
//
// Database:
//
//	database:
//	  path: "/var/lib/taskdeck/taskdeck.db"
//
// Authentication:
//
//	auth:
//	  jwt_secret: "${TASKDECK_JWT_SECRET}"  # required, >= 32 bytes
//	  token_ttl: "15m"                      # bearer token lifetime
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// # Usage
//
//	cfg, err := config.Load("/etc/taskdeck/taskdeck.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
