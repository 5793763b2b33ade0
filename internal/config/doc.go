// Package config handles YAML configuration loading with environment variable substitution.
//
// Configuration files support ${VAR} syntax for environment variable interpolation.
// Every field is optional; LoadWithDefaults fills in the generator's
// historical constants (5 workers, base price 45, base size 100, 100 records).
package config
