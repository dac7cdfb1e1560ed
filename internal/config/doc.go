// Package config loads field definitions for maskfield.
//
// Definitions are read from a TOML or YAML file, chosen by extension, and
// overlaid with MASKFIELD_* environment variables:
//
//	locale = "en-US"
//	log_level = "info"
//
//	[[field]]
//	name = "phone"
//	type = "phone"
//	path = "contact.phone"
//
//	[[field]]
//	name = "dob"
//	type = "date"
//	path = "person.birthday"
//	submit = "foreign"
//
// Watch reloads the file when it changes on disk.
package config
