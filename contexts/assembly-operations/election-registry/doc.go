// Package electionregistry implements election, candidate, and kiosk
// configuration inside the assembly-operations context.
//
// The ballot core consumes this configuration read-only during voting. The
// module validates office kinds against a closed enumeration at registration
// time and freezes an election's configuration once its first ballot exists.
package electionregistry
