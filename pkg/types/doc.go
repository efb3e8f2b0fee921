// Package types defines the record structs, closed enumerations, and
// standard errors for the fieldcase data layer.
//
// Every record kind carries an integer ID unique within its collection,
// UTC creation and last-modified timestamps, and free-text notes. JSON
// field names match the on-disk collection format, so a loaded collection
// saves back without transformation.
package types
