// Command lente is the record-matching CLI: deduplication and linkage runs
// over person CSV sources, annotation export and import, and configuration
// utilities.
package main
