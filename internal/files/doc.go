// Package files discovers data files on disk: survey workbooks and the
// yearly ridership CSV exports. Discovery keeps the configuration short;
// dropping a new export into the data directory is enough to include it
// in the next analysis run.
package files
