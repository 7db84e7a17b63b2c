// Package refresh keeps the team catalog current in the background.
//
// Scheduler reloads the catalog on a cron schedule ("@every 1h" or a standard
// five-field expression). Watcher reloads it when the workbook file changes
// on disk, debouncing bursts of file system events from editors and uploads.
package refresh
