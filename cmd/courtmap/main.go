// Courtmap serves the basketball teams dashboard.
//
// It loads the teams workbook, serves the filterable team table over HTTP
// and exports it as CSV or JSON:
//   - Filtering by country, league and sport plus free-text team search
//   - CSV and JSON downloads of the current selection
//   - Shareable team links
//   - Snapshots of every good load, used when the workbook cannot be read
//
// Usage:
//
//	# Start the dashboard with default configuration
//	courtmap run
//
//	# Start with a configuration file
//	courtmap run --config /etc/courtmap/config.yaml
//
//	# Write the EuroLeague teams to teams_data.csv
//	courtmap export --league EuroLeague
//
//	# List teams in a table
//	courtmap teams --country Spain
//
//	# Print and copy a team link
//	courtmap share "Real Madrid, Baloncesto" --origin https://courtmap.example --copy
package main

func main() {
	Execute()
}
