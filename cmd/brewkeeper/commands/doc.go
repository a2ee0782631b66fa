// Package commands defines the brewkeeper CLI and wires dependencies for subcommands.
//
// Commands
//
//   - convert    Convert between canonical and display units
//   - inventory  Manage fermentables, hops, miscellaneous additives and yeasts
//   - recipe     Manage recipes and their ingredient lines
//   - prefs      Show or change display preferences
//   - login      Start a session so preferences are stored per user
//   - logout     End the current session
//   - serve      Run the HTTP API
//
// # Implementation
//
// The root command reads the environment, opens and migrates the SQLite
// database and builds the services before any subcommand runs. Display
// preferences come from the logged-in user's stored preferences, falling back
// to the preferences file, and can be overridden per invocation with
// --weight-unit, --volume-unit and --color-scale.
package commands
