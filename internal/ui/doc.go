// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The screen is a single view built from four focus zones:
//  1. the name input
//  2. the email input
//  3. the search input
//  4. the records table
//
// The (view) [Model] never owns record state. Every key press is translated into an intent on a
// [roster.Orchestrator] and the view is redrawn from its snapshot. Timers returned by the
// orchestrator become [tea.Tick] commands whose messages are fed back through Update, so simulated
// latency and notification expiry never block the program.
//
// Keyboard navigation uses tab/shift+tab between zones, enter to submit, e/d to edit or delete the
// selected row, y/n to confirm a delete, esc to cancel and ctrl+x to dismiss the notification, with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
