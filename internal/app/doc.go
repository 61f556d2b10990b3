// Package app wires configuration, logging, the API client and the state
// store together.
//
// Run is the entry point for the interactive TUI. AnalyzeFile drives the
// same state transitions without a UI and backs the headless analyze
// command:
//
//	env, _ := app.NewEnv(cfg)
//	defer env.Close()
//	snap, err := app.AnalyzeFile(ctx, env.Client, &state.Store{}, "lunch.jpg", env.Logger)
//
// When Config.PrefsFile is set, Run restores the saved theme and picker
// folder and saves them again whenever the UI changes either one.
package app
