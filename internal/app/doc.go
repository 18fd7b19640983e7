// Package app is the composition root for holonet.
//
// # Overview
//
// Run loads configuration, builds every dependency and hands them to the
// Bubble Tea program in package ui. Nothing here runs in the background;
// all API traffic is started by the UI in response to navigation.
//
// # Startup
//
//  1. Load ~/.config/holonet/config.toml plus HOLONET_* overrides
//  2. Validate the initial route given with -open
//  3. Open the zap logger on the configured log file
//  4. Build the rate-limited SWAPI client
//  5. Open the storage backend (file, redis or memory) and load state
//  6. Load UI preferences and start the TUI (blocks)
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()      config file + env
//	       ├─────> logger.New()       log file read back by the activity view
//	       ├─────> swapi.NewClient()  HTTP + rate limiter
//	       ├─────> openStore()        storage.KV backend
//	       ├─────> state.Open()       favourites + search history
//	       ├─────> detail.New()       parallel detail fan-out
//	       └─────> ui.Run()           TUI (blocks)
//
// Cancelling the context (SIGINT/SIGTERM in cmd/holonet) stops the
// program and Run returns nil.
package app
