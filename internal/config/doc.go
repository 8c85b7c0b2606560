package config

// Package config persists the user-adjustable player-count filter through
// Fyne preferences. There are no CLI flags, environment variables, or
// config files.
