package ui

// Package ui contains the Fyne-based desktop user interface: the filter
// sliders, refresh and spin controls, the scrolling reel viewport with its
// center marker, and the winner card. A ticker goroutine advances the spin
// engine every frame and pushes render state to the UI thread via fyne.Do.
