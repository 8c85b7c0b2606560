package model

// Package model defines domain data structures shared across the app: server
// records delivered by the listing source and the roulette phase enum. Records
// are immutable once constructed; a listing is only ever replaced wholesale.
